package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/month"
)

func addMonth(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "month",
		Aliases: []string{"cal", "calendar"},
		Short:   "Show the monthly calendar grid and progress",
		Example: `
momentum month
momentum month --month 2024-06
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			m := month.Month{
				Month: mo.Month,
				Store: s,
			}
			return m.Do(ctx)
		},
	}

	options.AddMonthArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
