package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"today"},
		Short:   "Show one day: open tasks, notes, finished tasks and progress",
		Example: `
momentum day
momentum day --on 2024-06-05 --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			d := day.Day{
				On:     oo.On,
				ShowID: io.ShowID,
				Store:  s,
			}
			return d.Do(ctx)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
