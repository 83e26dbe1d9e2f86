package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"done", "toggle"},
		Short:   "Toggle a task between done and open",
		Example: `
momentum complete <task id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			io.ID = strings.Join(args, " ")

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			c := complete.Complete{
				ID:    io.ID,
				Store: s,
			}
			return c.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
