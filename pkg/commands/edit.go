package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	po := &options.PriorityOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a task's text, date or priority",
		Example: `
momentum edit <task id> --text "write the quarterly report"
momentum edit <task id> --on 2024-06-10 --priority low
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			e := edit.Edit{
				ID:       io.ID,
				Text:     text,
				On:       oo.On,
				Priority: po.Priority,
				Store:    s,
			}
			return e.Do(ctx)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Replace the task text.")
	options.AddOnArgs(cmd, oo)
	options.AddPriorityArgs(cmd, po)
	topLevel.AddCommand(cmd)
}
