package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/add"
)

func addTask(topLevel *cobra.Command) {
	to := &options.AddOptions{}
	oo := &options.OnOptions{}
	po := &options.PriorityOptions{}

	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Add a dated task",
		Example: `
momentum add task write report --priority high
momentum add task book flights --on 2024-06-10
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task")
			}
			to.Text = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			a := add.Add{
				Kind:     record.KindTask,
				Text:     to.Text,
				On:       oo.On,
				Priority: po.Priority,
				Store:    s,
			}
			return a.Do(ctx)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddPriorityArgs(cmd, po)
	topLevel.AddCommand(cmd)
}
