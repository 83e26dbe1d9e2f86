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

func addNote(topLevel *cobra.Command) {
	no := &options.AddOptions{}
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Add a note",
		Example: `
momentum add note met with the design team
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			no.Text = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, _, err := open(ctx)
			if err != nil {
				return err
			}
			a := add.Add{
				Kind:  record.KindNote,
				Text:  no.Text,
				On:    oo.On,
				Store: s,
			}
			return a.Do(ctx)
		},
	}

	options.AddOnArgs(cmd, oo)
	topLevel.AddCommand(cmd)
}
