package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/remind"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
momentum ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return err
			}
			if cfg.Reminder.Enabled {
				r := remind.New(s)
				if err := r.Start(cfg.Reminder.At); err != nil {
					log.Printf("reminder not scheduled: %v", err)
				} else {
					defer r.Stop()
				}
			}
			i := ui.UI{
				Store:     s,
				Assistant: newAssistant(cfg, s),
			}
			return i.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
