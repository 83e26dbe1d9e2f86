package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/remind"
)

func addRemind(topLevel *cobra.Command) {
	var at string
	var now bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the daily reminder about open tasks",
		Example: `
momentum remind            # sits in the foreground, fires at the configured time
momentum remind --now      # fire once and exit
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return err
			}
			r := remind.New(s)

			if now {
				r.Fire()
				return nil
			}

			if at == "" {
				at = cfg.Reminder.At
			}
			if err := r.Start(at); err != nil {
				return err
			}
			defer r.Stop()

			fmt.Printf("reminding daily at %s, ctrl+c to stop\n", at)
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `Local time to remind, example: --at="17:00". Defaults to the configured time.`)
	cmd.Flags().BoolVar(&now, "now", false, "Fire the reminder immediately and exit.")
	topLevel.AddCommand(cmd)
}
