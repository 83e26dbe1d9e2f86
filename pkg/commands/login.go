package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/runner/login"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

func addLogin(topLevel *cobra.Command) {
	ro := &options.RemoteOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and replace local records with the remote copy",
		Example: `
momentum login
momentum login --project my-project --user alice
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s, err := store.Open(cfg)
			if err != nil {
				return err
			}
			if ro.Project == "" {
				ro.Project = cfg.Remote.Project
			}
			if ro.User == "" {
				ro.User = cfg.Remote.User
			}
			l := login.Login{
				Project: ro.Project,
				User:    ro.User,
				Store:   s,
			}
			return l.Do(ctx)
		},
	}

	options.AddRemoteArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local records",
		Example: `
momentum logout
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s, err := store.Open(cfg)
			if err != nil {
				return err
			}
			l := login.Logout{Store: s}
			return l.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
