package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"golang.org/x/oauth2/google"

	"github.com/Kaidooo2024/momentum.day/pkg/assist"
	"github.com/Kaidooo2024/momentum.day/pkg/commands/options"
	"github.com/Kaidooo2024/momentum.day/pkg/remote"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "momentum",
		Short: options.Wrap80("Notes, daily tasks and monthly momentum on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addDay(topLevel)
	addMonth(topLevel)
	addComplete(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addChat(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addRemind(topLevel)
	addVersion(topLevel)
}

// open loads the configuration and the local store, and re-attaches the
// remote mirror when a session from a previous login is still active.
// Failing to reach the remote never blocks local use.
func open(ctx context.Context) (*store.RecordStore, *store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	s.SetStatus(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	if s.Signed() && cfg.Remote.Project != "" {
		attachMirror(ctx, cfg, s)
	}
	return s, cfg, nil
}

func attachMirror(ctx context.Context, cfg *store.Config, s *store.RecordStore) {
	ts, err := google.DefaultTokenSource(ctx, remote.DatastoreScope)
	if err != nil {
		log.Printf("remote mirror unavailable: %v", err)
		return
	}
	docs, err := remote.NewFirestore(ctx, cfg.Remote.Project, ts)
	if err != nil {
		log.Printf("remote mirror unavailable: %v", err)
		return
	}
	s.SetMirror(remote.NewMirror(docs))
}

// newAssistant returns nil when no API key is configured.
func newAssistant(cfg *store.Config, s *store.RecordStore) *assist.Assistant {
	if cfg.Assist.APIKey == "" {
		return nil
	}
	client := assist.NewGeminiClient(cfg.Assist.APIKey, cfg.Assist.Model)
	return assist.New(client, s, s.KV())
}
