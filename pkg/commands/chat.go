package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kaidooo2024/momentum.day/pkg/runner/chat"
)

func addChat(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the planning collaborator about your schedule",
		Example: `
momentum chat what should I tackle first today?
momentum chat
`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return err
			}
			assistant := newAssistant(cfg, s)
			if assistant == nil {
				return errors.New("no API key configured, set assist.api_key in ~/.momentum.yaml or MOMENTUM_ASSIST_API_KEY")
			}
			c := chat.Chat{
				Message:   strings.Join(args, " "),
				Assistant: assistant,
			}
			return c.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
