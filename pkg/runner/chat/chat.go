package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/Kaidooo2024/momentum.day/pkg/assist"
)

// Chat runs one exchange with the collaborator, or an interactive loop
// when no message was given.
type Chat struct {
	Message string

	Assistant *assist.Assistant
	In        io.Reader
	Out       io.Writer
}

func (c *Chat) Do(ctx context.Context) error {
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}

	if c.Message != "" {
		return c.exchange(ctx, c.Message)
	}

	prompt := color.New(color.Bold)
	_, _ = prompt.Fprintln(c.Out, "Chat about your schedule. Empty line or \"exit\" to leave.")
	scanner := bufio.NewScanner(c.In)
	for {
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" {
			return nil
		}
		if err := c.exchange(ctx, line); err != nil {
			return err
		}
	}
}

// exchange prints either the reply or the fallback. The collaborator
// failing is not a command failure.
func (c *Chat) exchange(ctx context.Context, message string) error {
	reply, err := c.Assistant.Chat(ctx, message)
	if err != nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(c.Out, reply)
		return nil
	}
	fmt.Fprintln(c.Out, reply)
	return nil
}
