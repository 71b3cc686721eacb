package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/steezy2401/smartexp/internal/bot"
	"github.com/steezy2401/smartexp/internal/flow"
)

// Console runs one conversation over stdin/stdout. Inline keyboard
// buttons are selected by typing their label; the matching action
// identifier is what reaches the router, mirroring a button press.
type Console struct {
	router  *bot.Router
	reader  *LineReader
	out     io.Writer
	actions map[string]string

	conversation string
	userID       int64
}

// NewConsole creates a console transport for one user.
func NewConsole(router *bot.Router, in io.Reader, out io.Writer, conversation string, userID int64) *Console {
	return &Console{
		router:       router,
		reader:       NewLineReader(in),
		out:          out,
		actions:      make(map[string]string),
		conversation: conversation,
		userID:       userID,
	}
}

// Run loops until the context is canceled or input ends. The first
// turn sends the start command so the user sees the greeting.
func (c *Console) Run(ctx context.Context) error {
	if err := c.send(ctx, flow.TextEvent(bot.StartCommand)); err != nil {
		return err
	}

	for {
		fmt.Fprint(c.out, PromptStyle.Render("> ")+" ")
		line, err := c.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			continue
		}

		ev := flow.TextEvent(line)
		if action, ok := c.actions[line]; ok {
			ev = flow.ActionEvent(action)
		}

		if err := c.send(ctx, ev); err != nil {
			return err
		}
	}
}

func (c *Console) send(ctx context.Context, ev flow.Event) error {
	messages, err := c.router.Handle(ctx, bot.Inbound{
		Conversation: c.conversation,
		UserID:       c.userID,
		Event:        ev,
	})
	if err != nil {
		return err
	}

	for _, msg := range messages {
		c.print(msg)
	}
	return nil
}

func (c *Console) print(msg bot.Message) {
	fmt.Fprintln(c.out, MessageStyle.Render(msg.Text))

	kb := msg.Keyboard
	if kb == nil {
		return
	}
	if kb.Remove {
		c.actions = make(map[string]string)
		return
	}

	// Inline buttons replace whatever label-to-action mapping the
	// previous keyboard installed.
	if kb.Inline {
		c.actions = make(map[string]string)
	}

	for _, row := range kb.Rows {
		rendered := make([]string, 0, len(row))
		for _, button := range row {
			rendered = append(rendered, ButtonStyle.Render(button.Label))
			if button.Action != "" {
				c.actions[button.Label] = button.Action
			}
		}
		fmt.Fprintln(c.out, strings.Join(rendered, " "))
	}
}
