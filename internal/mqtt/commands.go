// internal/mqtt/commands.go
package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/almirdelkic/savevtr/internal/command"
)

// Submitter accepts a parsed command; *poller.Poller implements it.
type Submitter interface {
	Submit(ctx context.Context, c command.Command) error
}

const defaultCommandTimeout = 10 * time.Second

// CommandHandler turns messages on <prefix>/<unit>/set/<field> into
// submitted commands.
type CommandHandler struct {
	topics  Topics
	sub     Submitter
	log     *slog.Logger
	timeout time.Duration
}

func NewCommandHandler(topics Topics, sub Submitter, log *slog.Logger) *CommandHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CommandHandler{
		topics:  topics,
		sub:     sub,
		log:     log,
		timeout: defaultCommandTimeout,
	}
}

// Handle is a MessageHandler.
func (h *CommandHandler) Handle(topic string, payload []byte) error {
	field, ok := h.topics.CommandField(topic)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidTopic, topic)
	}
	cmd, err := command.Parse(field, payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	if err := h.sub.Submit(ctx, cmd); err != nil {
		return fmt.Errorf("apply %s: %w", cmd, err)
	}
	h.log.Debug("command applied", "command", cmd.String())
	return nil
}

// SubscribeCommands routes the unit's command tree to h.
func SubscribeCommands(c *Client, h *CommandHandler) error {
	return c.Subscribe(c.Topics().CommandWildcard(), c.QoS(), h.Handle)
}
