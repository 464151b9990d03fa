// internal/poller/poller.go
package poller

import (
	"errors"
	"log/slog"
	"time"

	"github.com/almirdelkic/savevtr/internal/command"
	"github.com/almirdelkic/savevtr/internal/unit"
)

// Controller is what the poller needs from unit.Controller.
type Controller interface {
	Refresh() bool
	Last() unit.Snapshot
	command.Writer
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	UnitID   string
	Interval time.Duration
	Logger   *slog.Logger
}

// Poller is a clock-driven refresher. It is the only goroutine that
// touches the controller; writes reach it through Submit.
type Poller struct {
	cfg  Config
	ctrl Controller
	cmds chan request
	log  *slog.Logger
	now  func() time.Time

	// closed when Run returns
	stopped chan struct{}
}

type request struct {
	cmd  command.Command
	done chan error
}

// New creates a poller with immutable config.
func New(cfg Config, ctrl Controller) (*Poller, error) {
	if cfg.UnitID == "" {
		return nil, errors.New("poller: unit id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if ctrl == nil {
		return nil, errors.New("poller: controller required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Poller{
		cfg:     cfg,
		ctrl:    ctrl,
		cmds:    make(chan request),
		stopped: make(chan struct{}),
		log:     log,
		now:     time.Now,
	}, nil
}

// PollOnce performs exactly one refresh and captures the snapshot.
// Not safe to call while Run is active.
func (p *Poller) PollOnce() PollResult {
	ok := p.ctrl.Refresh()
	res := PollResult{
		UnitID:   p.cfg.UnitID,
		At:       p.now(),
		OK:       ok,
		Snapshot: p.ctrl.Last(),
	}
	if !ok {
		p.log.Warn("refresh incomplete, snapshot unreliable", "unit", p.cfg.UnitID)
	}
	return res
}

// apply runs one command against the controller.
func (p *Poller) apply(c command.Command) error {
	err := c.Apply(p.ctrl)
	if err != nil {
		p.log.Warn("command failed", "unit", p.cfg.UnitID, "command", c.String(), "error", err)
		return err
	}
	p.log.Info("command applied", "unit", p.cfg.UnitID, "command", c.String())
	return nil
}
