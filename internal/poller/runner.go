// internal/poller/runner.go
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/almirdelkic/savevtr/internal/command"
)

// ErrStopped is returned by Submit once Run has returned.
var ErrStopped = errors.New("poller: stopped")

// Run polls once immediately, then on every tick, and emits PollResult on
// out. Commands submitted between ticks are applied in arrival order on
// this goroutine. One goroutine per unit. No overlap. No retries.
// Run must be called at most once.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	defer close(p.stopped)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	if !p.emit(ctx, out, p.PollOnce()) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out, p.PollOnce()) {
				return
			}
		case req := <-p.cmds:
			req.done <- p.apply(req.cmd)
		}
	}
}

func (p *Poller) emit(ctx context.Context, out chan<- PollResult, res PollResult) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}

// Submit hands c to the Run goroutine and waits for the write outcome.
// The new value shows up in the snapshot after the next tick.
func (p *Poller) Submit(ctx context.Context, c command.Command) error {
	req := request{cmd: c, done: make(chan error, 1)}
	select {
	case p.cmds <- req:
	case <-p.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Run always answers an accepted request.
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
