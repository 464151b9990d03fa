// internal/poller/builder.go
package poller

import (
	"log/slog"

	"github.com/almirdelkic/savevtr/internal/config"
	"github.com/almirdelkic/savevtr/internal/regmap"
	"github.com/almirdelkic/savevtr/internal/unit"
)

// Build constructs the unit controller over t and a Poller that owns it.
// cfg must already be validated and normalized.
func Build(cfg *config.Config, t unit.Transport, log *slog.Logger) (*Poller, error) {
	layout, err := regmap.LookupVariant(cfg.Unit.Variant)
	if err != nil {
		return nil, err
	}

	policy := unit.RefreshManual
	if cfg.Unit.RefreshOnRead {
		policy = unit.RefreshOnRead
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("unit", cfg.Unit.ID)

	ctrl, err := unit.New(unit.Config{
		NodeID: cfg.Unit.NodeID,
		Layout: layout,
		Policy: policy,
		Logger: log.With("component", "controller"),
	}, t)
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			UnitID:   cfg.Unit.ID,
			Interval: cfg.Poll.Interval(),
			Logger:   log.With("component", "poller"),
		},
		ctrl,
	)
}
