// internal/transport/builder.go
package transport

import (
	"fmt"
	"log/slog"

	"github.com/almirdelkic/savevtr/internal/config"
	"github.com/almirdelkic/savevtr/internal/transport/mbclient"
	tmodbus "github.com/almirdelkic/savevtr/internal/transport/modbus"
	"github.com/almirdelkic/savevtr/internal/unit"
)

// Conn is a connected transport that can read both register banks.
type Conn interface {
	unit.Transport
	unit.InputReader
	Close() error
}

var (
	_ Conn = (*tmodbus.Client)(nil)
	_ Conn = (*mbclient.Client)(nil)
)

// Build opens the backend named by cfg.Backend. ONE attempt; the caller
// decides whether a failure is fatal.
func Build(cfg config.TransportConfig, log *slog.Logger) (Conn, error) {
	switch cfg.Backend {
	case config.BackendGoburrow, "":
		c, err := tmodbus.New(tmodbus.Config{
			Mode:     cfg.Mode,
			Endpoint: cfg.Endpoint,
			Timeout:  cfg.Timeout(),
			Device:   cfg.Serial.Device,
			BaudRate: cfg.Serial.BaudRate,
			DataBits: cfg.Serial.DataBits,
			Parity:   cfg.Serial.Parity,
			StopBits: cfg.Serial.StopBits,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	case config.BackendSimonvetter:
		c, err := mbclient.New(mbclient.Config{
			Mode:     cfg.Mode,
			Endpoint: cfg.Endpoint,
			Timeout:  cfg.Timeout(),
			Device:   cfg.Serial.Device,
			BaudRate: cfg.Serial.BaudRate,
			DataBits: cfg.Serial.DataBits,
			Parity:   cfg.Serial.Parity,
			StopBits: cfg.Serial.StopBits,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("transport: unknown backend %q", cfg.Backend)
	}
}
