// internal/transport/mbclient/client.go
package mbclient

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/simonvetter/modbus"
)

// bus is the subset of *modbus.ModbusClient used here.
type bus interface {
	Open() error
	Close() error
	SetUnitId(id uint8) error
	ReadRegisters(addr, quantity uint16, regType modbus.RegType) ([]uint16, error)
	WriteRegister(addr, value uint16) error
}

// Client implements unit.Transport and unit.InputReader on top of
// simonvetter/modbus. A failed read closes and reopens the connection once
// and retries before reporting failure, unless the device answered with an
// exception.
type Client struct {
	mu  sync.Mutex
	bus bus
	log *slog.Logger

	reopenDelay time.Duration
}

type Config struct {
	Mode     string // "tcp" or "rtu"
	Endpoint string // host:port (tcp)
	Timeout  time.Duration

	// rtu only
	Device   string
	BaudRate int
	DataBits int
	Parity   string // N, E, O
	StopBits int

	Logger *slog.Logger
}

// New opens the connection described by cfg.
func New(cfg Config) (*Client, error) {
	conf, err := clientConfiguration(cfg)
	if err != nil {
		return nil, err
	}

	mc, err := modbus.NewClient(conf)
	if err != nil {
		return nil, fmt.Errorf("transport mbclient: %w", err)
	}
	if err := mc.Open(); err != nil {
		return nil, fmt.Errorf("transport mbclient: open %s: %w", conf.URL, err)
	}
	return newClient(mc, cfg.Logger), nil
}

func newClient(b bus, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		bus:         b,
		log:         log.With("backend", "simonvetter"),
		reopenDelay: 500 * time.Millisecond,
	}
}

func clientConfiguration(cfg Config) (*modbus.ClientConfiguration, error) {
	switch cfg.Mode {
	case "tcp":
		if cfg.Endpoint == "" {
			return nil, errors.New("transport mbclient: endpoint required")
		}
		return &modbus.ClientConfiguration{
			URL:     "tcp://" + cfg.Endpoint,
			Timeout: cfg.Timeout,
		}, nil

	case "rtu":
		if cfg.Device == "" {
			return nil, errors.New("transport mbclient: serial device required")
		}
		parity, err := parseParity(cfg.Parity)
		if err != nil {
			return nil, err
		}
		return &modbus.ClientConfiguration{
			URL:      "rtu://" + cfg.Device,
			Speed:    uint(cfg.BaudRate),
			DataBits: uint(cfg.DataBits),
			Parity:   parity,
			StopBits: uint(cfg.StopBits),
			Timeout:  cfg.Timeout,
		}, nil

	default:
		return nil, errors.New("transport mbclient: mode must be tcp or rtu")
	}
}

func parseParity(p string) (uint, error) {
	switch strings.ToUpper(p) {
	case "", "N":
		return modbus.PARITY_NONE, nil
	case "E":
		return modbus.PARITY_EVEN, nil
	case "O":
		return modbus.PARITY_ODD, nil
	default:
		return 0, fmt.Errorf("transport mbclient: unknown parity %q", p)
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bus.Close()
}

// ReadRegister reads one holding register (FC 3).
func (c *Client) ReadRegister(nodeID uint8, addr uint16) ([]uint16, bool) {
	return c.read(nodeID, addr, modbus.HOLDING_REGISTER)
}

// ReadInputRegister reads one input register (FC 4).
func (c *Client) ReadInputRegister(nodeID uint8, addr uint16) ([]uint16, bool) {
	return c.read(nodeID, addr, modbus.INPUT_REGISTER)
}

func (c *Client) read(nodeID uint8, addr uint16, regType modbus.RegType) ([]uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.bus.SetUnitId(nodeID); err != nil {
		c.log.Debug("set unit id", "node_id", nodeID, "error", err)
		return nil, false
	}

	regs, err := c.bus.ReadRegisters(addr, 1, regType)
	if err == nil {
		return regs, true
	}
	c.log.Debug("read register", "node_id", nodeID, "address", addr, "error", err)

	// The device answered; the link is fine.
	if isException(err) {
		return nil, false
	}
	if !c.reopen() {
		return nil, false
	}
	regs, err = c.bus.ReadRegisters(addr, 1, regType)
	if err != nil {
		c.log.Debug("read register retry", "node_id", nodeID, "address", addr, "error", err)
		return nil, false
	}
	return regs, true
}

// exceptions are the Modbus exception responses the library maps to errors.
var exceptions = []error{
	modbus.ErrIllegalFunction,
	modbus.ErrIllegalDataAddress,
	modbus.ErrIllegalDataValue,
	modbus.ErrServerDeviceFailure,
	modbus.ErrAcknowledge,
	modbus.ErrServerDeviceBusy,
	modbus.ErrMemoryParityError,
	modbus.ErrGWPathUnavailable,
	modbus.ErrGWTargetFailedToRespond,
}

func isException(err error) bool {
	for _, e := range exceptions {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// reopen recycles the connection. Caller holds mu.
func (c *Client) reopen() bool {
	_ = c.bus.Close()
	if c.reopenDelay > 0 {
		time.Sleep(c.reopenDelay)
	}
	if err := c.bus.Open(); err != nil {
		c.log.Warn("reopen failed", "error", err)
		return false
	}
	return true
}

// WriteRegister writes one holding register (FC 6). Writes are not retried.
func (c *Client) WriteRegister(nodeID uint8, addr, value uint16) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.bus.SetUnitId(nodeID); err != nil {
		c.log.Warn("set unit id", "node_id", nodeID, "error", err)
		return false
	}
	if err := c.bus.WriteRegister(addr, value); err != nil {
		c.log.Warn("write register", "node_id", nodeID, "address", addr, "value", value, "error", err)
		return false
	}
	return true
}
