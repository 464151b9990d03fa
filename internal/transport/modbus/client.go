// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client is a single connection to one Modbus TCP endpoint or RTU line,
// backed by goburrow/modbus. It implements unit.Transport and
// unit.InputReader.
//
// Requests are serialized because the slave id lives on the shared handler
// and is set per call.
type Client struct {
	mu      sync.Mutex
	handler io.Closer
	slaveID *byte
	client  modbus.Client
	log     *slog.Logger
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

// New opens the connection. It fails fast if the endpoint is unreachable.
func New(cfg Config) (*Client, error) {
	switch cfg.Mode {
	case "tcp":
		if cfg.Endpoint == "" {
			return nil, errors.New("transport modbus: endpoint required")
		}
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, err
		}
		return newClient(modbus.NewClient(h), h, &h.SlaveId, cfg.Logger), nil

	case "rtu":
		if cfg.Device == "" {
			return nil, errors.New("transport modbus: serial device required")
		}
		h := modbus.NewRTUClientHandler(cfg.Device)
		h.BaudRate = cfg.BaudRate
		h.DataBits = cfg.DataBits
		h.Parity = cfg.Parity
		h.StopBits = cfg.StopBits
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, err
		}
		return newClient(modbus.NewClient(h), h, &h.SlaveId, cfg.Logger), nil

	default:
		return nil, errors.New("transport modbus: mode must be tcp or rtu")
	}
}

func newClient(c modbus.Client, h io.Closer, slaveID *byte, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		handler: h,
		slaveID: slaveID,
		client:  c,
		log:     log.With("backend", "goburrow"),
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ReadRegister reads one holding register (FC 3).
func (c *Client) ReadRegister(nodeID uint8, addr uint16) ([]uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	*c.slaveID = nodeID

	data, err := c.client.ReadHoldingRegisters(addr, 1)
	if err != nil {
		c.log.Debug("read holding register", "node_id", nodeID, "address", addr, "error", err)
		return nil, false
	}
	return unpackRegisters(data), true
}

// ReadInputRegister reads one input register (FC 4).
func (c *Client) ReadInputRegister(nodeID uint8, addr uint16) ([]uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	*c.slaveID = nodeID

	data, err := c.client.ReadInputRegisters(addr, 1)
	if err != nil {
		c.log.Debug("read input register", "node_id", nodeID, "address", addr, "error", err)
		return nil, false
	}
	return unpackRegisters(data), true
}

// WriteRegister writes one holding register (FC 6).
func (c *Client) WriteRegister(nodeID uint8, addr, value uint16) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	*c.slaveID = nodeID

	if _, err := c.client.WriteSingleRegister(addr, value); err != nil {
		c.log.Warn("write register", "node_id", nodeID, "address", addr, "value", value, "error", err)
		return false
	}
	return true
}

// unpackRegisters decodes big-endian register payload bytes.
// A trailing odd byte is dropped.
func unpackRegisters(data []byte) []uint16 {
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
