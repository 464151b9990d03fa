// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/almirdelkic/savevtr/internal/regmap"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// All problems are reported at once, joined by "; ".
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}

	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	// ------------------------------------------------------------
	// UNIT
	// ------------------------------------------------------------

	if cfg.Unit.ID == "" {
		add("unit.id is required")
	} else if strings.ContainsAny(cfg.Unit.ID, "/+# ") {
		add("unit.id %q must not contain '/', '+', '#' or spaces", cfg.Unit.ID)
	}
	if _, err := regmap.LookupVariant(cfg.Unit.Variant); err != nil {
		add("unit.variant %q is unknown (want one of %s)", cfg.Unit.Variant, strings.Join(regmap.Variants(), ", "))
	}

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	t := cfg.Transport
	switch strings.ToLower(t.Backend) {
	case BackendGoburrow, BackendSimonvetter:
	default:
		add("transport.backend %q must be %s or %s", t.Backend, BackendGoburrow, BackendSimonvetter)
	}

	switch strings.ToLower(t.Mode) {
	case ModeTCP:
		if t.Endpoint == "" {
			add("transport.endpoint is required in tcp mode")
		} else if _, _, err := net.SplitHostPort(t.Endpoint); err != nil {
			add("transport.endpoint %q must be host:port", t.Endpoint)
		}
	case ModeRTU:
		validateSerial(t.Serial, add)
		// 0 is broadcast and 248..255 are reserved on a serial line.
		if cfg.Unit.NodeID == 0 || cfg.Unit.NodeID > 247 {
			add("unit.node_id %d must be within 1..247 in rtu mode", cfg.Unit.NodeID)
		}
	default:
		add("transport.mode %q must be %s or %s", t.Mode, ModeTCP, ModeRTU)
	}

	if t.TimeoutMs <= 0 {
		add("transport.timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs <= 0 {
		add("poll.interval_ms must be > 0")
	}
	if cfg.Poll.StaleAfter < 1 {
		add("poll.stale_after must be >= 1")
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level %q must be debug, info, warn or error", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		add("logging.format %q must be json or text", cfg.Logging.Format)
	}
	switch strings.ToLower(cfg.Logging.Output) {
	case "stdout", "stderr":
	default:
		add("logging.output %q must be stdout or stderr", cfg.Logging.Output)
	}

	// ------------------------------------------------------------
	// SINKS (opt-in)
	// ------------------------------------------------------------

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		add("metrics.listen is required when metrics are enabled")
	}

	if m := cfg.MQTT; m.Enabled {
		if m.Broker == "" {
			add("mqtt.broker is required when mqtt is enabled")
		}
		if m.QoS > 2 {
			add("mqtt.qos %d must be 0, 1 or 2", m.QoS)
		}
		if strings.Trim(m.TopicPrefix, "/") == "" {
			add("mqtt.topic_prefix is required when mqtt is enabled")
		} else if strings.ContainsAny(m.TopicPrefix, "+#") {
			add("mqtt.topic_prefix %q must not contain wildcards", m.TopicPrefix)
		}
	}

	if i := cfg.InfluxDB; i.Enabled {
		if i.URL == "" {
			add("influxdb.url is required when influxdb is enabled")
		}
		if i.Token == "" {
			add("influxdb.token is required when influxdb is enabled (SAVEVTR_INFLUXDB_TOKEN)")
		}
		if i.Org == "" {
			add("influxdb.org is required when influxdb is enabled")
		}
		if i.Bucket == "" {
			add("influxdb.bucket is required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}

func validateSerial(s SerialConfig, add func(string, ...any)) {
	if s.Device == "" {
		add("transport.serial.device is required in rtu mode")
	}
	if s.BaudRate <= 0 {
		add("transport.serial.baud_rate must be > 0")
	}
	if s.DataBits != 7 && s.DataBits != 8 {
		add("transport.serial.data_bits %d must be 7 or 8", s.DataBits)
	}
	switch strings.ToUpper(s.Parity) {
	case "N", "E", "O":
	default:
		add("transport.serial.parity %q must be N, E or O", s.Parity)
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		add("transport.serial.stop_bits %d must be 1 or 2", s.StopBits)
	}
}
