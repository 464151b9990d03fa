// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path over the defaults, then applies environment overrides.
// It does not validate; callers run Validate and Normalize next.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Parse decodes YAML into cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file: defaults only
		}
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Default returns the configuration used for anything the file omits.
func Default() *Config {
	return &Config{
		Unit: UnitConfig{
			ID:      "savevtr",
			NodeID:  1,
			Variant: "save-vtr",
		},
		Transport: TransportConfig{
			Backend: BackendGoburrow,
			Mode:    ModeTCP,
			Serial: SerialConfig{
				BaudRate: 9600,
				DataBits: 8,
				Parity:   "N",
				StopBits: 1,
			},
			TimeoutMs: 2000,
		},
		Poll: PollConfig{
			IntervalMs: 10000,
			StaleAfter: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Listen: ":9090",
		},
		MQTT: MQTTConfig{
			Broker:      "tcp://127.0.0.1:1883",
			TopicPrefix: "savevtr",
			QoS:         1,
		},
		InfluxDB: InfluxDBConfig{
			URL: "http://127.0.0.1:8086",
		},
	}
}

// applyEnvOverrides applies SAVEVTR_* variables. Secrets belong here
// rather than in the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SAVEVTR_ENDPOINT"); v != "" {
		cfg.Transport.Endpoint = v
	}
	if v := os.Getenv("SAVEVTR_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("SAVEVTR_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv("SAVEVTR_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}
