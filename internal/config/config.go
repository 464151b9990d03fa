// internal/config/config.go
package config

import "time"

type Config struct {
	Unit      UnitConfig      `yaml:"unit"`
	Transport TransportConfig `yaml:"transport"`
	Poll      PollConfig      `yaml:"poll"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
}

// ---- UNIT ----

type UnitConfig struct {
	ID            string `yaml:"id"`
	NodeID        uint8  `yaml:"node_id"`
	Variant       string `yaml:"variant"`
	RefreshOnRead bool   `yaml:"refresh_on_read"`
}

// ---- TRANSPORT ----

const (
	BackendGoburrow    = "goburrow"
	BackendSimonvetter = "simonvetter"

	ModeTCP = "tcp"
	ModeRTU = "rtu"
)

type TransportConfig struct {
	Backend   string       `yaml:"backend"`
	Mode      string       `yaml:"mode"`
	Endpoint  string       `yaml:"endpoint"` // host:port, tcp only
	Serial    SerialConfig `yaml:"serial"`   // rtu only
	TimeoutMs int          `yaml:"timeout_ms"`
}

type SerialConfig struct {
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N, E or O
	StopBits int    `yaml:"stop_bits"`
}

func (t TransportConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutMs) * time.Millisecond
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`

	// StaleAfter is the number of consecutive failed refreshes after which
	// health moves from stale to error.
	StaleAfter int `yaml:"stale_after"`
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // tcp://host:port
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         byte   `yaml:"qos"`
}

// ---- INFLUXDB ----

type InfluxDBConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Org     string `yaml:"org"`
	Bucket  string `yaml:"bucket"`
}
