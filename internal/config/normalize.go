// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Unit.Variant = strings.ToLower(strings.TrimSpace(cfg.Unit.Variant))

	cfg.Transport.Backend = strings.ToLower(cfg.Transport.Backend)
	cfg.Transport.Mode = strings.ToLower(cfg.Transport.Mode)
	cfg.Transport.Serial.Parity = strings.ToUpper(cfg.Transport.Serial.Parity)

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	cfg.Logging.Output = strings.ToLower(cfg.Logging.Output)

	// Topics are built as prefix + "/" + ...; no leading or trailing slash.
	cfg.MQTT.TopicPrefix = strings.Trim(cfg.MQTT.TopicPrefix, "/")
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "savevtr-" + cfg.Unit.ID
	}
}
