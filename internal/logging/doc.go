// Package logging provides structured logging for savevtr.
//
// It wraps log/slog so every entry carries the service name and build
// version. JSON output is the default; text output is meant for a terminal.
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// MQTT passwords and InfluxDB tokens must never be logged.
package logging
