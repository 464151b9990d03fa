// Package history writes every poll result to InfluxDB as one point.
package history
