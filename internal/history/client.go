// internal/history/client.go
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/almirdelkic/savevtr/internal/config"
)

const (
	defaultConnectTimeout = 10 * time.Second

	batchSize       = 20
	flushIntervalMs = 10_000
)

type pointWriter interface {
	WritePoint(p *write.Point)
	Flush()
}

// Writer records poll results as InfluxDB points. It implements poller.Sink.
// Writes are batched and non-blocking; async errors are logged.
type Writer struct {
	client influxdb2.Client // nil in tests
	api    pointWriter
	log    *slog.Logger
}

// Connect pings the server and opens a non-blocking write API on org/bucket.
func Connect(cfg config.InfluxDBConfig, log *slog.Logger) (*Writer, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(batchSize).
			SetFlushInterval(flushIntervalMs),
	)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	wapi := client.WriteAPI(cfg.Org, cfg.Bucket)
	w := &Writer{
		client: client,
		api:    wapi,
		log:    log.With("component", "history", "bucket", cfg.Bucket),
	}
	go w.drainErrors(wapi.Errors())
	return w, nil
}

func (w *Writer) drainErrors(errs <-chan error) {
	for err := range errs {
		w.log.Warn("influxdb write failed", "error", err)
	}
}

// Close flushes pending points and releases the client.
func (w *Writer) Close() error {
	if w == nil || w.api == nil {
		return nil
	}
	w.api.Flush()
	if w.client != nil {
		w.client.Close()
	}
	return nil
}
