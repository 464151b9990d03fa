// cmd/savevtr/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/almirdelkic/savevtr/internal/config"
	"github.com/almirdelkic/savevtr/internal/history"
	"github.com/almirdelkic/savevtr/internal/logging"
	"github.com/almirdelkic/savevtr/internal/metrics"
	"github.com/almirdelkic/savevtr/internal/mqtt"
	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/transport"
	"github.com/almirdelkic/savevtr/internal/unit"
)

var version = "dev"

func main() {
	cfgPath := flag.String("config", "savevtr.yaml", "path to config file")
	once := flag.Bool("once", false, "refresh once, print the snapshot and exit")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	os.Exit(run(cfg, *once))
}

// run owns every resource so deferred closes happen before exit.
func run(cfg *config.Config, once bool) int {
	logger := logging.New(cfg.Logging, version).With("unit", cfg.Unit.ID)

	// --------------------
	// Transport + poller
	// --------------------

	conn, err := transport.Build(cfg.Transport, logger.Logger)
	if err != nil {
		logger.Error("transport build failed", "error", err)
		return 1
	}
	defer conn.Close()

	p, err := poller.Build(cfg, conn, logger.Logger)
	if err != nil {
		logger.Error("poller build failed", "error", err)
		return 1
	}

	if once {
		return runOnce(p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Sinks
	// --------------------

	var (
		sinks []poller.Sink
		wg    sync.WaitGroup
	)

	if cfg.Metrics.Enabled {
		store := metrics.NewStore()
		sinks = append(sinks, store)
		reg := metrics.NewRegistry(metrics.NewCollector(cfg.Unit.ID, store))

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := metrics.Serve(ctx, cfg.Metrics.Listen, reg, logger.Logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if cfg.MQTT.Enabled {
		mc, err := mqtt.Connect(cfg.MQTT, cfg.Unit.ID, logger.Logger)
		if err != nil {
			logger.Error("mqtt connect failed", "broker", cfg.MQTT.Broker, "error", err)
			return 1
		}
		defer mc.Close()

		sinks = append(sinks, mqtt.NewStatePublisher(mc))

		h := mqtt.NewCommandHandler(mc.Topics(), p, logger.Logger)
		if err := mqtt.SubscribeCommands(mc, h); err != nil {
			logger.Error("mqtt command subscription failed", "error", err)
			return 1
		}
	}

	if cfg.InfluxDB.Enabled {
		hw, err := history.Connect(cfg.InfluxDB, logger.Logger)
		if err != nil {
			logger.Error("influxdb connect failed", "url", cfg.InfluxDB.URL, "error", err)
			return 1
		}
		defer hw.Close()
		sinks = append(sinks, hw)
	}

	d, err := poller.NewDispatcher(cfg.Unit.ID, cfg.Poll.StaleAfter, logger.Logger, sinks...)
	if err != nil {
		logger.Error("dispatcher build failed", "error", err)
		return 1
	}

	// --------------------
	// Run until signalled
	// --------------------

	out := make(chan poller.PollResult)

	wg.Add(2)
	go func() {
		defer wg.Done()
		d.Run(ctx, out)
	}()
	go func() {
		defer wg.Done()
		p.Run(ctx, out)
	}()

	logger.Info("savevtr started",
		"variant", cfg.Unit.Variant,
		"backend", cfg.Transport.Backend,
		"mode", cfg.Transport.Mode,
		"interval", cfg.Poll.Interval(),
		"sinks", len(sinks),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	wg.Wait()
	return 0
}

// runOnce refreshes once and prints the snapshot as JSON.
// Exit code 2 means the refresh was incomplete.
func runOnce(p *poller.Poller) int {
	res := p.PollOnce()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Unit     string        `json:"unit"`
		OK       bool          `json:"ok"`
		Snapshot unit.Snapshot `json:"snapshot"`
	}{res.UnitID, res.OK, res.Snapshot}); err != nil {
		log.Printf("encode snapshot: %v", err)
		return 1
	}
	if !res.OK {
		return 2
	}
	return 0
}
