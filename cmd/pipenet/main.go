package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dd0wney/pipenet/pkg/config"
	"github.com/dd0wney/pipenet/pkg/logging"
	"github.com/dd0wney/pipenet/pkg/metrics"
	"github.com/dd0wney/pipenet/pkg/pipenet"
	"github.com/dd0wney/pipenet/pkg/placement"
	"github.com/dd0wney/pipenet/pkg/pubsub"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML configuration file")
		logLevel    = flag.String("log-level", "", "Log level (overrides config and PIPENET_LOG_LEVEL)")
		serve       = flag.Bool("serve", false, "Keep running and serve /metrics after the scenario")
		metricsAddr = flag.String("metrics-addr", "", "Metrics listen address (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if env := os.Getenv(logging.LevelEnv); env != "" && *logLevel == "" {
		cfg.LogLevel = env
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if *serve {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	logging.SetDefaultLogger(logger)

	if err := run(cfg, logger, os.Stdout, *serve); err != nil {
		logger.Error("pipenet failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger, out io.Writer, serve bool) error {
	reg := metrics.NewRegistry()
	ctrl := placement.New(placement.Config{
		Logger:        logger,
		Metrics:       reg,
		Bus:           pubsub.NewBus(cfg.Events.Buffer),
		DefaultVolume: cfg.Segments.DefaultVolume,
	})
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := ctrl.Bus().Subscribe(ctx, pubsub.TopicSegments, pubsub.TopicNetworks)
	if err != nil {
		return err
	}
	go traceEvents(sub, logger)

	if cfg.Scenario != nil {
		res, err := ctrl.RunScenario(cfg.Scenario)
		if err != nil {
			return err
		}
		for _, rej := range res.Rejected {
			fmt.Fprintf(out, "rejected: %v\n", rej)
		}
		printSnapshot(out, ctrl.Snapshot(), res.IDs)
		fmt.Fprintf(out, "%d events dropped\n", ctrl.Bus().Dropped())
	} else {
		fmt.Fprintln(out, "no scenario configured")
	}

	if err := ctrl.CheckInvariants(); err != nil {
		return fmt.Errorf("topology inconsistent: %w", err)
	}

	if !serve {
		return nil
	}
	return serveMetrics(cfg.Metrics.Addr, reg, logger)
}

// traceEvents logs every topology event until the subscription closes.
func traceEvents(sub *pubsub.Subscription, logger logging.Logger) {
	for ev := range sub.Events() {
		logger.Debug("topology event",
			logging.String("topic", string(ev.Topic)),
			logging.String("kind", ev.Kind),
			logging.Uint64("segment", ev.Segment),
			logging.Uint64("network", ev.Network),
			logging.Int("size", ev.Size))
	}
}

func printSnapshot(out io.Writer, snap placement.Snapshot, ids map[string]pipenet.SegmentID) {
	names := make(map[pipenet.SegmentID]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}

	fmt.Fprintf(out, "%d segments, %d anchored, %d networks\n",
		snap.Stats.Segments, snap.Stats.Anchored, snap.Stats.Networks)
	for _, n := range snap.Networks {
		members := make([]string, 0, len(n.Members))
		for _, id := range n.Members {
			if name, ok := names[id]; ok {
				members = append(members, name)
			} else {
				members = append(members, fmt.Sprintf("#%d", id))
			}
		}
		fmt.Fprintf(out, "network %d: volume %.1f, members [%s]\n", n.ID, n.Volume, strings.Join(members, " "))
	}
}

func serveMetrics(addr string, reg *metrics.Registry, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
