package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/ecoscript/config"
	"github.com/pthm-cable/ecoscript/game"
	"github.com/pthm-cable/ecoscript/stream"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	turns := flag.Int("turns", 0, "Stop after N turns (0 = config, then unlimited)")
	delay := flag.Duration("delay", 0, "Pause between printed frames (overrides config when set)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output census stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Census window size in turns (0 = use config)")
	listen := flag.String("listen", "", "Address for the websocket snapshot stream, e.g. :8080")
	quiet := flag.Bool("quiet", false, "Do not print snapshots")

	flag.Parse()

	// Set up slog (JSON to stderr; stdout carries the snapshots)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	opts := game.DefaultOptions(cfg)
	opts.OutputDir = *outputDir
	opts.LogStats = opts.LogStats || *logStats
	if *seed != 0 {
		opts.Seed = *seed
	}
	if *statsWindow > 0 {
		opts.StatsWindow = *statsWindow
	}
	maxTurns := cfg.Simulation.Turns
	if *turns > 0 {
		maxTurns = *turns
	}
	frameDelay := cfg.Simulation.Delay
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "delay" {
			frameDelay = *delay
		}
	})
	addr := cfg.Stream.Listen
	if *listen != "" {
		addr = *listen
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *stream.Hub
	if addr != "" {
		hub = stream.NewHub()
		srv := startStream(addr, hub)
		defer func() {
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("stream server shutdown failed", "error", err)
			}
		}()
	}

	slog.Info("starting simulation",
		"seed", g.Seed(),
		"max_turns", maxTurns,
		"delay", frameDelay,
		"listen", addr,
	)

	out := bufio.NewWriter(os.Stdout)
	emit := func(snapshot string) {
		if hub != nil {
			hub.Broadcast(stream.Frame{Turn: g.Tick(), Snapshot: snapshot})
		}
		if *quiet {
			return
		}
		fmt.Fprintf(out, "%s\n\n", snapshot)
		out.Flush()
	}

	emit(g.String())

	next, done := iter.Pull(g.Snapshots())
	defer done()
	for maxTurns == 0 || int(g.Tick()) < maxTurns {
		if frameDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(frameDelay):
			}
		}
		if ctx.Err() != nil {
			slog.Info("interrupted", "turn", g.Tick())
			return
		}

		snapshot, ok := next()
		if !ok {
			return
		}
		emit(snapshot)
	}
	slog.Info("max turns reached", "turn", g.Tick())
}

// startStream serves the hub at /ws in the background.
func startStream(addr string, hub *stream.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("stream server failed", "error", err)
		}
	}()
	slog.Info("streaming snapshots", "addr", addr, "path", "/ws")
	return srv
}
