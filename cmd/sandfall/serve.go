package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sandfall/internal/core"
	"sandfall/internal/stream"
)

var (
	flagServeAddr  string
	flagServeScene string
	flagServeTicks uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Simulate in real time and stream collider geometry",
	Long: `Run the sandbox at the configured tick rate and publish collider
spawn/despawn events to websocket clients.

Endpoints:
  /ws       websocket; the first frame is a snapshot of all live geometry
  /status   JSON with client, shape and tick counters

Examples:
  sandfall serve
  sandfall serve --addr :9000 --scene dunes`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeScene, "scene", "", "Load a saved scene on start")
	serveCmd.Flags().Uint64Var(&flagServeTicks, "ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, logger := setup()
	addr := cfg.Stream.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	hub := stream.NewHub(logger.WithPrefix("stream"))
	world := core.NewWorld(cfg, core.Options{Sink: hub, Logger: logger})
	if flagServeScene != "" {
		loadScene(cfg, world, flagServeScene, logger)
	}
	world.OnTick(func(st core.Stats) { hub.Flush(st.Tick) })

	server := stream.NewServer(addr, hub)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
		}
	}()
	fmt.Printf("Streaming colliders on ws://%s/ws\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := world.Run(ctx, cfg.Sim.TPS, flagServeTicks); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("world stopped", "error", err)
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdown); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	hub.Close()
	logger.Info("stopped", "tick", world.Stats().Tick)
}
