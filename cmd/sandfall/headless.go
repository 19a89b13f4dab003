package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"sandfall/internal/core"
	"sandfall/internal/sandbox"
	"sandfall/internal/storage"
)

var (
	flagTicks     int
	flagEvery     int
	flagScene     string
	flagSave      string
	flagSpawnRain string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Simulate without a display and print statistics",
	Long: `Advance the sandbox a fixed number of ticks as fast as possible.

Examples:
  sandfall headless --ticks 600 --rain sand --save dunes
  sandfall headless --scene dunes --ticks 120 --every 10`,
	Run: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	headlessCmd.Flags().IntVar(&flagEvery, "every", 0, "Log stats every N ticks (0 = only at the end)")
	headlessCmd.Flags().StringVar(&flagScene, "scene", "", "Load a saved scene before simulating")
	headlessCmd.Flags().StringVar(&flagSave, "save", "", "Save the final grid as a named scene")
	headlessCmd.Flags().StringVar(&flagSpawnRain, "rain", "", "Drop a row of this material every tick")
}

func runHeadless(_ *cobra.Command, _ []string) {
	cfg, logger := setup()

	world := core.NewWorld(cfg, core.Options{Logger: logger})
	if flagScene != "" {
		loadScene(cfg, world, flagScene, logger)
	}

	if flagSpawnRain != "" {
		m, err := sandbox.ParseMaterial(flagSpawnRain)
		if err != nil {
			exitf("Error: %v", err)
		}
		sim := world.Sim()
		world.OnTick(func(st core.Stats) {
			g := sim.Grid()
			x := int(st.Tick*7) % g.Width()
			sim.Place(x, 0, m)
		})
	}
	if flagEvery > 0 {
		world.OnTick(func(st core.Stats) {
			if st.Tick%uint64(flagEvery) == 0 {
				logger.Info("progress", "tick", st.Tick, "cells", st.Occupied, "strong", st.Strong, "weak", st.Weak, "shapes", st.Shapes)
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := world.RunTicks(ctx, flagTicks)
	if err != nil {
		logger.Warn("interrupted", "error", err)
	}
	fmt.Println(st)

	if flagSave == "" {
		return
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("Error opening scene database: %v", err)
	}
	defer store.Close()
	id, err := store.SaveScene(storage.Capture(flagSave, world.Seed(), world.Grid()))
	if err != nil {
		exitf("Error saving scene: %v", err)
	}
	logger.Info("scene saved", "name", flagSave, "id", id, "cells", st.Occupied)
}
