// sandfall is a falling-sand sandbox with chunked activity tracking and
// collider extraction.
//
// Usage:
//
//	sandfall run                 - Open the interactive window (ebiten build tag)
//	sandfall headless            - Simulate a fixed number of ticks and print stats
//	sandfall term                - Interactive terminal viewer
//	sandfall serve               - Stream collider geometry over websocket
//	sandfall scenes              - List or delete saved scenes
//	sandfall sweep               - Run scenarios across a parameter grid
//	sandfall materials           - Print the material table
//
// Global flags:
//
//	--config <path>       - Configuration file (default search order otherwise)
//	--seed <value>        - Override the configured RNG seed
//	--log-level <level>   - debug, info, warn or error
//	--set key=value       - Override a configuration key, repeatable
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sandfall/internal/config"
	"sandfall/internal/core"
	"sandfall/internal/logging"
	"sandfall/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagSet      []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandfall",
	Short: "Falling-sand sandbox",
	Long: `sandfall simulates granular, liquid and gaseous materials on a chunked
grid and extracts collider outlines from the result.

Examples:
  sandfall headless --ticks 600 --save demo
  sandfall term --scene demo
  sandfall serve --addr :8765
  sandfall sweep --scenario sandpile --velocities 1,2,4`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a configuration file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use the configured seed)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringArrayVar(&flagSet, "set", nil, "Override a config key, e.g. --set grid.chunks_x=40")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(materialsCmd)
}

// setup loads the configuration, applies command-line overrides and builds
// the logger.
func setup() (config.Config, *log.Logger) {
	cfg, src, err := config.LoadWithSource(flagConfig)
	if err != nil {
		exitf("Error loading config: %v", err)
	}
	kv, err := config.ParseOverrides(flagSet)
	if err != nil {
		exitf("Error: %v", err)
	}
	cfg = config.FromMap(cfg, kv)
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		exitf("Error: %v", err)
	}

	logger := logging.New(cfg.Log.Level, "sandfall")
	logger.Debug("config loaded", "source", src, "width", cfg.Grid.Width(), "height", cfg.Grid.Height(), "seed", cfg.Sim.Seed)
	return cfg, logger
}

// loadScene replaces the world contents with the named saved scene.
func loadScene(cfg config.Config, w *core.World, name string, logger *log.Logger) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("Error opening scene database: %v", err)
	}
	defer store.Close()

	scene, err := store.LoadScene(name)
	if err != nil {
		exitf("Error loading scene: %v", err)
	}
	if scene == nil {
		exitf("Error: no scene named %q. Run 'sandfall scenes' to list them.", name)
	}
	placed, skipped := scene.Apply(w.Sim())
	w.Sync()
	logger.Info("scene loaded", "name", name, "placed", placed, "skipped", skipped)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
