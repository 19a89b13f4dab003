package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"sandfall/internal/brush"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
	"sandfall/internal/term"
)

var flagTermScene string

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the sandbox in the terminal",
	Long: `Render the sandbox with half-block glyphs, two grid rows per line.

Controls:
  arrows             move the cursor
  p / enter, x       paint / erase at the cursor
  mouse              left paints, right erases
  0-9                select material, +/- resize the brush
  space              pause, n steps once while paused
  r / s              reset with the same / a fresh seed
  q, esc             quit`,
	Run: runTerm,
}

func init() {
	termCmd.Flags().StringVar(&flagTermScene, "scene", "", "Load a saved scene on start")
}

func runTerm(_ *cobra.Command, _ []string) {
	cfg, logger := setup()
	// Log lines would tear the screen; only errors get through.
	if logger.GetLevel() < log.ErrorLevel {
		logger.SetLevel(log.ErrorLevel)
	}

	world := core.NewWorld(cfg, core.Options{Logger: logger})
	if flagTermScene != "" {
		loadScene(cfg, world, flagTermScene, logger)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		exitf("Failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		exitf("Failed to initialize terminal: %v", err)
	}
	defer screen.Fini()

	m, _ := sandbox.ParseMaterial(cfg.Brush.Material)
	viewer := term.NewViewer(screen, world, brush.New(cfg.Brush.Radius, m), cfg.Sim.TPS, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		screen.Fini()
		exitf("Error: %v", err)
	}
}
