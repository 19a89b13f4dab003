//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"sandfall/internal/app"
	"sandfall/internal/brush"
	"sandfall/internal/collider"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

var flagRunScene string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive sandbox window",
	Long: `Open a window showing the sandbox.

Controls:
  left/right mouse   paint / erase with the brush
  wheel              resize the brush
  0-9                select material
  space              pause, n steps once while paused
  r / s              reset with the same / a fresh seed
  c / g              toggle collider / chunk overlays
  q, esc             quit`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunScene, "scene", "", "Load a saved scene on start")
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, logger := setup()

	shapes := collider.NewRegistry()
	world := core.NewWorld(cfg, core.Options{Sink: shapes, Logger: logger})
	if flagRunScene != "" {
		loadScene(cfg, world, flagRunScene, logger)
	}

	m, _ := sandbox.ParseMaterial(cfg.Brush.Material)
	game := app.New(world, shapes, brush.New(cfg.Brush.Radius, m), cfg.Render.Scale)

	ebiten.SetWindowTitle("sandfall")
	ebiten.SetTPS(cfg.Sim.TPS)
	ebiten.SetWindowSize(cfg.Grid.Width()*cfg.Render.Scale+app.HUDWidth, cfg.Grid.Height()*cfg.Render.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("window closed with error", "error", err)
	}
}
