//go:build !ebiten

package ui

import (
	"sandfall/internal/brush"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*sandbox.Simulation, *brush.Brush, int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int, core.Stats, bool) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
