// Package ui holds the debug overlay and the HUD panel shown next to the
// simulation view.
package ui

import (
	"fmt"
	"strconv"

	"sandfall/internal/brush"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

// Control describes a HUD parameter with -/+ buttons.
type Control struct {
	Key   string
	Label string
	Step  float64
	Min   float64
	Max   float64
}

// Controls lists the adjustable parameters in display order.
var Controls = []Control{
	{Key: "terminal_velocity", Label: "Terminal velocity", Step: 1, Min: 1, Max: 16},
	{Key: "explosion_force", Label: "Explosion force", Step: 1, Min: 1, Max: 50},
	{Key: "brush_radius", Label: "Brush radius", Step: 1, Min: 0, Max: brush.MaxRadius},
}

// Value reads the current value of the control named key.
func Value(sim *sandbox.Simulation, b *brush.Brush, key string) float64 {
	switch key {
	case "terminal_velocity":
		return float64(sim.Params().TerminalVelocity)
	case "explosion_force":
		return float64(sim.Params().ExplosionForce)
	case "brush_radius":
		return float64(b.Radius)
	}
	return 0
}

// Adjust moves the control named key by dir steps, clamped to its bounds. It
// reports the new value and whether anything changed.
func Adjust(sim *sandbox.Simulation, b *brush.Brush, key string, dir int) (float64, bool) {
	var ctrl *Control
	for i := range Controls {
		if Controls[i].Key == key {
			ctrl = &Controls[i]
			break
		}
	}
	if ctrl == nil || dir == 0 {
		return 0, false
	}
	cur := Value(sim, b, key)
	next := min(max(cur+float64(dir)*ctrl.Step, ctrl.Min), ctrl.Max)
	if next == cur {
		return cur, false
	}
	switch key {
	case "terminal_velocity":
		sim.SetParams(sandbox.Params{TerminalVelocity: int(next)})
	case "explosion_force":
		sim.SetParams(sandbox.Params{ExplosionForce: float32(next)})
	case "brush_radius":
		b.Resize(int(next))
	}
	return next, true
}

// FormatValue renders a control value for the panel.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StatusLines returns the informational rows shown above the controls.
func StatusLines(st core.Stats, b brush.Brush, paused bool) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("Tick      %d (%s)", st.Tick, state),
		fmt.Sprintf("Cells     %d", st.Occupied),
		fmt.Sprintf("Strong    %d/%d", st.Strong, st.Chunks),
		fmt.Sprintf("Weak      %d/%d", st.Weak, st.Chunks),
		fmt.Sprintf("Shapes    %d", st.Shapes),
		fmt.Sprintf("Material  %s", b.Material),
	}
}
