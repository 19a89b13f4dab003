// Package brush paints materials into a simulation around a cursor.
package brush

import (
	"sandfall/internal/sandbox"
)

// MaxRadius bounds Resize.
const MaxRadius = 32

// Brush is a square stamp of side 2*Radius+1 centred on the cursor.
type Brush struct {
	Radius   int
	Material sandbox.Material
}

// New returns a brush, clamping radius into [0, MaxRadius].
func New(radius int, m sandbox.Material) Brush {
	b := Brush{Material: m}
	b.Resize(radius)
	return b
}

// Resize sets the radius, clamped into [0, MaxRadius].
func (b *Brush) Resize(radius int) {
	b.Radius = min(max(radius, 0), MaxRadius)
}

// Cells calls fn for every in-bounds cell under the brush centred at
// (cx, cy), row by row.
func (b Brush) Cells(g *sandbox.Grid, cx, cy int, fn func(x, y int)) {
	for y := cy - b.Radius; y <= cy+b.Radius; y++ {
		for x := cx - b.Radius; x <= cx+b.Radius; x++ {
			if g.InBounds(x, y) {
				fn(x, y)
			}
		}
	}
}

// Paint spawns the brush material into every empty cell under the brush and
// returns how many cells were filled. Occupied cells are left untouched.
func (b Brush) Paint(sim *sandbox.Simulation, cx, cy int) int {
	if b.Material == sandbox.None {
		return b.Erase(sim, cx, cy)
	}
	g := sim.Grid()
	placed := 0
	b.Cells(g, cx, cy, func(x, y int) {
		if g.Get(x, y) != nil {
			return
		}
		if sim.Place(x, y, b.Material) {
			placed++
		}
	})
	return placed
}

// Erase clears every occupied cell under the brush and returns the count.
func (b Brush) Erase(sim *sandbox.Simulation, cx, cy int) int {
	g := sim.Grid()
	cleared := 0
	b.Cells(g, cx, cy, func(x, y int) {
		if g.Get(x, y) == nil {
			return
		}
		g.Set(x, y, nil)
		cleared++
	})
	return cleared
}

// Palette maps the number keys 1-9 and 0 to materials.
var Palette = [10]sandbox.Material{
	sandbox.Sand, sandbox.Water, sandbox.Stone, sandbox.Wood, sandbox.Acid,
	sandbox.Lava, sandbox.Oil, sandbox.Gunpowder, sandbox.TNT, sandbox.Dirt,
}

// ForDigit returns the palette material for digit d (0-9).
func ForDigit(d int) (sandbox.Material, bool) {
	if d < 0 || d > 9 {
		return sandbox.None, false
	}
	if d == 0 {
		return Palette[9], true
	}
	return Palette[d-1], true
}
