//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandfall/internal/collider"
	"sandfall/internal/sandbox"
)

// Overlay draws collider geometry and chunk activity on top of the grid.
type Overlay struct {
	grid   *sandbox.Grid
	shapes *collider.Registry
	scale  int

	showShapes bool
	showChunks bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay reading geometry from shapes.
func NewOverlay(grid *sandbox.Grid, shapes *collider.Registry, scale int) *Overlay {
	o := &Overlay{grid: grid, shapes: shapes, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: C for colliders, G for chunk activity.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showShapes = !o.showShapes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showChunks = !o.showChunks
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showChunks {
		for _, s := range ChunkOutlines(o.grid, o.scale) {
			o.drawLine(screen, s, 1)
		}
	}
	if o.showShapes && o.shapes != nil {
		thickness := math.Max(1, float64(o.scale)/2)
		for _, s := range ShapeSegments(o.shapes.Shapes(), o.scale) {
			o.drawLine(screen, s, thickness)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, s Segment, thickness float64) {
	dx := s.X2 - s.X1
	dy := s.Y2 - s.Y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(s.X1, s.Y1)
	op.ColorScale.ScaleWithColor(s.Color)
	screen.DrawImage(o.pixel, op)
}
