package ui

import (
	"image/color"

	"sandfall/internal/collider"
	"sandfall/internal/sandbox"
)

// Segment is a line in screen pixels.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          color.RGBA
}

var categoryColors = map[sandbox.CollisionType]color.RGBA{
	sandbox.CollisionSolid: {R: 240, G: 240, B: 240, A: 220},
	sandbox.CollisionWater: {R: 64, G: 164, B: 223, A: 200},
	sandbox.CollisionAcid:  {R: 120, G: 230, B: 60, A: 200},
	sandbox.CollisionFire:  {R: 255, G: 120, B: 40, A: 200},
}

var chunkColor = color.RGBA{R: 200, G: 60, B: 60, A: 160}

// ShapeSegments flattens every polyline into screen-space segments. Cell
// corner (x, y) maps to pixel (x*scale, y*scale).
func ShapeSegments(shapes []collider.Shape, scale int) []Segment {
	s := float64(max(scale, 1))
	var out []Segment
	for _, sh := range shapes {
		col, ok := categoryColors[sh.Key.Category]
		if !ok {
			continue
		}
		for i := 1; i < len(sh.Line); i++ {
			a, b := sh.Line[i-1], sh.Line[i]
			out = append(out, Segment{
				X1: float64(a.X()) * s, Y1: float64(a.Y()) * s,
				X2: float64(b.X()) * s, Y2: float64(b.Y()) * s,
				Color: col,
			})
		}
	}
	return out
}

// ChunkOutlines returns the border of every strongly active chunk.
func ChunkOutlines(g *sandbox.Grid, scale int) []Segment {
	s := float64(max(scale, 1))
	var out []Segment
	for _, c := range g.Chunks() {
		if !c.IsStrongTicked() {
			continue
		}
		ox, oy := c.Origin()
		x0, y0 := float64(ox)*s, float64(oy)*s
		x1, y1 := float64(ox+c.Width())*s, float64(oy+c.Height())*s
		out = append(out,
			Segment{x0, y0, x1, y0, chunkColor},
			Segment{x1, y0, x1, y1, chunkColor},
			Segment{x1, y1, x0, y1, chunkColor},
			Segment{x0, y1, x0, y0, chunkColor},
		)
	}
	return out
}
