package render

import (
	"image/color"

	"sandfall/internal/sandbox"
)

// FillRGBA repaints the strongly active chunks of g into buf, a row-major
// RGBA buffer of g.Width()*g.Height() pixels. Empty cells take bg. It
// returns the number of chunks painted, or 0 when buf has the wrong size.
func FillRGBA(buf []byte, g *sandbox.Grid, bg color.RGBA) int {
	if len(buf) != 4*g.Width()*g.Height() {
		return 0
	}
	painted := 0
	for _, c := range g.Chunks() {
		if !c.IsStrongTicked() {
			continue
		}
		paintChunk(buf, g.Width(), c, bg)
		painted++
	}
	return painted
}

// FillAllRGBA repaints every chunk regardless of activity.
func FillAllRGBA(buf []byte, g *sandbox.Grid, bg color.RGBA) {
	if len(buf) != 4*g.Width()*g.Height() {
		return
	}
	for _, c := range g.Chunks() {
		paintChunk(buf, g.Width(), c, bg)
	}
}

func paintChunk(buf []byte, stride int, c *sandbox.Chunk, bg color.RGBA) {
	ox, oy := c.Origin()
	for ly := 0; ly < c.Height(); ly++ {
		row := (oy+ly)*stride + ox
		for lx := 0; lx < c.Width(); lx++ {
			col := bg
			if p := c.Get(lx, ly); p != nil {
				col = p.Color
			}
			base := (row + lx) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
