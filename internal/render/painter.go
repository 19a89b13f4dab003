//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/internal/sandbox"
)

// GridPainter keeps a single RGBA image in sync with a sandbox grid,
// uploading only when a chunk changed.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	bg   color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, bg color.RGBA) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), bg: bg}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Sync repaints the strongly active chunks of g. A full repaint is forced
// when full is set, e.g. after loading a scene.
func (gp *GridPainter) Sync(g *sandbox.Grid, full bool) {
	if g.Width() != gp.w || g.Height() != gp.h {
		return
	}
	if full {
		FillAllRGBA(gp.buf, g, gp.bg)
	} else if FillRGBA(gp.buf, g, gp.bg) == 0 {
		return
	}
	gp.img.WritePixels(gp.buf)
}

// Blit draws the painter image scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
