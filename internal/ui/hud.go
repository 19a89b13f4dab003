//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"sandfall/internal/brush"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

// HUD renders stats, parameter controls and the material palette to the
// right of the simulation view.
type HUD struct {
	sim   *sandbox.Simulation
	brush *brush.Brush
	width int

	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	lines        []string
	controls     []hudControl
	swatches     []swatch
	panelOffsetX int
}

type hudControl struct {
	control   Control
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

type swatch struct {
	material sandbox.Material
	rect     image.Rectangle
}

// NewHUD builds a panel of the given width that edits sim and b.
func NewHUD(sim *sandbox.Simulation, b *brush.Brush, width int) *HUD {
	h := &HUD{sim: sim, brush: b, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layout()
	return h
}

// Update refreshes the stats text and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int, st core.Stats, paused bool) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.lines = StatusLines(st, *h.brush, paused)
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawText()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	pt := image.Pt(mx-h.panelOffsetX, my)
	for _, c := range h.controls {
		switch {
		case pt.In(c.minusRect):
			Adjust(h.sim, h.brush, c.control.Key, -1)
			return
		case pt.In(c.plusRect):
			Adjust(h.sim, h.brush, c.control.Key, 1)
			return
		}
	}
	for _, s := range h.swatches {
		if pt.In(s.rect) {
			h.brush.Material = s.material
			return
		}
	}
}

func (h *HUD) drawText() {
	face := basicfont.Face7x13
	fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, "sandfall", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range h.lines {
		y += textLine
		text.Draw(h.panel, line, face, panelPadding, y, dim)
	}

	for _, c := range h.controls {
		labelY := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, labelY, fg)
		v := Value(h.sim, h.brush, c.control.Key)
		value := FormatValue(v)
		valueX := c.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, labelY, fg)
		h.drawButton(c.minusRect, "-", v > c.control.Min)
		h.drawButton(c.plusRect, "+", v < c.control.Max)
	}

	for _, s := range h.swatches {
		tpl, ok := h.sim.Materials().Template(s.material)
		if !ok {
			continue
		}
		h.fillRect(s.rect, tpl.Color)
		if s.material == h.brush.Material {
			h.strokeRect(s.rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) strokeRect(rect image.Rectangle, col color.RGBA) {
	h.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), col)
	h.fillRect(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), col)
	h.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), col)
	h.fillRect(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	top := panelPadding + headerBaseline + 6*textLine + sectionGap
	h.controls = h.controls[:0]
	for i, ctrl := range Controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls = append(h.controls, hudControl{control: ctrl, top: rowTop, minusRect: minus, plusRect: plus})
	}

	top += len(Controls)*lineHeight + sectionGap
	perRow := max((h.width-2*panelPadding)/(swatchSize+buttonGap), 1)
	h.swatches = h.swatches[:0]
	for i, m := range sandbox.AllMaterials() {
		x := panelPadding + (i%perRow)*(swatchSize+buttonGap)
		y := top + (i/perRow)*(swatchSize+buttonGap)
		h.swatches = append(h.swatches, swatch{material: m, rect: image.Rect(x, y, x+swatchSize, y+swatchSize)})
	}
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	textLine       = 16
	sectionGap     = 12
	swatchSize     = 20
)
