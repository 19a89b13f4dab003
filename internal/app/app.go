//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandfall/internal/brush"
	"sandfall/internal/collider"
	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/ui"
)

// HUDWidth is the width of the side panel in screen pixels.
const HUDWidth = 240

var digitKeys = [10]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a world to the ebiten.Game interface.
type Game struct {
	world   *core.World
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	brush   *brush.Brush

	scale    int
	paused   bool
	tickOnce bool
	repaint  bool
}

// New constructs a Game. shapes may be nil when the world streams its
// geometry elsewhere; the collider overlay is then empty.
func New(world *core.World, shapes *collider.Registry, b brush.Brush, scale int) *Game {
	g := world.Grid()
	scale = max(scale, 1)
	bp := &b
	return &Game{
		world:   world,
		painter: render.NewGridPainter(g.Width(), g.Height(), color.RGBA{}),
		overlay: ui.NewOverlay(g, shapes, scale),
		hud:     ui.NewHUD(world.Sim(), bp, HUDWidth),
		brush:   bp,
		scale:   scale,
		repaint: true,
	}
}

// Reset empties the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.world.Reset(seed)
	g.tickOnce = false
	g.repaint = true
}

// Update handles per-frame input and advances the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.world.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	for d, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			if m, ok := brush.ForDigit(d); ok {
				g.brush.Material = m
			}
		}
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		g.brush.Resize(g.brush.Radius + 1)
	} else if wy < 0 {
		g.brush.Resize(g.brush.Radius - 1)
	}
	g.handleBrush()

	g.overlay.Update()

	if !g.paused || g.tickOnce {
		g.world.Advance()
		g.tickOnce = false
	}
	g.hud.Update(g.gridWidth(), g.world.Stats(), g.paused)
	return nil
}

func (g *Game) handleBrush() {
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if mx >= g.gridWidth() || !g.world.Grid().InBounds(x, y) {
		return
	}
	changed := 0
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		changed = g.brush.Paint(g.world.Sim(), x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		changed = g.brush.Erase(g.world.Sim(), x, y)
	}
	if changed > 0 && g.paused {
		g.world.Sync()
	}
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Sync(g.world.Grid(), g.repaint)
	g.repaint = false
	g.painter.Blit(screen, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.world.Grid().Height()*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridWidth() + HUDWidth, g.world.Grid().Height() * g.scale
}

func (g *Game) gridWidth() int { return g.world.Grid().Width() * g.scale }
