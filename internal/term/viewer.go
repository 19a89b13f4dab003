// Package term renders a world into a terminal using half-block glyphs, two
// grid rows per terminal row.
package term

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"sandfall/internal/brush"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

const halfBlock = '▀'

var (
	emptyColor  = tcell.ColorBlack
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Viewer draws a world and turns key and mouse events into brush strokes
// and loop control.
type Viewer struct {
	screen tcell.Screen
	world  *core.World
	brush  brush.Brush
	log    *log.Logger

	cursorX, cursorY int
	paused           bool
	stepOnce         bool
	tps              int
}

// NewViewer wraps an initialised screen.
func NewViewer(screen tcell.Screen, world *core.World, b brush.Brush, tps int, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := world.Grid()
	return &Viewer{
		screen:  screen,
		world:   world,
		brush:   b,
		log:     logger,
		cursorX: g.Width() / 2,
		cursorY: g.Height() / 4,
		tps:     tps,
	}
}

// Paused reports whether ticking is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Brush returns the active brush.
func (v *Viewer) Brush() brush.Brush { return v.brush }

// Cursor returns the cursor position in grid cells.
func (v *Viewer) Cursor() (int, int) { return v.cursorX, v.cursorY }

// Run polls terminal events and advances the world at the configured rate
// until ctx is done or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	fs := core.NewFixedStep(v.tps)
	frame := time.NewTicker(fs.Interval() / 2)
	defer frame.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.Handle(ev) {
				return nil
			}
		case <-frame.C:
			steps := fs.Due()
			if v.paused {
				steps = 0
			}
			if v.stepOnce {
				steps = max(steps, 1)
				v.stepOnce = false
			}
			for ; steps > 0; steps-- {
				v.world.Advance()
			}
			v.Draw()
		}
	}
}

// Handle applies one event. It returns false when the viewer should exit.
func (v *Viewer) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	g := v.world.Grid()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.cursorY = max(v.cursorY-1, 0)
	case tcell.KeyDown:
		v.cursorY = min(v.cursorY+1, g.Height()-1)
	case tcell.KeyLeft:
		v.cursorX = max(v.cursorX-1, 0)
	case tcell.KeyRight:
		v.cursorX = min(v.cursorX+1, g.Width()-1)
	case tcell.KeyEnter:
		v.paint()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch {
	case r == 'q':
		return false
	case r == ' ':
		v.paused = !v.paused
	case r == 'n':
		v.stepOnce = true
	case r == 'r':
		v.world.Reset(v.world.Seed())
	case r == 's':
		v.world.Reset(time.Now().UnixNano())
	case r == 'p':
		v.paint()
	case r == 'x':
		v.brush.Erase(v.world.Sim(), v.cursorX, v.cursorY)
		v.world.Sync()
	case r == '+' || r == '=':
		v.brush.Resize(v.brush.Radius + 1)
	case r == '-':
		v.brush.Resize(v.brush.Radius - 1)
	case r >= '0' && r <= '9':
		if m, ok := brush.ForDigit(int(r - '0')); ok {
			v.brush.Material = m
			v.log.Debug("material selected", "material", m)
		}
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	x, y := mx, my*2
	if !v.world.Grid().InBounds(x, y) {
		return
	}
	v.cursorX, v.cursorY = x, y
	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		v.paint()
	case ev.Buttons()&tcell.Button2 != 0:
		v.brush.Erase(v.world.Sim(), x, y)
		v.world.Sync()
	}
}

func (v *Viewer) paint() {
	v.brush.Paint(v.world.Sim(), v.cursorX, v.cursorY)
	v.world.Sync()
}

// Draw renders the grid and the status line and shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	g := v.world.Grid()
	rows := min((sh-1)*2, g.Height())
	cols := min(sw, g.Width())
	for ty := 0; ty*2 < rows; ty++ {
		for x := 0; x < cols; x++ {
			top := cellColor(g, x, ty*2)
			bottom := cellColor(g, x, ty*2+1)
			v.screen.SetContent(x, ty, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	if sh > 0 {
		v.drawStatus(sh-1, sw)
	}
	if v.cursorX < sw && v.cursorY/2 < sh-1 {
		v.screen.ShowCursor(v.cursorX, v.cursorY/2)
	}
	v.screen.Show()
}

func (v *Viewer) drawStatus(row, width int) {
	state := "running"
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" %s | %s r%d | %s", v.world.Stats(), v.brush.Material, v.brush.Radius, state)
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		v.screen.SetContent(x, row, ch, nil, statusStyle)
	}
}

func cellColor(g *sandbox.Grid, x, y int) tcell.Color {
	p := g.CheckedGet(x, y)
	if p == nil {
		return emptyColor
	}
	return tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
}
