package ui

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"sandfall/internal/brush"
	"sandfall/internal/collider"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

func TestAdjustClampsAndApplies(t *testing.T) {
	sim := sandbox.NewSimulation(sandbox.NewGrid(1, 1, 4, 4), sandbox.DefaultConfig())
	b := brush.New(1, sandbox.Sand)

	if v, ok := Adjust(sim, &b, "terminal_velocity", 1); !ok || v != 2 || sim.Params().TerminalVelocity != 2 {
		t.Fatalf("terminal velocity = %v (%v)", v, ok)
	}
	Adjust(sim, &b, "terminal_velocity", -1)
	if _, ok := Adjust(sim, &b, "terminal_velocity", -1); ok {
		t.Fatal("terminal velocity should not drop below 1")
	}

	if v, _ := Adjust(sim, &b, "explosion_force", -3); v != 7 || sim.Params().ExplosionForce != 7 {
		t.Fatalf("explosion force = %v", v)
	}
	if v, _ := Adjust(sim, &b, "brush_radius", -5); v != 0 || b.Radius != 0 {
		t.Fatalf("brush radius = %v", v)
	}
	if _, ok := Adjust(sim, &b, "gravity", 1); ok {
		t.Fatal("unknown control adjusted")
	}
}

func TestStatusLines(t *testing.T) {
	lines := StatusLines(core.Stats{Tick: 12, Occupied: 3, Chunks: 4, Strong: 1}, brush.New(1, sandbox.Water), true)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"12 (paused)", "Strong    1/4", "water"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("status lines missing %q:\n%s", want, joined)
		}
	}
	if FormatValue(10) != "10" || FormatValue(2.5) != "2.5" {
		t.Fatal("unexpected value formatting")
	}
}

func TestShapeSegmentsScale(t *testing.T) {
	shapes := []collider.Shape{{
		Key:  collider.Key{Category: sandbox.CollisionWater},
		Line: collider.Polyline{mgl32.Vec2{0, 0}, mgl32.Vec2{2, 0}, mgl32.Vec2{2, 1}},
	}}
	segs := ShapeSegments(shapes, 4)
	if len(segs) != 2 {
		t.Fatalf("got %d segments", len(segs))
	}
	if segs[1].X1 != 8 || segs[1].Y2 != 4 || segs[1].Color != categoryColors[sandbox.CollisionWater] {
		t.Fatalf("unexpected segment %+v", segs[1])
	}
}

func TestChunkOutlinesFollowActivity(t *testing.T) {
	g := sandbox.NewGrid(3, 1, 4, 4)
	if got := len(ChunkOutlines(g, 2)); got != 12 {
		t.Fatalf("fresh grid outlines = %d segments", got)
	}
	for i := uint8(0); i < sandbox.MaxActivity; i++ {
		g.ResetTicked()
	}
	if got := len(ChunkOutlines(g, 2)); got != 0 {
		t.Fatalf("sleeping grid outlines = %d segments", got)
	}
	g.Set(11, 0, &sandbox.Particle{Kind: sandbox.Stone})
	segs := ChunkOutlines(g, 2)
	if len(segs) != 8 || segs[0].X1 != 8 {
		t.Fatalf("outlines after write = %+v", segs)
	}
}
