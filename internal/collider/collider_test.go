package collider

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"sandfall/internal/sandbox"
)

func fill(t *testing.T, g *sandbox.Grid, x0, y0, x1, y1 int, kind sandbox.Material, cat sandbox.CollisionType) {
	t.Helper()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Set(x, y, &sandbox.Particle{Kind: kind, Collision: cat})
		}
	}
}

func TestCornerTable(t *testing.T) {
	tests := []struct {
		mask int
		want int
	}{
		{right | left | down | up, 0},
		{right | left | down, 2},
		{left | down | up, 2},
		{right | down, 3},
		{left | up, 3},
		{right | left, 4},
		{up | down, 4},
		{up, 4},
		{0, 4},
	}
	for _, tt := range tests {
		if got := len(corners[tt.mask]); got != tt.want {
			t.Fatalf("mask %04b: %d corners, want %d", tt.mask, got, tt.want)
		}
	}
	for mask, pts := range corners {
		for i := 1; i < len(pts); i++ {
			dx, dy := pts[i].x-pts[i-1].x, pts[i].y-pts[i-1].y
			if dx*dx+dy*dy != 1 {
				t.Fatalf("mask %04b: corners %v and %v are not adjacent", mask, pts[i-1], pts[i])
			}
		}
	}
}

func TestMarchSquareBoundary(t *testing.T) {
	g := sandbox.NewGrid(1, 1, 4, 4)
	fill(t, g, 0, 0, 2, 2, sandbox.Stone, sandbox.CollisionSolid)

	pts := march(g, g.Chunks()[0], sandbox.CollisionSolid)
	if len(pts) != 12 {
		t.Fatalf("3x3 block produced %d boundary points, want 12", len(pts))
	}
	seen := map[point]bool{}
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("duplicate point %v", p)
		}
		seen[p] = true
		onEdge := p.x == 0 || p.x == 3 || p.y == 0 || p.y == 3
		if !onEdge {
			t.Fatalf("interior point %v emitted", p)
		}
	}

	chains := chain(pts)
	if len(chains) != 1 || len(chains[0]) != 12 {
		t.Fatalf("expected a single 12 point chain, got %v", chains)
	}
	for i := 1; i < len(chains[0]); i++ {
		a, b := chains[0][i-1], chains[0][i]
		if abs(a.x-b.x)+abs(a.y-b.y) != 1 {
			t.Fatalf("chain step %v -> %v is not a unit step", a, b)
		}
	}

	if got := march(g, g.Chunks()[0], sandbox.CollisionWater); len(got) != 0 {
		t.Fatalf("no water present, got %d points", len(got))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSimplifyCollapsesStraightRun(t *testing.T) {
	var line Polyline
	for i := 0; i < 10; i++ {
		line = append(line, mgl32.Vec2{float32(i), 2})
	}
	got := Simplify(line, 1)
	if len(got) != 2 || got[0] != line[0] || got[1] != line[9] {
		t.Fatalf("straight run simplified to %v", got)
	}

	jitter := Polyline{{0, 0}, {1, 0.5}, {2, 0}, {3, 0.5}, {4, 0}}
	if got := Simplify(jitter, 1); len(got) != 2 {
		t.Fatalf("jitter within tolerance kept %d points", len(got))
	}
}

func TestSimplifyKeepsSquareCorners(t *testing.T) {
	g := sandbox.NewGrid(1, 1, 4, 4)
	fill(t, g, 0, 0, 2, 2, sandbox.Stone, sandbox.CollisionSolid)
	run := chain(march(g, g.Chunks()[0], sandbox.CollisionSolid))[0]
	line := make(Polyline, len(run))
	for i, p := range run {
		line[i] = mgl32.Vec2{float32(p.x), float32(p.y)}
	}

	got := Simplify(line, 1)
	want := Polyline{{1, 0}, {3, 0}, {3, 3}, {0, 3}, {0, 0}}
	if len(got) != len(want) {
		t.Fatalf("simplified square = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimplifyEdgeCases(t *testing.T) {
	short := Polyline{{0, 0}, {4, 4}}
	got := Simplify(short, 1)
	if len(got) != 2 {
		t.Fatalf("short line changed length: %v", got)
	}
	got[0] = mgl32.Vec2{9, 9}
	if short[0] != (mgl32.Vec2{0, 0}) {
		t.Fatal("Simplify must copy short lines")
	}

	loop := Polyline{{0, 0}, {5, 0}, {0, 0}}
	if got := Simplify(loop, 1); len(got) != 3 {
		t.Fatalf("degenerate chord should measure distance to the start, got %v", got)
	}
}

func snapshot(r *Registry) map[Key][]Polyline {
	out := map[Key][]Polyline{}
	for _, s := range r.Shapes() {
		out[s.Key] = append(out[s.Key], s.Line)
	}
	return out
}

func TestExtractIsIdempotent(t *testing.T) {
	g := sandbox.NewGrid(2, 2, 4, 4)
	fill(t, g, 1, 2, 6, 5, sandbox.Stone, sandbox.CollisionSolid)
	fill(t, g, 0, 7, 7, 7, sandbox.Water, sandbox.CollisionWater)

	reg := NewRegistry()
	ex := NewExtractor(g, reg, DefaultConfig())
	if n := ex.Extract(); n != 4 {
		t.Fatalf("fresh grid rebuilt %d chunks, want 4", n)
	}
	first := snapshot(reg)
	count := reg.Len()
	if count == 0 {
		t.Fatal("expected geometry")
	}

	ex.Extract()
	if reg.Len() != count {
		t.Fatalf("second extraction left %d shapes, want %d", reg.Len(), count)
	}
	second := snapshot(reg)
	if len(first) != len(second) {
		t.Fatalf("keys changed: %d vs %d", len(first), len(second))
	}
	for key, lines := range first {
		other := second[key]
		if len(other) != len(lines) {
			t.Fatalf("%v: %d lines vs %d", key, len(lines), len(other))
		}
		for i := range lines {
			if len(lines[i]) != len(other[i]) {
				t.Fatalf("%v line %d differs", key, i)
			}
			for j := range lines[i] {
				if lines[i][j] != other[i][j] {
					t.Fatalf("%v line %d point %d differs", key, i, j)
				}
			}
		}
	}
}

func TestExtractRetiresStaleGeometry(t *testing.T) {
	g := sandbox.NewGrid(1, 1, 4, 4)
	g.Set(1, 1, &sandbox.Particle{Kind: sandbox.Stone, Collision: sandbox.CollisionSolid})

	reg := NewRegistry()
	ex := NewExtractor(g, reg, DefaultConfig())
	ex.Extract()
	if reg.Len() != 1 || ex.Live() != 1 {
		t.Fatalf("single cell: registry %d, extractor %d", reg.Len(), ex.Live())
	}

	g.Set(1, 1, nil)
	ex.Extract()
	if reg.Len() != 0 || ex.Live() != 0 {
		t.Fatalf("removed cell left registry %d, extractor %d", reg.Len(), ex.Live())
	}

	g.Set(2, 2, &sandbox.Particle{Kind: sandbox.Water, Collision: sandbox.CollisionWater})
	g.Set(0, 0, &sandbox.Particle{Kind: sandbox.Stone, Collision: sandbox.CollisionSolid})
	ex.Extract()
	if reg.Len() != ex.Live() {
		t.Fatalf("registry %d out of sync with extractor %d", reg.Len(), ex.Live())
	}

	ex.Release()
	if reg.Len() != 0 || ex.Live() != 0 {
		t.Fatal("Release should retire every handle")
	}
}

func TestExtractSkipsSleepingChunks(t *testing.T) {
	g := sandbox.NewGrid(2, 1, 4, 4)
	reg := NewRegistry()
	ex := NewExtractor(g, reg, DefaultConfig())
	for i := uint8(0); i < sandbox.MaxActivity; i++ {
		g.ResetTicked()
	}
	if n := ex.Extract(); n != 0 {
		t.Fatalf("sleeping grid rebuilt %d chunks", n)
	}

	g.Set(0, 0, &sandbox.Particle{Kind: sandbox.Stone, Collision: sandbox.CollisionSolid})
	if n := ex.Extract(); n != 2 {
		t.Fatalf("a write should rebuild its chunk and the neighbouring one, got %d", n)
	}
}

func TestSensorCategories(t *testing.T) {
	g := sandbox.NewGrid(1, 1, 6, 6)
	fill(t, g, 0, 0, 1, 1, sandbox.Stone, sandbox.CollisionSolid)
	fill(t, g, 4, 4, 5, 5, sandbox.Water, sandbox.CollisionWater)
	fill(t, g, 4, 0, 4, 0, sandbox.Lava, sandbox.CollisionFire)
	fill(t, g, 0, 4, 0, 4, sandbox.Acid, sandbox.CollisionAcid)

	reg := NewRegistry()
	ex := NewExtractor(g, reg, Config{})
	ex.Extract()

	seen := map[sandbox.CollisionType]bool{}
	for _, s := range reg.Shapes() {
		seen[s.Key.Category] = true
		if s.Sensor != s.Key.Category.Sensor() {
			t.Fatalf("%v sensor = %v", s.Key, s.Sensor)
		}
	}
	for _, cat := range Categories {
		if !seen[cat] {
			t.Fatalf("no geometry for %v", cat)
		}
	}
	if ex.Tolerance(sandbox.CollisionSolid) != 1 || ex.Tolerance(sandbox.CollisionWater) != 2 {
		t.Fatal("unexpected default tolerances")
	}
}
