package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"sandfall/internal/collider"
	"sandfall/internal/config"
	"sandfall/internal/sandbox"
)

func smallConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Grid = config.GridConfig{ChunksX: 2, ChunksY: 2, ChunkWidth: 8, ChunkHeight: 8}
	return cfg
}

func TestWorldAdvanceKeepsGeometryInStep(t *testing.T) {
	reg := collider.NewRegistry()
	w := NewWorld(smallConfig(), Options{Sink: reg})
	for x := 0; x < 16; x++ {
		w.Sim().Place(x, 15, sandbox.Stone)
	}

	var seen []uint64
	w.OnTick(func(st Stats) { seen = append(seen, st.Tick) })

	st := w.Advance()
	if st.Tick != 1 || len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("unexpected tick bookkeeping: %+v %v", st, seen)
	}
	if st.Occupied != 16 {
		t.Fatalf("occupied = %d, want 16", st.Occupied)
	}
	if st.Shapes == 0 || st.Shapes != reg.Len() {
		t.Fatalf("stats shapes %d, registry %d", st.Shapes, reg.Len())
	}
	if st.Chunks != 4 {
		t.Fatalf("chunks = %d", st.Chunks)
	}
}

func TestWorldResetRetiresGeometry(t *testing.T) {
	reg := collider.NewRegistry()
	w := NewWorld(smallConfig(), Options{Sink: reg})
	w.Sim().Place(3, 3, sandbox.Stone)
	w.Sync()
	if reg.Len() == 0 {
		t.Fatal("Sync should spawn geometry for a placed cell")
	}

	w.Reset(99)
	if reg.Len() != 0 || w.Stats().Occupied != 0 {
		t.Fatalf("reset left %d shapes, %d cells", reg.Len(), w.Stats().Occupied)
	}
	if w.Seed() != 99 || w.Stats().Tick != 0 {
		t.Fatalf("seed %d tick %d", w.Seed(), w.Stats().Tick)
	}
}

func TestWorldRunTicks(t *testing.T) {
	w := NewWorld(smallConfig(), Options{})
	st, err := w.RunTicks(context.Background(), 5)
	if err != nil || st.Tick != 5 {
		t.Fatalf("RunTicks = %+v, %v", st, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.RunTicks(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled run returned %v", err)
	}
	if w.Stats().Tick != 5 {
		t.Fatal("cancelled run should not advance")
	}
}

func TestWorldRunStopsAtLimit(t *testing.T) {
	w := NewWorld(smallConfig(), Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.Run(ctx, 200, 3); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := w.Stats().Tick; got != 3 {
		t.Fatalf("tick = %d, want 3", got)
	}
}

func TestWorldDeterministic(t *testing.T) {
	build := func() *World {
		w := NewWorld(smallConfig(), Options{})
		for x := 2; x < 14; x++ {
			w.Sim().Place(x, 2, sandbox.Sand)
			w.Sim().Place(x, 4, sandbox.Water)
		}
		return w
	}
	a, b := build(), build()
	for i := 0; i < 40; i++ {
		a.Advance()
		b.Advance()
	}
	ga, gb := a.Grid(), b.Grid()
	for y := 0; y < ga.Height(); y++ {
		for x := 0; x < ga.Width(); x++ {
			pa, pb := ga.Get(x, y), gb.Get(x, y)
			if (pa == nil) != (pb == nil) || (pa != nil && pa.Kind != pb.Kind) {
				t.Fatalf("worlds diverged at (%d,%d)", x, y)
			}
		}
	}
}
