package sweep

import (
	"context"
	"errors"
	"testing"

	"sandfall/internal/config"
	"sandfall/internal/sandbox"
)

func smallConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Grid = config.GridConfig{ChunksX: 3, ChunksY: 3, ChunkWidth: 8, ChunkHeight: 8}
	return cfg
}

func TestGridProduct(t *testing.T) {
	sets := Grid([]int{1, 2, 3}, []float32{5, 10})
	if len(sets) != 6 {
		t.Fatalf("got %d sets", len(sets))
	}
	if sets[5] != (Params{TerminalVelocity: 3, ExplosionForce: 10}) {
		t.Fatalf("last set = %+v", sets[5])
	}
}

func TestLookup(t *testing.T) {
	all, err := Lookup()
	if err != nil || len(all) != len(Names()) {
		t.Fatalf("Lookup() = %d scenarios, %v", len(all), err)
	}
	if _, err := Lookup("avalanche"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	scenarios, err := Lookup("sandpile", "dam")
	if err != nil {
		t.Fatal(err)
	}
	sets := Grid([]int{1, 2}, []float32{10})

	one, err := Run(context.Background(), smallConfig(), scenarios, sets, Options{Ticks: 40, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	many, err := Run(context.Background(), smallConfig(), scenarios, sets, Options{Ticks: 40, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 4 || len(many) != 4 {
		t.Fatalf("result counts %d and %d, want 4", len(one), len(many))
	}
	for i := range one {
		if one[i] != many[i] {
			t.Fatalf("result %d differs:\n%v\n%v", i, one[i], many[i])
		}
	}
	if one[0].Scenario != "dam" || one[3].Scenario != "sandpile" {
		t.Fatalf("results not grouped by scenario: %v", one)
	}
	for _, r := range one {
		if r.Occupied == 0 || r.PeakStrong == 0 || r.Ticks == 0 {
			t.Fatalf("empty result %v", r)
		}
	}
}

func TestRunEmptyWorldSettles(t *testing.T) {
	empty := Scenario{Name: "empty", Setup: func(*sandbox.Simulation) {}}
	res, err := Run(context.Background(), smallConfig(), []Scenario{empty}, Grid([]int{1}, []float32{10}), Options{Ticks: 10, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || !res[0].Settled() || res[0].SettledAt > int(sandbox.MaxActivity) {
		t.Fatalf("empty world result %v", res)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scenarios, _ := Lookup()
	_, err := Run(ctx, smallConfig(), scenarios, Grid([]int{1, 2}, []float32{10}), Options{Ticks: 10, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}
