package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) add(d time.Duration) { c.t = c.t.Add(d) }

func newTestStep(tps int) (*FixedStep, *fakeClock) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(tps)
	fs.now = clk.now
	return fs, clk
}

func TestFixedStepFirstPollIsDue(t *testing.T) {
	fs, _ := newTestStep(10)
	if !fs.ShouldStep() {
		t.Fatal("first poll should step")
	}
	if fs.ShouldStep() {
		t.Fatal("no time passed, second poll should not step")
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	fs, clk := newTestStep(10)
	fs.ShouldStep()

	clk.add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a tick should not step")
	}
	clk.add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full tick should step")
	}

	clk.add(250 * time.Millisecond)
	if n := fs.Due(); n != 2 {
		t.Fatalf("Due() = %d, want 2", n)
	}
	clk.add(50 * time.Millisecond)
	if n := fs.Due(); n != 1 {
		t.Fatalf("carried remainder should complete a tick, Due() = %d", n)
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs, clk := newTestStep(60)
	fs.Due()
	clk.add(10 * time.Second)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("Due() after stall = %d, want %d", n, maxCatchUp)
	}
	if n := fs.Due(); n != 0 {
		t.Fatalf("stall backlog should be dropped, Due() = %d", n)
	}
}

func TestFixedStepRates(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("default interval = %v", fs.Interval())
	}
	fs.SetTPS(20)
	if fs.Interval() != 50*time.Millisecond {
		t.Fatalf("interval = %v", fs.Interval())
	}
}
