// Package core ties the simulation, the boundary extractor and the tick
// pacing together for the front ends.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"sandfall/internal/collider"
	"sandfall/internal/config"
	"sandfall/internal/sandbox"
)

// Stats summarizes the world after a tick.
type Stats struct {
	Tick     uint64
	Occupied int
	Strong   int
	Weak     int
	Chunks   int
	Shapes   int
}

func (s Stats) String() string {
	return fmt.Sprintf("tick %d  cells %d  chunks %d/%d strong %d weak  shapes %d",
		s.Tick, s.Occupied, s.Strong, s.Chunks, s.Weak, s.Shapes)
}

// Options configures NewWorld. Zero values select defaults.
type Options struct {
	// Sink receives boundary geometry. Defaults to a fresh Registry.
	Sink      collider.Sink
	Materials *sandbox.Table
	Logger    *log.Logger
}

// World owns a simulation and keeps its collider geometry in step with it.
type World struct {
	sim       *sandbox.Simulation
	extractor *collider.Extractor
	sink      collider.Sink
	seed      int64
	log       *log.Logger
	hooks     []func(Stats)
}

// NewWorld builds a world sized and tuned by cfg.
func NewWorld(cfg config.Config, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Sink == nil {
		opts.Sink = collider.NewRegistry()
	}
	grid := sandbox.NewGrid(cfg.Grid.ChunksX, cfg.Grid.ChunksY, cfg.Grid.ChunkWidth, cfg.Grid.ChunkHeight)
	sim := sandbox.NewSimulation(grid, sandbox.Config{
		Seed: cfg.Sim.Seed,
		Params: sandbox.Params{
			TerminalVelocity: cfg.Sim.TerminalVelocity,
			ExplosionForce:   cfg.Sim.ExplosionForce,
		},
		Materials: opts.Materials,
		Logger:    logger.WithPrefix("sim"),
	})
	ex := collider.NewExtractor(grid, opts.Sink, collider.Config{
		SolidTolerance:  cfg.Collider.SolidTolerance,
		SensorTolerance: cfg.Collider.SensorTolerance,
		Logger:          logger.WithPrefix("collider"),
	})
	return &World{
		sim:       sim,
		extractor: ex,
		sink:      opts.Sink,
		seed:      cfg.Sim.Seed,
		log:       logger,
	}
}

// Sim returns the simulation.
func (w *World) Sim() *sandbox.Simulation { return w.sim }

// Grid returns the simulation grid.
func (w *World) Grid() *sandbox.Grid { return w.sim.Grid() }

// Sink returns the geometry sink.
func (w *World) Sink() collider.Sink { return w.sink }

// Seed returns the seed of the last reset.
func (w *World) Seed() int64 { return w.seed }

// OnTick registers fn to run after every Advance.
func (w *World) OnTick(fn func(Stats)) {
	if fn != nil {
		w.hooks = append(w.hooks, fn)
	}
}

// Advance runs one simulation step and rebuilds the geometry of every chunk
// the step touched.
func (w *World) Advance() Stats {
	w.sim.Step()
	w.extractor.Extract()
	st := w.Stats()
	for _, fn := range w.hooks {
		fn(st)
	}
	return st
}

// Sync rebuilds geometry for chunks written outside of Advance, e.g. by a
// brush or a scene load.
func (w *World) Sync() int { return w.extractor.Extract() }

// Reset empties the world, reseeds it and retires all geometry.
func (w *World) Reset(seed int64) {
	w.seed = seed
	w.sim.Reset(seed)
	w.extractor.Release()
	w.extractor.Extract()
}

// Close retires every shape the world spawned.
func (w *World) Close() { w.extractor.Release() }

// Stats reports the current tick and activity counters.
func (w *World) Stats() Stats {
	g := w.sim.Grid()
	strong, weak := g.ActiveChunks()
	return Stats{
		Tick:     w.sim.Tick(),
		Occupied: g.Occupied(),
		Strong:   strong,
		Weak:     weak,
		Chunks:   len(g.Chunks()),
		Shapes:   w.extractor.Live(),
	}
}

// RunTicks advances n ticks as fast as possible, stopping early when ctx is
// cancelled.
func (w *World) RunTicks(ctx context.Context, n int) (Stats, error) {
	st := w.Stats()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		st = w.Advance()
	}
	return st, nil
}

// Run advances the world in real time at tps until ctx is done. A positive
// limit stops the loop after that many ticks.
func (w *World) Run(ctx context.Context, tps int, limit uint64) error {
	fs := NewFixedStep(tps)
	poll := time.NewTicker(fs.Interval() / 2)
	defer poll.Stop()
	w.log.Info("world running", "tps", tps, "limit", limit)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			for n := fs.Due(); n > 0; n-- {
				st := w.Advance()
				if limit > 0 && st.Tick >= limit {
					return nil
				}
			}
		}
	}
}
