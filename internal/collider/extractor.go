package collider

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"sandfall/internal/sandbox"
)

// Config controls extraction tolerances.
type Config struct {
	// SolidTolerance is the simplification epsilon for solid geometry.
	SolidTolerance float32
	// SensorTolerance is the epsilon for sensor categories.
	SensorTolerance float32
	Logger          *log.Logger
}

// DefaultConfig returns the standard tolerances.
func DefaultConfig() Config {
	return Config{SolidTolerance: 1, SensorTolerance: 2}
}

// Extractor rebuilds chunk geometry for strongly active chunks and keeps
// track of every handle it has spawned so stale geometry is always retired
// before its replacement arrives.
type Extractor struct {
	grid    *sandbox.Grid
	sink    Sink
	cfg     Config
	log     *log.Logger
	handles map[Key][]Handle
}

// NewExtractor binds an extractor to grid and sink.
func NewExtractor(grid *sandbox.Grid, sink Sink, cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.SolidTolerance <= 0 {
		cfg.SolidTolerance = def.SolidTolerance
	}
	if cfg.SensorTolerance <= 0 {
		cfg.SensorTolerance = def.SensorTolerance
	}
	e := &Extractor{
		grid:    grid,
		sink:    sink,
		cfg:     cfg,
		log:     cfg.Logger,
		handles: make(map[Key][]Handle),
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	return e
}

// Tolerance returns the simplification epsilon for cat.
func (e *Extractor) Tolerance(cat sandbox.CollisionType) float32 {
	if cat.Sensor() {
		return e.cfg.SensorTolerance
	}
	return e.cfg.SolidTolerance
}

// Extract rebuilds geometry for every strongly active chunk and reports how
// many chunks were rebuilt.
func (e *Extractor) Extract() int {
	rebuilt := 0
	for i, c := range e.grid.Chunks() {
		if !c.IsStrongTicked() {
			continue
		}
		e.rebuild(i, c)
		rebuilt++
	}
	if rebuilt > 0 {
		e.log.Debug("extracted geometry", "chunks", rebuilt, "live", e.Live())
	}
	return rebuilt
}

// RebuildAll regenerates every chunk regardless of activity.
func (e *Extractor) RebuildAll() {
	for i, c := range e.grid.Chunks() {
		e.rebuild(i, c)
	}
}

func (e *Extractor) rebuild(idx int, c *sandbox.Chunk) {
	for _, cat := range Categories {
		key := Key{Chunk: idx, Category: cat}
		e.retire(key)

		pts := march(e.grid, c, cat)
		if len(pts) == 0 {
			continue
		}
		tol := e.Tolerance(cat)
		var live []Handle
		for _, run := range chain(pts) {
			line := make(Polyline, len(run))
			for i, p := range run {
				line[i] = mgl32.Vec2{float32(p.x), float32(p.y)}
			}
			live = append(live, e.sink.Spawn(key, Simplify(line, tol), cat.Sensor()))
		}
		e.handles[key] = live
	}
}

func (e *Extractor) retire(key Key) {
	hs, ok := e.handles[key]
	if !ok {
		return
	}
	for _, h := range hs {
		e.sink.Despawn(h)
	}
	delete(e.handles, key)
}

// Live reports how many handles the extractor currently owns.
func (e *Extractor) Live() int {
	n := 0
	for _, hs := range e.handles {
		n += len(hs)
	}
	return n
}

// Release retires every handle, leaving the sink empty of extracted geometry.
func (e *Extractor) Release() {
	for key := range e.handles {
		e.retire(key)
	}
}
