package sandbox

import (
	"io"

	"github.com/charmbracelet/log"

	"sandfall/pkg/core"
)

// Params holds tunable physical constants of the effect pipeline.
type Params struct {
	// TerminalVelocity caps the speed gravity can build up, in cells per tick.
	TerminalVelocity int
	// ExplosionForce scales the outward impulse applied to explosion debris.
	ExplosionForce float32
}

// DefaultParams returns the standard physical constants.
func DefaultParams() Params {
	return Params{TerminalVelocity: 1, ExplosionForce: 10}
}

// Config controls a Simulation.
type Config struct {
	Seed   int64
	Params Params

	// Materials defaults to the embedded table.
	Materials *Table
	// RNG overrides the generator derived from Seed.
	RNG *core.RNG
	// Logger defaults to a discarding logger.
	Logger *log.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Seed: 1337, Params: DefaultParams()}
}

// Simulation owns the grid for the duration of every tick and runs the
// per-particle effect pipeline over it.
type Simulation struct {
	grid      *Grid
	materials *Table
	params    Params
	rng       *core.RNG
	log       *log.Logger
	tick      uint64
}

// NewSimulation wires a simulation around grid.
func NewSimulation(grid *Grid, cfg Config) *Simulation {
	if cfg.Params.TerminalVelocity <= 0 {
		cfg.Params.TerminalVelocity = DefaultParams().TerminalVelocity
	}
	if cfg.Params.ExplosionForce <= 0 {
		cfg.Params.ExplosionForce = DefaultParams().ExplosionForce
	}
	s := &Simulation{
		grid:      grid,
		materials: cfg.Materials,
		params:    cfg.Params,
		rng:       cfg.RNG,
		log:       cfg.Logger,
	}
	if s.materials == nil {
		s.materials = DefaultMaterials()
	}
	if s.rng == nil {
		s.rng = core.NewRNG(cfg.Seed)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

// Grid exposes the simulated grid. Callers must not hold on to particle
// pointers across ticks.
func (s *Simulation) Grid() *Grid { return s.grid }

// Materials exposes the material table used for spawning.
func (s *Simulation) Materials() *Table { return s.materials }

// Params returns the active physical constants.
func (s *Simulation) Params() Params { return s.params }

// SetParams replaces the physical constants between ticks. Non-positive
// values keep their current setting.
func (s *Simulation) SetParams(p Params) {
	if p.TerminalVelocity > 0 {
		s.params.TerminalVelocity = p.TerminalVelocity
	}
	if p.ExplosionForce > 0 {
		s.params.ExplosionForce = p.ExplosionForce
	}
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 { return s.tick }

// Reset clears the grid and reseeds the random source.
func (s *Simulation) Reset(seed int64) {
	s.grid.Clear()
	s.rng = core.NewRNG(seed)
	s.tick = 0
	s.log.Info("simulation reset", "seed", seed)
}

// Spawn creates a fresh particle of material m.
func (s *Simulation) Spawn(m Material) (Particle, bool) {
	return s.materials.New(m, s.rng)
}

// Place writes a fresh particle of material m at (x, y). Placing None
// clears the cell. It reports whether the grid changed.
func (s *Simulation) Place(x, y int, m Material) bool {
	if !s.grid.InBounds(x, y) {
		return false
	}
	if m == None {
		if s.grid.Get(x, y) == nil {
			return false
		}
		s.grid.Set(x, y, nil)
		return true
	}
	p, ok := s.Spawn(m)
	if !ok {
		return false
	}
	s.grid.Set(x, y, &p)
	return true
}

// Step advances the simulation by one tick. Cells are visited column by
// column, bottom row first; later cells observe earlier writes and the
// Updated flag keeps moved particles from being processed twice.
func (s *Simulation) Step() {
	g := s.grid
	g.ResetTicked()
	for x := 0; x < g.Width(); x++ {
		for y := g.Height() - 1; y >= 0; y-- {
			if !g.ChunkAt(x, y).Active() {
				continue
			}
			s.stepParticle(x, y)
		}
	}
	g.ResetUpdated()
	s.tick++
	if s.log.GetLevel() <= log.DebugLevel {
		strong, weak := g.ActiveChunks()
		s.log.Debug("tick", "n", s.tick, "strong", strong, "weak", weak)
	}
}

func (s *Simulation) stepParticle(x, y int) {
	p := s.grid.Get(x, y)
	if p == nil || p.Updated {
		return
	}
	if p.Health.Amount <= 0 {
		s.grid.Set(x, y, nil)
		return
	}

	if s.corrode(x, y) {
		return
	}
	if s.heat(x, y) {
		return
	}
	if s.age(x, y) {
		return
	}
	s.grow(x, y)
	s.move(x, y)
}

// replace swaps the particle at (x, y) for a fresh m, or clears the cell
// when m is None.
func (s *Simulation) replace(x, y int, m Material) {
	if m == None {
		s.grid.Set(x, y, nil)
		return
	}
	p, ok := s.Spawn(m)
	if !ok {
		s.grid.Set(x, y, nil)
		return
	}
	s.grid.Set(x, y, &p)
}
