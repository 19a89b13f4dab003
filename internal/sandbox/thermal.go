package sandbox

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// criticalHot is the temperature at which CriticalOnCool materials turn.
	criticalHot = 100
	// burnEmitter is the heat a burning particle radiates per tick.
	burnEmitter = -1
)

// heat runs the thermal stage: emitting into neighbours, checking the
// particle's own criticality, igniting or extinguishing it and seeding
// sparks around a fire. It reports true when the particle was consumed.
func (s *Simulation) heat(x, y int) bool {
	s.emit(x, y)
	if s.critical(x, y) {
		return true
	}
	p := s.grid.Get(x, y)
	if p.Has(TraitCombustible) {
		s.ignite(x, y, p)
		s.extinguish(x, y, p)
		s.sparkAround(x, y, p)
	}
	return false
}

func (s *Simulation) emit(x, y int) {
	g := s.grid
	p := g.Get(x, y)
	if !p.Has(TraitEmitter) || p.Emitter == 0 {
		return
	}
	delta := p.Emitter
	changed := false
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		n := g.CheckedGet(nx, ny)
		if n == nil || !n.Has(TraitThermal) {
			continue
		}
		th := &n.Thermal
		if delta > 0 && !th.Coolable {
			continue
		}
		if delta < 0 && !th.Heatable {
			continue
		}
		lo, hi := 0, th.Starting
		if th.CriticalOnCool {
			lo, hi = 1, criticalHot
		}
		next := min(max(th.Current+delta, lo), hi)
		if next == th.Current {
			continue
		}
		th.Current = next
		changed = true
		g.WeakTick(nx, ny)
	}
	if changed {
		g.WeakTick(x, y)
	}
}

func (s *Simulation) critical(x, y int) bool {
	g := s.grid
	p := g.Get(x, y)
	if !p.Has(TraitThermal) {
		return false
	}
	th := p.Thermal
	hit := (!th.CriticalOnCool && th.Current <= 0) || (th.CriticalOnCool && th.Current >= criticalHot)
	if !hit {
		return false
	}
	if th.Explosion > 0 {
		s.explode(x, y, th.Explosion)
		return true
	}
	p.Health.Amount--
	if p.Health.Amount <= 0 {
		s.replace(x, y, th.OnCritical)
		return true
	}
	g.WeakTick(x, y)
	return false
}

func (s *Simulation) ignite(x, y int, p *Particle) {
	cb := &p.Combustible
	if cb.Burning || p.Thermal.Current > 0 {
		return
	}
	cb.Burning = true
	p.Add(TraitEmitter)
	p.Emitter = burnEmitter
	p.Health.Amount = cb.BurnTicks
	p.Color = cb.BurnColor
	s.grid.ChunkAt(x, y).StrongTick()
}

func (s *Simulation) extinguish(x, y int, p *Particle) {
	cb := &p.Combustible
	if !cb.Burning || p.Thermal.Current <= 0 {
		return
	}
	cb.Burning = false
	p.Remove(TraitEmitter)
	p.Emitter = 0
	p.Health.Amount = cb.BurnTicks
	p.Color = cb.CooledColor
	p.Thermal.Current = p.Thermal.Starting
	s.grid.ChunkAt(x, y).StrongTick()
}

// sparkAround fills each empty orthogonal neighbour of a burning particle
// with a spark one time in three and smoke otherwise.
func (s *Simulation) sparkAround(x, y int, p *Particle) {
	if !p.Combustible.Burning {
		return
	}
	g := s.grid
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {-1, 0}, {0, 1}} {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) || g.Get(nx, ny) != nil {
			continue
		}
		m := Smoke
		if s.rng.Ratio(1, 3) {
			m = Spark
		}
		s.replace(nx, ny, m)
	}
}

// explode turns the box of radius r around (cx, cy) into sparks and throws
// the occupied cells of the surrounding ring (out to 2r) outward and up.
func (s *Simulation) explode(cx, cy, r int) {
	g := s.grid
	center := mgl32.Vec2{float32(cx), float32(cy)}
	s.log.Debug("explosion", "x", cx, "y", cy, "radius", r)
	for x := cx - 2*r; x <= cx+2*r; x++ {
		for y := cy - 2*r; y <= cy+2*r; y++ {
			if !g.InBounds(x, y) {
				continue
			}
			if x >= cx-r && x <= cx+r && y >= cy-r && y <= cy+r {
				s.replace(x, y, Spark)
				continue
			}
			p := g.Get(x, y)
			if p == nil {
				continue
			}
			force := mgl32.Vec2{float32(x), float32(y)}.Sub(center).Normalize().Mul(s.params.ExplosionForce)
			p.Velocity = Velocity{
				X: int(force.X()),
				Y: -int(math.Abs(float64(force.Y()))),
			}
			g.WeakTick(x, y)
		}
	}
}
