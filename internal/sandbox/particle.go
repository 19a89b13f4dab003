package sandbox

import (
	"image/color"
	"math"
)

// MaxDensity marks a particle that nothing can displace.
const MaxDensity = math.MaxUint32

// MovementType selects how gravity and the movement resolver treat a particle.
type MovementType uint8

const (
	Solid MovementType = iota
	Powder
	Liquid
	Gas
)

func (m MovementType) String() string {
	switch m {
	case Solid:
		return "solid"
	case Powder:
		return "powder"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

// CollisionType groups cells for boundary extraction.
type CollisionType uint8

const (
	CollisionNone CollisionType = iota
	CollisionSolid
	CollisionAcid
	CollisionFire
	CollisionWater
)

// CollisionTypes lists every collision category in declaration order.
var CollisionTypes = [...]CollisionType{CollisionNone, CollisionSolid, CollisionAcid, CollisionFire, CollisionWater}

func (c CollisionType) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionSolid:
		return "solid"
	case CollisionAcid:
		return "acid"
	case CollisionFire:
		return "fire"
	case CollisionWater:
		return "water"
	default:
		return "unknown"
	}
}

// Sensor reports whether geometry of this category only detects overlap.
func (c CollisionType) Sensor() bool {
	switch c {
	case CollisionAcid, CollisionFire, CollisionWater:
		return true
	default:
		return false
	}
}

// Trait is a bitmask of the optional behaviours a particle carries.
type Trait uint8

const (
	TraitCorrosive Trait = 1 << iota
	TraitThermal
	TraitEmitter
	TraitCombustible
	TraitLifespan
	TraitGrowth
)

// Health is the remaining integrity of a particle.
type Health struct {
	Amount     int
	Corrodable bool
}

// Velocity is measured in cells per tick.
type Velocity struct {
	X, Y int
}

// Damp moves the horizontal component one unit toward zero.
func (v *Velocity) Damp() {
	switch {
	case v.X < 0:
		v.X++
	case v.X > 0:
		v.X--
	}
}

// Thermal tracks temperature on a 0..100 scale. Normal materials go critical
// at or below zero; CriticalOnCool materials at or above 100.
type Thermal struct {
	Current        int
	Starting       int
	Heatable       bool
	Coolable       bool
	CriticalOnCool bool
	OnCritical     Material
	Explosion      int
}

// Combustible describes a material that can catch fire.
type Combustible struct {
	Burning     bool
	BurnTicks   int
	BurnColor   color.RGBA
	CooledColor color.RGBA
}

// Lifespan counts health down every tick and replaces the particle on death.
type Lifespan struct {
	OnDeath Material
}

// Growth lets a particle spread onto neighbouring cells.
type Growth struct {
	SpreadChance float64
	SproutChance float64
	GrowAs       Material
	CanSprout    bool
}

// Particle is the content of one occupied cell.
type Particle struct {
	Kind       Material
	Health     Health
	Velocity   Velocity
	Color      color.RGBA
	Movement   MovementType
	Density    uint32
	Collision  CollisionType
	Gravity    bool
	Updated    bool
	GrowableOn bool

	Traits      Trait
	Acidity     int
	Thermal     Thermal
	Emitter     int
	Combustible Combustible
	Lifespan    Lifespan
	Growth      Growth
}

// Has reports whether every trait in t is present.
func (p *Particle) Has(t Trait) bool { return p.Traits&t == t }

// Add enables the given traits.
func (p *Particle) Add(t Trait) { p.Traits |= t }

// Remove disables the given traits.
func (p *Particle) Remove(t Trait) { p.Traits &^= t }
