package sandbox

import (
	_ "embed"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"

	"sandfall/pkg/core"
)

// Material identifies an entry of the material table.
type Material uint8

const (
	None Material = iota
	Sand
	Water
	Stone
	Steam
	Acid
	Wood
	Glass
	Spark
	Ember
	Smoke
	Lava
	Oil
	Gunpowder
	TNT
	Ash
	Dirt
	Grass
	Alcohol
	Igneous
	Indestructible
	materialCount
)

var materialNames = [materialCount]string{
	"none", "sand", "water", "stone", "steam", "acid", "wood", "glass", "spark", "ember",
	"smoke", "lava", "oil", "gunpowder", "tnt", "ash", "dirt", "grass", "alcohol", "igneous",
	"indestructible",
}

func (m Material) String() string {
	if m >= materialCount {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return materialNames[m]
}

// ParseMaterial resolves a material by its table name.
func ParseMaterial(name string) (Material, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return None, fmt.Errorf("materials: unknown material %q", name)
}

// AllMaterials lists every placeable material in table order.
func AllMaterials() []Material {
	out := make([]Material, 0, materialCount-1)
	for m := Sand; m < materialCount; m++ {
		out = append(out, m)
	}
	return out
}

//go:embed materials.yaml
var defaultMaterialsYAML []byte

type healthSpec struct {
	Amount     int   `yaml:"amount"`
	Min        int   `yaml:"min"`
	Max        int   `yaml:"max"`
	Corrodable *bool `yaml:"corrodable"`
}

type thermalSpec struct {
	Starting       int    `yaml:"starting"`
	Coolable       bool   `yaml:"coolable"`
	Heatable       bool   `yaml:"heatable"`
	CriticalOnCool bool   `yaml:"critical_on_cool"`
	OnCritical     string `yaml:"on_critical"`
	Explosion      int    `yaml:"explosion"`
}

type combustibleSpec struct {
	BurnTicks   int   `yaml:"burn_ticks"`
	BurnColor   []int `yaml:"burn_color"`
	CooledColor []int `yaml:"cooled_color"`
}

type lifespanSpec struct {
	OnDeath string `yaml:"on_death"`
}

type growthSpec struct {
	SpreadChance float64 `yaml:"spread_chance"`
	SproutChance float64 `yaml:"sprout_chance"`
	GrowAs       string  `yaml:"grow_as"`
}

type materialSpec struct {
	Name        string           `yaml:"name"`
	Color       []int            `yaml:"color"`
	Movement    string           `yaml:"movement"`
	Density     uint32           `yaml:"density"`
	Immovable   bool             `yaml:"immovable"`
	Collision   string           `yaml:"collision"`
	Gravity     bool             `yaml:"gravity"`
	GrowableOn  bool             `yaml:"growable_on"`
	Health      *healthSpec      `yaml:"health"`
	Acidity     int              `yaml:"acidity"`
	Emitter     int              `yaml:"emitter"`
	Thermal     *thermalSpec     `yaml:"thermal"`
	Combustible *combustibleSpec `yaml:"combustible"`
	Lifespan    *lifespanSpec    `yaml:"lifespan"`
	Growth      *growthSpec      `yaml:"growth"`
}

type template struct {
	particle  Particle
	healthMin int
	healthMax int
	sprout    float64
}

// Table holds the particle templates every material spawns from.
type Table struct {
	templates [materialCount]*template
}

// DefaultMaterials parses the embedded material table. The embedded table is
// validated by tests, so a failure here is a build defect.
func DefaultMaterials() *Table {
	t, err := LoadMaterials(defaultMaterialsYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadMaterials parses a YAML material table.
func LoadMaterials(data []byte) (*Table, error) {
	var specs []materialSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("materials: parse table: %w", err)
	}
	t := &Table{}
	for _, spec := range specs {
		m, err := ParseMaterial(spec.Name)
		if err != nil {
			return nil, err
		}
		if m == None {
			return nil, fmt.Errorf("materials: %q cannot be defined", spec.Name)
		}
		tpl, err := spec.build(m)
		if err != nil {
			return nil, fmt.Errorf("materials: %s: %w", spec.Name, err)
		}
		t.templates[m] = tpl
	}
	return t, nil
}

// Has reports whether the table defines m.
func (t *Table) Has(m Material) bool {
	return m < materialCount && t.templates[m] != nil
}

// New spawns a fresh particle of material m, rolling its randomized health
// and sprout eligibility from rng.
func (t *Table) New(m Material, rng *core.RNG) (Particle, bool) {
	if !t.Has(m) {
		return Particle{}, false
	}
	tpl := t.templates[m]
	p := tpl.particle
	if tpl.healthMax > tpl.healthMin {
		p.Health.Amount = rng.Range(tpl.healthMin, tpl.healthMax)
	}
	if p.Has(TraitGrowth) {
		p.Growth.CanSprout = rng.Chance(tpl.sprout)
	}
	return p, true
}

// Template returns a copy of the unrandomized template for m.
func (t *Table) Template(m Material) (Particle, bool) {
	if !t.Has(m) {
		return Particle{}, false
	}
	return t.templates[m].particle, true
}

func (s materialSpec) build(m Material) (*template, error) {
	p := Particle{
		Kind:       m,
		Health:     Health{Amount: 50, Corrodable: true},
		Density:    s.Density,
		Gravity:    s.Gravity,
		GrowableOn: s.GrowableOn,
	}
	if s.Immovable {
		p.Density = MaxDensity
	}

	var err error
	if p.Color, err = parseColor(s.Color); err != nil {
		return nil, err
	}
	if p.Movement, err = parseMovement(s.Movement); err != nil {
		return nil, err
	}
	if p.Collision, err = parseCollision(s.Collision); err != nil {
		return nil, err
	}

	tpl := &template{}
	if h := s.Health; h != nil {
		if h.Amount != 0 {
			p.Health.Amount = h.Amount
		}
		if h.Corrodable != nil {
			p.Health.Corrodable = *h.Corrodable
		}
		if h.Max > h.Min {
			tpl.healthMin, tpl.healthMax = h.Min, h.Max
			p.Health.Amount = h.Min
		}
	}
	if s.Acidity > 0 {
		p.Add(TraitCorrosive)
		p.Acidity = s.Acidity
	}
	if s.Emitter != 0 {
		p.Add(TraitEmitter)
		p.Emitter = s.Emitter
	}
	if th := s.Thermal; th != nil {
		p.Add(TraitThermal)
		p.Thermal = Thermal{
			Current:        th.Starting,
			Starting:       th.Starting,
			Heatable:       th.Heatable,
			Coolable:       th.Coolable,
			CriticalOnCool: th.CriticalOnCool,
			Explosion:      th.Explosion,
		}
		if p.Thermal.OnCritical, err = parseOptionalMaterial(th.OnCritical); err != nil {
			return nil, err
		}
	}
	if cb := s.Combustible; cb != nil {
		if !p.Has(TraitThermal) {
			return nil, fmt.Errorf("combustible requires a thermal block")
		}
		p.Add(TraitCombustible)
		p.Combustible.BurnTicks = cb.BurnTicks
		if p.Combustible.BurnColor, err = parseColor(cb.BurnColor); err != nil {
			return nil, err
		}
		if p.Combustible.CooledColor, err = parseColor(cb.CooledColor); err != nil {
			return nil, err
		}
	}
	if ls := s.Lifespan; ls != nil {
		p.Add(TraitLifespan)
		if p.Lifespan.OnDeath, err = parseOptionalMaterial(ls.OnDeath); err != nil {
			return nil, err
		}
	}
	if g := s.Growth; g != nil {
		p.Add(TraitGrowth)
		p.Growth.SpreadChance = g.SpreadChance
		p.Growth.SproutChance = g.SproutChance
		tpl.sprout = g.SproutChance
		if p.Growth.GrowAs, err = parseOptionalMaterial(g.GrowAs); err != nil {
			return nil, err
		}
		if p.Growth.GrowAs == None {
			p.Growth.GrowAs = m
		}
	}
	tpl.particle = p
	return tpl, nil
}

func parseOptionalMaterial(name string) (Material, error) {
	if name == "" {
		return None, nil
	}
	return ParseMaterial(name)
}

func parseColor(c []int) (color.RGBA, error) {
	switch len(c) {
	case 0:
		return color.RGBA{}, nil
	case 3, 4:
	default:
		return color.RGBA{}, fmt.Errorf("color needs 3 or 4 channels, got %d", len(c))
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, v := range c {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("color channel %d out of range", v)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func parseMovement(s string) (MovementType, error) {
	switch strings.ToLower(s) {
	case "", "powder":
		return Powder, nil
	case "solid":
		return Solid, nil
	case "liquid":
		return Liquid, nil
	case "gas":
		return Gas, nil
	default:
		return Powder, fmt.Errorf("unknown movement %q", s)
	}
}

func parseCollision(s string) (CollisionType, error) {
	for _, c := range CollisionTypes {
		if c.String() == strings.ToLower(s) {
			return c, nil
		}
	}
	if s == "" {
		return CollisionNone, nil
	}
	return CollisionNone, fmt.Errorf("unknown collision %q", s)
}
