package sandbox

import (
	"strings"
	"testing"

	"sandfall/pkg/core"
)

func TestDefaultMaterialsCoverEveryMaterial(t *testing.T) {
	tbl, err := LoadMaterials(defaultMaterialsYAML)
	if err != nil {
		t.Fatalf("embedded table: %v", err)
	}
	for _, m := range AllMaterials() {
		if !tbl.Has(m) {
			t.Fatalf("material %s missing from table", m)
		}
		p, _ := tbl.Template(m)
		if p.Kind != m {
			t.Fatalf("template for %s has kind %s", m, p.Kind)
		}
	}
	if tbl.Has(None) {
		t.Fatal("none must not be spawnable")
	}
}

func TestMaterialTemplates(t *testing.T) {
	tbl := DefaultMaterials()

	sand, _ := tbl.Template(Sand)
	if sand.Movement != Powder || sand.Density != MaxDensity || sand.Collision != CollisionSolid {
		t.Fatalf("unexpected sand template: %+v", sand)
	}
	if !sand.Has(TraitThermal) || sand.Thermal.OnCritical != Glass || sand.Thermal.Current != 50 {
		t.Fatalf("sand thermal = %+v", sand.Thermal)
	}
	if sand.Health.Amount != 50 || !sand.Health.Corrodable {
		t.Fatalf("sand health = %+v", sand.Health)
	}

	water, _ := tbl.Template(Water)
	if !water.Has(TraitEmitter) || water.Emitter != 5 || water.Collision != CollisionWater {
		t.Fatalf("unexpected water template: %+v", water)
	}

	acid, _ := tbl.Template(Acid)
	if !acid.Has(TraitCorrosive) || acid.Acidity != 5 || acid.Health.Corrodable {
		t.Fatalf("unexpected acid template: %+v", acid)
	}

	grass, _ := tbl.Template(Grass)
	if !grass.Has(TraitGrowth) || grass.Growth.GrowAs != Grass || !grass.Has(TraitCombustible) {
		t.Fatalf("unexpected grass template: %+v", grass)
	}

	tnt, _ := tbl.Template(TNT)
	if tnt.Thermal.Explosion != 15 {
		t.Fatalf("tnt explosion = %d", tnt.Thermal.Explosion)
	}
}

func TestSpawnRandomizesHealthInRange(t *testing.T) {
	tbl := DefaultMaterials()
	rng := core.NewRNG(3)
	for i := 0; i < 200; i++ {
		p, ok := tbl.New(Steam, rng)
		if !ok {
			t.Fatal("steam should spawn")
		}
		if p.Health.Amount < 100 || p.Health.Amount >= 120 {
			t.Fatalf("steam health %d out of [100,120)", p.Health.Amount)
		}
		if p.Lifespan.OnDeath != Water {
			t.Fatalf("steam decays into %s", p.Lifespan.OnDeath)
		}
	}
	if _, ok := tbl.New(None, rng); ok {
		t.Fatal("spawning none should fail")
	}
}

func TestParseMaterial(t *testing.T) {
	for _, m := range AllMaterials() {
		got, err := ParseMaterial(strings.ToUpper(m.String()))
		if err != nil {
			t.Fatalf("ParseMaterial(%s): %v", m, err)
		}
		if got != m {
			t.Fatalf("ParseMaterial(%s) = %s", m, got)
		}
	}
	if _, err := ParseMaterial("plasma"); err == nil {
		t.Fatal("expected error for unknown material")
	}
}

func TestLoadMaterialsRejectsInvalidTables(t *testing.T) {
	tests := map[string]string{
		"unknown name":  "- name: plasma\n",
		"none":          "- name: none\n",
		"bad color":     "- name: sand\n  color: [1, 2]\n",
		"channel range": "- name: sand\n  color: [1, 2, 300]\n",
		"movement":      "- name: sand\n  movement: teleport\n",
		"collision":     "- name: sand\n  collision: bouncy\n",
		"no thermal":    "- name: wood\n  combustible: {burn_ticks: 5}\n",
		"bad reference": "- name: sand\n  thermal: {starting: 1, on_critical: plasma}\n",
		"not a list":    "sand: true\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadMaterials([]byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
