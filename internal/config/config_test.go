package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultMatchesDefaultConfig(t *testing.T) {
	isolate(t)
	cfg, src, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != "embedded" {
		t.Fatalf("source = %q, want embedded", src)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("embedded config %+v differs from DefaultConfig %+v", cfg, DefaultConfig())
	}
	if cfg.Grid.Width() != 240 || cfg.Grid.Height() != 136 {
		t.Fatalf("default world = %dx%d", cfg.Grid.Width(), cfg.Grid.Height())
	}
}

func TestSearchOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join("configs", "sandfall.yaml"), "sim:\n  seed: 2\n")
	cfg, src, err := LoadWithSource("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Seed != 2 || src != filepath.Join("configs", "sandfall.yaml") {
		t.Fatalf("local config not used: seed %d from %s", cfg.Sim.Seed, src)
	}

	writeFile(t, filepath.Join(home, ".sandfall", "config.yaml"), "sim:\n  seed: 3\n")
	if cfg, _ := Load(""); cfg.Sim.Seed != 3 {
		t.Fatalf("user config should win over local config, seed = %d", cfg.Sim.Seed)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "sim:\n  seed: 4\ngrid:\n  chunks_x: 2\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Seed != 4 || cfg.Grid.ChunksX != 2 {
		t.Fatalf("custom config not applied: %+v", cfg)
	}
	if cfg.Grid.ChunksY != DefaultConfig().Grid.ChunksY || cfg.Sim.TPS != 60 {
		t.Fatal("keys missing from the document should keep their defaults")
	}
}

func TestCustomPathErrors(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "brush:\n  material: plasma\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for an unknown brush material")
	}

	writeFile(t, bad, "grid: [1, 2\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidateRepairsValues(t *testing.T) {
	cfg := Config{Log: LogConfig{Level: "debug"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if cfg.Grid != def.Grid || cfg.Sim.TPS != def.Sim.TPS || cfg.Collider != def.Collider {
		t.Fatalf("zero config not repaired: %+v", cfg)
	}
	if cfg.Brush.Material != "sand" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected brush/log: %+v %+v", cfg.Brush, cfg.Log)
	}

	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestOverrides(t *testing.T) {
	kv, err := ParseOverrides([]string{"grid.chunks_x=4", "sim.seed = -9", "sim.tps=0", "brush.material=water", "render.scale=x"})
	if err != nil {
		t.Fatal(err)
	}
	cfg := FromMap(DefaultConfig(), kv)
	if cfg.Grid.ChunksX != 4 || cfg.Sim.Seed != -9 || cfg.Brush.Material != "water" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Sim.TPS != 60 || cfg.Render.Scale != 4 {
		t.Fatal("invalid override values should be ignored")
	}

	if _, err := ParseOverrides([]string{"novalue"}); err == nil {
		t.Fatal("expected error for a pair without '='")
	}
	if _, err := ParseOverrides([]string{"=1"}); err == nil {
		t.Fatal("expected error for an empty key")
	}
}
