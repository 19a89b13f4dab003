package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sandfall/internal/sandbox"
)

// Load reads the configuration and fills anything the document leaves out
// from the defaults.
// Search order: customPath -> ~/.sandfall/config.yaml -> ./configs/sandfall.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which document was used. The
// embedded default reports "embedded".
func LoadWithSource(customPath string) (Config, string, error) {
	// Custom path must exist when given
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "sandfall.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), "builtin", nil
	}
	return cfg, "embedded", nil
}

func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandfall", filename)
}

// Validate resets non-positive sizes and rates to their defaults and rejects
// values that cannot be repaired.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Grid.ChunksX <= 0 {
		c.Grid.ChunksX = def.Grid.ChunksX
	}
	if c.Grid.ChunksY <= 0 {
		c.Grid.ChunksY = def.Grid.ChunksY
	}
	if c.Grid.ChunkWidth <= 0 {
		c.Grid.ChunkWidth = def.Grid.ChunkWidth
	}
	if c.Grid.ChunkHeight <= 0 {
		c.Grid.ChunkHeight = def.Grid.ChunkHeight
	}
	if c.Sim.TPS <= 0 {
		c.Sim.TPS = def.Sim.TPS
	}
	if c.Sim.TerminalVelocity <= 0 {
		c.Sim.TerminalVelocity = def.Sim.TerminalVelocity
	}
	if c.Sim.ExplosionForce <= 0 {
		c.Sim.ExplosionForce = def.Sim.ExplosionForce
	}
	if c.Collider.SolidTolerance <= 0 {
		c.Collider.SolidTolerance = def.Collider.SolidTolerance
	}
	if c.Collider.SensorTolerance <= 0 {
		c.Collider.SensorTolerance = def.Collider.SensorTolerance
	}
	if c.Render.Scale <= 0 {
		c.Render.Scale = def.Render.Scale
	}
	if c.Brush.Radius < 0 {
		c.Brush.Radius = def.Brush.Radius
	}
	if c.Brush.Material == "" {
		c.Brush.Material = def.Brush.Material
	}
	if _, err := sandbox.ParseMaterial(c.Brush.Material); err != nil {
		return fmt.Errorf("config: brush: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "":
		c.Log.Level = def.Log.Level
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// ParseOverrides splits key=value pairs as given on the command line.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("config: override %q is not key=value", kv)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// FromMap applies flag-style key/value overrides to base. Keys use the
// YAML section path, e.g. "grid.chunks_x" or "sim.seed". Values that fail
// to parse or fall out of range are ignored.
func FromMap(base Config, kv map[string]string) Config {
	c := base
	if kv == nil {
		return c
	}
	positive := func(key string, dst *int) {
		if v, ok := kv[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	positiveFloat := func(key string, dst *float32) {
		if v, ok := kv[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
				*dst = float32(parsed)
			}
		}
	}
	str := func(key string, dst *string) {
		if v, ok := kv[key]; ok && v != "" {
			*dst = v
		}
	}

	positive("grid.chunks_x", &c.Grid.ChunksX)
	positive("grid.chunks_y", &c.Grid.ChunksY)
	positive("grid.chunk_width", &c.Grid.ChunkWidth)
	positive("grid.chunk_height", &c.Grid.ChunkHeight)
	positive("sim.tps", &c.Sim.TPS)
	positive("sim.terminal_velocity", &c.Sim.TerminalVelocity)
	positiveFloat("sim.explosion_force", &c.Sim.ExplosionForce)
	positiveFloat("collider.solid_tolerance", &c.Collider.SolidTolerance)
	positiveFloat("collider.sensor_tolerance", &c.Collider.SensorTolerance)
	positive("render.scale", &c.Render.Scale)
	if v, ok := kv["sim.seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sim.Seed = parsed
		}
	}
	if v, ok := kv["brush.radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Brush.Radius = parsed
		}
	}
	if v, ok := kv["brush.material"]; ok {
		if _, err := sandbox.ParseMaterial(v); err == nil {
			c.Brush.Material = v
		}
	}
	str("log.level", &c.Log.Level)
	str("storage.path", &c.Storage.Path)
	str("stream.addr", &c.Stream.Addr)
	return c
}
