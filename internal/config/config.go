// Package config provides YAML-based configuration loading for sandfall.
package config

// Config is the top-level configuration document.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Sim      SimConfig      `yaml:"sim"`
	Collider ColliderConfig `yaml:"collider"`
	Render   RenderConfig   `yaml:"render"`
	Brush    BrushConfig    `yaml:"brush"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Stream   StreamConfig   `yaml:"stream"`
}

// GridConfig sizes the chunked world.
type GridConfig struct {
	ChunksX     int `yaml:"chunks_x"`
	ChunksY     int `yaml:"chunks_y"`
	ChunkWidth  int `yaml:"chunk_width"`
	ChunkHeight int `yaml:"chunk_height"`
}

// Width returns the world width in cells.
func (g GridConfig) Width() int { return g.ChunksX * g.ChunkWidth }

// Height returns the world height in cells.
func (g GridConfig) Height() int { return g.ChunksY * g.ChunkHeight }

// SimConfig holds the fixed-step loop and physics constants.
type SimConfig struct {
	TPS              int     `yaml:"tps"`
	Seed             int64   `yaml:"seed"`
	TerminalVelocity int     `yaml:"terminal_velocity"`
	ExplosionForce   float32 `yaml:"explosion_force"`
}

// ColliderConfig holds boundary simplification tolerances.
type ColliderConfig struct {
	SolidTolerance  float32 `yaml:"solid_tolerance"`
	SensorTolerance float32 `yaml:"sensor_tolerance"`
}

// RenderConfig controls the window presentation.
type RenderConfig struct {
	Scale int `yaml:"scale"`
}

// BrushConfig controls cursor painting.
type BrushConfig struct {
	Radius   int    `yaml:"radius"`
	Material string `yaml:"material"`
}

// LogConfig selects the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig locates the scene database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// StreamConfig configures the websocket geometry stream.
type StreamConfig struct {
	Addr string `yaml:"addr"`
}
