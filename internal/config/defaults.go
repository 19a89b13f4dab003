package config

import (
	_ "embed"
)

//go:embed defaults/sandfall.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			ChunksX:     30,
			ChunksY:     17,
			ChunkWidth:  8,
			ChunkHeight: 8,
		},
		Sim: SimConfig{
			TPS:              60,
			Seed:             1337,
			TerminalVelocity: 1,
			ExplosionForce:   10,
		},
		Collider: ColliderConfig{
			SolidTolerance:  1,
			SensorTolerance: 2,
		},
		Render: RenderConfig{Scale: 4},
		Brush: BrushConfig{
			Radius:   5,
			Material: "sand",
		},
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{Path: "~/.sandfall/scenes.db"},
		Stream:  StreamConfig{Addr: "127.0.0.1:8765"},
	}
}
