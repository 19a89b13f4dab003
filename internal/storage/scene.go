package storage

import (
	"time"

	"sandfall/internal/sandbox"
)

// Cell is one occupied cell of a saved scene.
type Cell struct {
	X, Y     int
	Material string
}

// Scene is a named snapshot of which material occupies each cell. Particle
// state beyond the material is not kept; loading respawns fresh particles.
type Scene struct {
	ID        int64
	Name      string
	Width     int
	Height    int
	Seed      int64
	CreatedAt time.Time
	Cells     []Cell
}

// SceneInfo summarizes a saved scene.
type SceneInfo struct {
	ID        int64
	Name      string
	Width     int
	Height    int
	Seed      int64
	Cells     int
	CreatedAt time.Time
}

// Capture snapshots the occupied cells of g.
func Capture(name string, seed int64, g *sandbox.Grid) Scene {
	scene := Scene{Name: name, Width: g.Width(), Height: g.Height(), Seed: seed}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if p := g.Get(x, y); p != nil {
				scene.Cells = append(scene.Cells, Cell{X: x, Y: y, Material: p.Kind.String()})
			}
		}
	}
	return scene
}

// Apply clears the simulation grid and respawns the scene's cells. Cells
// outside the grid or with unknown materials are skipped and counted.
func (s *Scene) Apply(sim *sandbox.Simulation) (placed, skipped int) {
	sim.Grid().Clear()
	for _, c := range s.Cells {
		m, err := sandbox.ParseMaterial(c.Material)
		if err != nil || m == sandbox.None || !sim.Place(c.X, c.Y, m) {
			skipped++
			continue
		}
		placed++
	}
	return placed, skipped
}
