package sweep

import (
	"fmt"
	"sort"

	"sandfall/internal/sandbox"
)

var builtin = map[string]Scenario{
	"sandpile": {Name: "sandpile", Setup: sandpile},
	"dam":      {Name: "dam", Setup: dam},
	"blast":    {Name: "blast", Setup: blast},
}

// Names lists the built-in scenarios.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup resolves built-in scenarios by name. No names selects all of them.
func Lookup(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]Scenario, 0, len(names))
	for _, n := range names {
		sc, ok := builtin[n]
		if !ok {
			return nil, fmt.Errorf("sweep: unknown scenario %q", n)
		}
		out = append(out, sc)
	}
	return out, nil
}

// sandpile drops a block of sand from the top centre.
func sandpile(sim *sandbox.Simulation) {
	g := sim.Grid()
	cx := g.Width() / 2
	for y := 0; y < g.Height()/4; y++ {
		for x := cx - 3; x <= cx+3; x++ {
			sim.Place(x, y, sandbox.Sand)
		}
	}
}

// dam holds water behind a stone wall with a one cell gap at the bottom.
func dam(sim *sandbox.Simulation) {
	g := sim.Grid()
	wall := g.Width() / 3
	for y := g.Height() / 3; y < g.Height()-1; y++ {
		sim.Place(wall, y, sandbox.Stone)
	}
	for y := g.Height() / 3; y < g.Height(); y++ {
		for x := 0; x < wall; x++ {
			sim.Place(x, y, sandbox.Water)
		}
	}
}

// blast buries a TNT charge under a sand bed.
func blast(sim *sandbox.Simulation) {
	g := sim.Grid()
	for y := g.Height() - g.Height()/3; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sim.Place(x, y, sandbox.Sand)
		}
	}
	cx, cy := g.Width()/2, g.Height()-g.Height()/6
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			sim.Place(x, y, sandbox.TNT)
		}
	}
	sim.Place(cx, cy-2, sandbox.Lava)
}
