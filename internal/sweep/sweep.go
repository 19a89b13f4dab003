// Package sweep runs scenarios across a grid of physical parameters in
// parallel and reports how quickly each one comes to rest.
package sweep

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"sandfall/internal/config"
	"sandfall/internal/core"
	"sandfall/internal/sandbox"
)

// Params is one point of the sweep grid.
type Params struct {
	TerminalVelocity int
	ExplosionForce   float32
}

func (p Params) String() string {
	return fmt.Sprintf("tv=%d force=%.1f", p.TerminalVelocity, p.ExplosionForce)
}

// Grid returns the cartesian product of the given values.
func Grid(velocities []int, forces []float32) []Params {
	var out []Params
	for _, tv := range velocities {
		for _, f := range forces {
			out = append(out, Params{TerminalVelocity: tv, ExplosionForce: f})
		}
	}
	return out
}

// Scenario seeds a freshly reset simulation.
type Scenario struct {
	Name  string
	Setup func(sim *sandbox.Simulation)
}

// Result describes one scenario run.
type Result struct {
	Scenario   string
	Params     Params
	Ticks      int
	Occupied   int
	PeakStrong int
	Shapes     int
	// SettledAt is the first tick after which no chunk was strongly active,
	// or -1 if the run never settled.
	SettledAt int
}

// Settled reports whether the run came to rest.
func (r Result) Settled() bool { return r.SettledAt >= 0 }

func (r Result) String() string {
	settled := "never"
	if r.Settled() {
		settled = fmt.Sprintf("tick %d", r.SettledAt)
	}
	return fmt.Sprintf("%-9s %-18s settled %-10s cells %-5d peak %-4d shapes %d",
		r.Scenario, r.Params, settled, r.Occupied, r.PeakStrong, r.Shapes)
}

// Options configures Run.
type Options struct {
	Ticks   int
	Workers int
	Logger  *log.Logger
}

type job struct {
	scenario Scenario
	params   Params
}

// Run executes every scenario against every parameter set using a pool of
// workers. Results are ordered by scenario, then settle time (unsettled
// last), then parameters, so the output does not depend on scheduling.
func Run(ctx context.Context, base config.Config, scenarios []Scenario, sets []Params, opts Options) ([]Result, error) {
	if opts.Ticks <= 0 {
		opts.Ticks = 240
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	jobs := make(chan job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(ctx, base, j, opts.Ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, sc := range scenarios {
			for _, p := range sets {
				select {
				case jobs <- job{scenario: sc, params: p}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var all []Result
	for res := range results {
		logger.Debug("scenario done", "scenario", res.Scenario, "params", res.Params.String(), "settled", res.SettledAt)
		all = append(all, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Scenario != b.Scenario {
			return a.Scenario < b.Scenario
		}
		if a.Settled() != b.Settled() {
			return a.Settled()
		}
		if a.SettledAt != b.SettledAt {
			return a.SettledAt < b.SettledAt
		}
		if a.Params.TerminalVelocity != b.Params.TerminalVelocity {
			return a.Params.TerminalVelocity < b.Params.TerminalVelocity
		}
		return a.Params.ExplosionForce < b.Params.ExplosionForce
	})
	return all, nil
}

func runScenario(ctx context.Context, base config.Config, j job, ticks int) Result {
	cfg := base
	cfg.Sim.TerminalVelocity = j.params.TerminalVelocity
	cfg.Sim.ExplosionForce = j.params.ExplosionForce
	w := core.NewWorld(cfg, core.Options{})
	if j.scenario.Setup != nil {
		j.scenario.Setup(w.Sim())
	}

	res := Result{Scenario: j.scenario.Name, Params: j.params, SettledAt: -1}
	for tick := 1; tick <= ticks; tick++ {
		if ctx.Err() != nil {
			break
		}
		st := w.Advance()
		res.Ticks = tick
		res.PeakStrong = max(res.PeakStrong, st.Strong)
		if st.Strong == 0 {
			res.SettledAt = tick
			break
		}
	}
	st := w.Stats()
	res.Occupied = st.Occupied
	res.Shapes = st.Shapes
	return res
}
