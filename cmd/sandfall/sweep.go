package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"sandfall/internal/sweep"
)

var (
	flagSweepTicks      int
	flagSweepWorkers    int
	flagSweepVelocities []int
	flagSweepForces     []float32
	flagSweepScenarios  []string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run scenarios across a grid of physical parameters",
	Long: `Run every selected scenario once per parameter combination, in
parallel, and report how quickly each run comes to rest.

Examples:
  sandfall sweep
  sandfall sweep --scenario blast --forces 5,10,20 --ticks 400`,
	Run: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&flagSweepTicks, "ticks", 240, "Ticks to simulate per run")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	sweepCmd.Flags().IntSliceVar(&flagSweepVelocities, "velocities", []int{1, 2, 4}, "Terminal velocities to try")
	sweepCmd.Flags().Float32SliceVar(&flagSweepForces, "forces", []float32{10}, "Explosion forces to try")
	sweepCmd.Flags().StringSliceVar(&flagSweepScenarios, "scenario", nil, "Scenarios to run (default all)")
}

func runSweep(_ *cobra.Command, _ []string) {
	cfg, logger := setup()

	scenarios, err := sweep.Lookup(flagSweepScenarios...)
	if err != nil {
		exitf("Error: %v (available: %v)", err, sweep.Names())
	}
	sets := sweep.Grid(flagSweepVelocities, flagSweepForces)
	fmt.Printf("Sweeping %d scenarios x %d parameter sets (%d workers, %d ticks)\n",
		len(scenarios), len(sets), flagSweepWorkers, flagSweepTicks)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sweep.Run(ctx, cfg, scenarios, sets, sweep.Options{
		Ticks:   flagSweepTicks,
		Workers: flagSweepWorkers,
		Logger:  logger,
	})
	if err != nil {
		exitf("Sweep aborted: %v", err)
	}

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range results {
		fmt.Printf("%2d) %s\n", i+1, res)
	}
}
