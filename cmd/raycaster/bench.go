package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"raycaster/internal/player"
)

var (
	flagBenchFrames int
	flagBenchSeed   int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time frame batches without a window",
	Long: `Walk the autopilot through the scene for a fixed number of frames and
report how long CastAll took. Frames are stepped at the configured TPS.

Examples:
  raycaster bench --frames 1000
  raycaster bench --backend cpu --workers 1 --rays 4000`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&flagBenchFrames, "frames", "n", 300, "Frames to cast")
	benchCmd.Flags().Int64Var(&flagBenchSeed, "seed", 1, "Autopilot seed")
}

func runBench(cmd *cobra.Command, args []string) error {
	if flagBenchFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagBenchFrames)
	}
	r, err := setup(logger, flagOverrides())
	if err != nil {
		return err
	}
	defer r.Close()

	ctx := cmd.Context()
	pilot := player.NewAutoPilot(flagBenchSeed)
	dt := 1.0 / float64(r.cfg.Window.TPS)

	var total, worst time.Duration
	start := time.Now()
	for i := 0; i < flagBenchFrames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Skipped frames are already logged by the loop.
		_ = r.loop.Step(ctx, dt, pilot.Next())
		cast := r.loop.Stats().CastTime
		total += cast
		worst = max(worst, cast)
	}
	elapsed := time.Since(start)

	st := r.loop.Stats()
	done := st.Frames - st.Skipped
	rays := done * uint64(r.cfg.View.Rays)
	throughput := 0.0
	if total > 0 {
		throughput = float64(rays) / total.Seconds() / 1e6
	}
	logger.Info("bench complete",
		"caster", r.loop.CasterName(),
		"frames", st.Frames,
		"skipped", st.Skipped,
		"avg_cast", total/time.Duration(flagBenchFrames),
		"worst_cast", worst,
		"fps", fmt.Sprintf("%.1f", float64(st.Frames)/elapsed.Seconds()),
		"mrays_per_s", fmt.Sprintf("%.2f", throughput),
	)
	return nil
}
