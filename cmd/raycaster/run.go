package main

import (
	"time"

	"github.com/spf13/cobra"

	"raycaster/internal/game"
)

var (
	flagAutoWalk time.Duration
	flagSeed     int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the renderer window",
	Long: `Open the renderer window and cast one frame per tick.

Examples:
  raycaster run
  raycaster run --autowalk 30s --seed 7
  raycaster run --backend opencl --rays 600`,
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&flagAutoWalk, "autowalk", 0, "Walk a scripted route for this long, then exit")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "Seed for --autowalk (0 = time based)")
}

func runRun(cmd *cobra.Command, args []string) error {
	r, err := setup(logger, flagOverrides())
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Warn("releasing caster", "err", err)
		}
	}()

	g := game.New(game.Options{
		Config:   r.cfg,
		Scene:    r.scene,
		Loop:     r.loop,
		Logger:   logger,
		AutoWalk: flagAutoWalk,
		Seed:     flagSeed,
	})
	if err := game.Run(g); err != nil {
		return err
	}
	st := r.loop.Stats()
	logger.Info("window closed", "frames", st.Frames, "skipped", st.Skipped)
	return nil
}
