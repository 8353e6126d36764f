// Package frame sequences one rendered frame: advance the viewer, cast every
// ray, and publish the finished batch.
package frame

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"raycaster/internal/player"
	"raycaster/internal/raycast"
)

// Stats describes the most recent frame.
type Stats struct {
	Frames   uint64
	Skipped  uint64
	CastTime time.Duration
}

// Loop owns the controller and the last complete batch of results.
type Loop struct {
	ctrl    *player.Controller
	caster  raycast.Caster
	logger  *log.Logger
	results []raycast.RayResult
	stats   Stats
}

// NewLoop wires a controller to a caster.
func NewLoop(ctrl *player.Controller, caster raycast.Caster, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{ctrl: ctrl, caster: caster, logger: logger}
}

// Step runs one frame. The new batch replaces the published results only
// once CastAll has returned all of it; on error the previous frame stays
// visible and the frame counts as skipped.
func (l *Loop) Step(ctx context.Context, dt float64, in player.Intent) error {
	l.ctrl.Advance(dt, in)
	view := l.ctrl.Input()

	start := time.Now()
	results, err := l.caster.CastAll(ctx, view)
	l.stats.CastTime = time.Since(start)
	l.stats.Frames++
	if err != nil {
		l.stats.Skipped++
		l.logger.Warn("frame skipped", "frame", l.stats.Frames, "caster", l.caster.Name(), "err", err)
		return err
	}
	l.results = results
	return nil
}

// Results returns the last complete batch. Callers must not modify it.
func (l *Loop) Results() []raycast.RayResult { return l.results }

// Stats returns counters for the debug overlay.
func (l *Loop) Stats() Stats { return l.stats }

// State returns the viewer state after the last Step.
func (l *Loop) State() player.ViewState { return l.ctrl.State() }

// CasterName reports which backend is producing frames.
func (l *Loop) CasterName() string { return l.caster.Name() }
