// Package game runs the renderer inside an ebiten window.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/config"
	"raycaster/internal/frame"
	"raycaster/internal/player"
	"raycaster/internal/raycast"
)

// Options wires a Game.
type Options struct {
	Config config.Config
	Scene  *raycast.SegmentScene
	Loop   *frame.Loop
	Logger *log.Logger

	// AutoWalk, when positive, replaces keyboard input with a scripted walk
	// and closes the window once it elapses.
	AutoWalk time.Duration
	Seed     int64
}

// Game is the ebiten.Game driving one frame loop.
type Game struct {
	cfg    config.Config
	scene  *raycast.SegmentScene
	loop   *frame.Loop
	logger *log.Logger

	autoPilot    *player.AutoPilot
	autoDeadline time.Time

	cursorX     int
	cursorValid bool

	showMap   bool
	showDebug bool
}

// New constructs a Game from fully initialized parts.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		cfg:    opts.Config,
		scene:  opts.Scene,
		loop:   opts.Loop,
		logger: logger,
	}
	if opts.AutoWalk > 0 {
		g.enableAutoWalk(opts.AutoWalk, opts.Seed)
	}
	return g
}

// Update advances the viewer and casts the next frame. A failed batch is
// logged by the loop and the previous frame stays on screen.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleDebugControls()

	in, done := g.intent()
	if done {
		g.logger.Info("auto walk finished", "frames", g.loop.Stats().Frames)
		return ebiten.Termination
	}

	dt := 1.0 / float64(g.cfg.Window.TPS)
	if tps := ebiten.ActualTPS(); tps >= 1 {
		dt = 1.0 / tps
	}
	if err := g.loop.Step(context.Background(), dt, in); err != nil && errors.Is(err, raycast.ErrBackendUnavailable) {
		return err
	}
	return nil
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Run opens the window and blocks until it closes.
func Run(g *Game) error {
	w := g.cfg.Window
	ebiten.SetWindowSize(int(float64(w.Width)*w.Scale), int(float64(w.Height)*w.Scale))
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
