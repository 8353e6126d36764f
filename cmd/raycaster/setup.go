package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"raycaster/internal/config"
	"raycaster/internal/frame"
	"raycaster/internal/player"
	"raycaster/internal/raycast"
)

// overrides carries the global flags that replace config values.
type overrides struct {
	Scene   string
	Backend string
	Workers int
	Rays    int
	Scatter int

	// Pose overrides are only set by commands that place the viewer.
	StartX     *float64
	StartY     *float64
	StartAngle *float64
}

func flagOverrides() overrides {
	return overrides{
		Scene:   flagScene,
		Backend: flagBackend,
		Workers: flagWorkers,
		Rays:    flagRays,
		Scatter: flagScatter,
	}
}

// apply returns cfg with every set flag applied. Workers uses -1 for unset
// since 0 is a meaningful value.
func (o overrides) apply(cfg config.Config) config.Config {
	if o.Scene != "" {
		cfg.Scene.Path = o.Scene
	}
	if o.Backend != "" {
		cfg.Render.Backend = o.Backend
	}
	if o.Workers >= 0 {
		cfg.Render.Workers = o.Workers
	}
	if o.Rays > 0 {
		cfg.View.Rays = o.Rays
	}
	if o.Scatter > 0 {
		cfg.Scene.Scatter.Walls = o.Scatter
	}
	if o.StartX != nil {
		cfg.View.StartX = *o.StartX
	}
	if o.StartY != nil {
		cfg.View.StartY = *o.StartY
	}
	if o.StartAngle != nil {
		cfg.View.StartAngleDeg = *o.StartAngle
	}
	return cfg
}

// renderer is everything a command needs to produce frames.
type renderer struct {
	cfg    config.Config
	scene  *raycast.SegmentScene
	caster raycast.Caster
	loop   *frame.Loop
}

func (r *renderer) Close() error {
	if r.caster == nil {
		return nil
	}
	return r.caster.Close()
}

// setup loads config and scene, then builds the caster and frame loop.
func setup(logger *log.Logger, o overrides) (*renderer, error) {
	cfg, err := config.Load(flagConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg = o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	scene, err := config.BuildScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	logger.Debug("scene loaded", "walls", len(scene.Walls()), "max_distance", scene.MaxDistance(), "path", cfg.Scene.Path)

	state, err := player.NewViewState(
		raycast.Vec2{X: cfg.View.StartX, Y: cfg.View.StartY},
		cfg.StartAngle(), cfg.FOV(), cfg.View.Rays,
		cfg.Window.Width, cfg.Window.Height,
	)
	if err != nil {
		return nil, fmt.Errorf("initial view: %w", err)
	}
	opts := []player.Option{
		player.WithSpeed(cfg.Movement.Speed),
		player.WithSensitivity(cfg.Sensitivity()),
	}
	if cfg.Movement.Collide {
		opts = append(opts, player.WithBlocker(scene))
	}

	caster, err := raycast.NewCaster(scene, raycast.Options{
		Backend:    backend,
		Workers:    cfg.Render.Workers,
		Projection: cfg.Projection(),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating caster: %w", err)
	}
	logger.Info("caster ready", "backend", caster.Name(), "rays", cfg.View.Rays)

	return &renderer{
		cfg:    cfg,
		scene:  scene,
		caster: caster,
		loop:   frame.NewLoop(player.NewController(state, opts...), caster, logger),
	}, nil
}
