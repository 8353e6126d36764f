// Package config holds runtime settings and scene files for the renderer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"raycaster/internal/raycast"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// Config is the full set of runtime settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	View     ViewConfig     `yaml:"view"`
	Render   RenderConfig   `yaml:"render"`
	Movement MovementConfig `yaml:"movement"`
	Scene    SceneConfig    `yaml:"scene"`
}

// WindowConfig sizes the window and the logical screen.
type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Title  string  `yaml:"title"`
	TPS    int     `yaml:"tps"`
}

// ViewConfig sets the ray fan and the starting pose.
type ViewConfig struct {
	FOVDeg        float64 `yaml:"fov_deg"`
	Rays          int     `yaml:"rays"`
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	StartAngleDeg float64 `yaml:"start_angle_deg"`
	Sensitivity   float64 `yaml:"sensitivity"`
}

// RenderConfig controls projection and the compute backend.
type RenderConfig struct {
	WallHeight  float64 `yaml:"wall_height"`
	FogDistance float64 `yaml:"fog_distance"`
	Epsilon     float64 `yaml:"epsilon"`
	Backend     string  `yaml:"backend"`
	Workers     int     `yaml:"workers"`
}

// MovementConfig controls the frame controller.
type MovementConfig struct {
	Speed   float64 `yaml:"speed"`
	Collide bool    `yaml:"collide"`
}

// SceneConfig points at a scene file and optionally adds random walls.
type SceneConfig struct {
	Path    string        `yaml:"path"`
	Scatter ScatterConfig `yaml:"scatter"`
}

// ScatterConfig adds randomly placed walls inside the scene bounds. A zero
// Seed picks a time-based one.
type ScatterConfig struct {
	Walls     int     `yaml:"walls"`
	MinLength float64 `yaml:"min_length"`
	MaxLength float64 `yaml:"max_length"`
	Margin    float64 `yaml:"margin"`
	Clearance float64 `yaml:"clearance"`
	Seed      int64   `yaml:"seed"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1200, Height: 800, Scale: 1, Title: "ray-casting", TPS: 60},
		View:   ViewConfig{FOVDeg: 60, Rays: 1200, StartX: 600, StartY: 400},
		Render: RenderConfig{
			WallHeight:  raycast.DefaultProjection.WallHeight,
			FogDistance: raycast.DefaultProjection.FogDistance,
			Epsilon:     raycast.DefaultProjection.Epsilon,
			Backend:     string(raycast.BackendAuto),
		},
		Movement: MovementConfig{Speed: 200},
		Scene: SceneConfig{
			Scatter: ScatterConfig{MinLength: 40, MaxLength: 400, Margin: 20, Clearance: 60},
		},
	}
}

// FOV returns the field of view in radians.
func (c Config) FOV() float64 { return c.View.FOVDeg * math.Pi / 180 }

// StartAngle returns the starting facing angle in radians.
func (c Config) StartAngle() float64 { return c.View.StartAngleDeg * math.Pi / 180 }

// Sensitivity returns the pointer divisor, defaulting to the window height.
func (c Config) Sensitivity() float64 {
	if c.View.Sensitivity > 0 {
		return c.View.Sensitivity
	}
	return float64(c.Window.Height)
}

// Projection returns the caster's projection parameters.
func (c Config) Projection() raycast.Projection {
	return raycast.Projection{
		WallHeight:  c.Render.WallHeight,
		FogDistance: c.Render.FogDistance,
		Epsilon:     c.Render.Epsilon,
	}
}

// Backend returns the parsed compute backend.
func (c Config) Backend() (raycast.Backend, error) {
	return raycast.ParseBackend(c.Render.Backend)
}

// Scatter returns the random wall settings, kept clear of the start pose.
func (c Config) Scatter() raycast.Scatter {
	sc := c.Scene.Scatter
	return raycast.Scatter{
		Count:     sc.Walls,
		MinLength: sc.MinLength,
		MaxLength: sc.MaxLength,
		Margin:    sc.Margin,
		Keep:      raycast.Vec2{X: c.View.StartX, Y: c.View.StartY},
		Clearance: sc.Clearance,
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if !(c.Window.Scale > 0) {
		errs = append(errs, fmt.Errorf("window scale must be positive, got %v", c.Window.Scale))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps must be positive, got %d", c.Window.TPS))
	}
	if !(c.View.FOVDeg > 0 && c.View.FOVDeg < 180) {
		errs = append(errs, fmt.Errorf("fov_deg must be in (0, 180), got %v", c.View.FOVDeg))
	}
	if c.View.Rays <= 0 {
		errs = append(errs, fmt.Errorf("rays must be positive, got %d", c.View.Rays))
	}
	if c.View.Sensitivity < 0 {
		errs = append(errs, fmt.Errorf("sensitivity must not be negative, got %v", c.View.Sensitivity))
	}
	if err := c.Projection().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := c.Backend(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Render.Workers))
	}
	if err := c.Scatter().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scene: %w", err))
	}
	if c.Movement.Speed < 0 {
		errs = append(errs, fmt.Errorf("movement speed must not be negative, got %v", c.Movement.Speed))
	}
	return errors.Join(errs...)
}
