// Package player owns the viewer's state and advances it from input each
// frame.
package player

import (
	"errors"
	"math"

	"raycaster/internal/raycast"
)

// Speed is the default movement speed in world units per second.
const Speed = 200.0

// ViewState is everything the renderer needs to know about the viewer.
// Position and Angle change every frame; the rest is fixed for the run.
type ViewState struct {
	Position       raycast.Vec2
	Angle          float64
	FieldOfView    float64
	RayCount       int
	AngleStep      float64
	ViewportWidth  int
	ViewportHeight int
}

// NewViewState validates the fixed view parameters and derives AngleStep.
func NewViewState(pos raycast.Vec2, angle, fov float64, rays, width, height int) (*ViewState, error) {
	switch {
	case rays <= 0:
		return nil, errors.New("ray count must be positive")
	case !(fov > 0) || fov >= math.Pi:
		return nil, errors.New("field of view must be in (0, pi) radians")
	case width <= 0 || height <= 0:
		return nil, errors.New("viewport must be positive")
	}
	return &ViewState{
		Position:       pos,
		Angle:          angle,
		FieldOfView:    fov,
		RayCount:       rays,
		AngleStep:      fov / float64(rays),
		ViewportWidth:  width,
		ViewportHeight: height,
	}, nil
}

// Intent is one frame of directional input. Forward beats Back and
// StrafeLeft beats StrafeRight when both of a pair are held. Turn is the
// horizontal pointer delta in pixels.
type Intent struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	Turn        float64
}

// Moving reports whether the intent translates the viewer.
func (in Intent) Moving() bool {
	return in.Forward || in.Back || in.StrafeLeft || in.StrafeRight
}

// Blocker rejects straight-line moves that would pass through geometry.
type Blocker interface {
	Blocks(from, to raycast.Vec2) bool
}

// Controller advances a ViewState. It is not safe for concurrent use; the
// frame loop is its only caller.
type Controller struct {
	state       *ViewState
	speed       float64
	sensitivity float64
	blocker     Blocker
}

// Option customizes a Controller.
type Option func(*Controller)

// WithSpeed overrides the movement speed.
func WithSpeed(speed float64) Option {
	return func(c *Controller) { c.speed = speed }
}

// WithSensitivity sets the pointer divisor: a Turn of sensitivity pixels
// rotates the view by one radian.
func WithSensitivity(s float64) Option {
	return func(c *Controller) {
		if s > 0 {
			c.sensitivity = s
		}
	}
}

// WithBlocker enables wall collision for translations.
func WithBlocker(b Blocker) Option {
	return func(c *Controller) { c.blocker = b }
}

// NewController wraps state. Sensitivity defaults to the viewport height.
func NewController(state *ViewState, opts ...Option) *Controller {
	c := &Controller{
		state:       state,
		speed:       Speed,
		sensitivity: float64(state.ViewportHeight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return *c.state }

// Advance moves and turns the viewer for one frame of dt seconds. Movement
// uses the facing angle from before this frame's turn. An intent with no
// direction held never consults the blocker.
func (c *Controller) Advance(dt float64, in Intent) {
	if dt > 0 && in.Moving() {
		step := c.speed * dt
		switch {
		case in.Forward:
			c.move(c.state.Angle, step)
		case in.Back:
			c.move(c.state.Angle+math.Pi, step)
		}
		switch {
		case in.StrafeLeft:
			c.move(c.state.Angle-math.Pi/2, step)
		case in.StrafeRight:
			c.move(c.state.Angle+math.Pi/2, step)
		}
	}
	c.state.Angle += in.Turn / c.sensitivity
}

// move translates along angle by dist unless the blocker refuses.
func (c *Controller) move(angle, dist float64) {
	next := c.state.Position.Add(raycast.Direction(angle).Scale(dist))
	if c.blocker != nil && c.blocker.Blocks(c.state.Position, next) {
		return
	}
	c.state.Position = next
}

// Input packs the current state into the caster's wire record.
func (c *Controller) Input() raycast.ViewInput {
	s := c.state
	return raycast.NewViewInput(s.Position, s.Angle, s.FieldOfView, s.RayCount, s.ViewportWidth, s.ViewportHeight)
}
