package raycast

import (
	"errors"
	"math"
)

// Projection turns corrected hit distances into column heights and shades.
type Projection struct {
	// WallHeight is the world-space height of every wall.
	WallHeight float64
	// FogDistance is the corrected distance at which shade reaches zero.
	FogDistance float64
	// Epsilon floors the distance before division.
	Epsilon float64
}

// DefaultProjection matches the stock config.
var DefaultProjection = Projection{
	WallHeight:  64,
	FogDistance: 900,
	Epsilon:     1,
}

// Validate reports parameters that would make heights or shades degenerate.
func (p Projection) Validate() error {
	switch {
	case !(p.WallHeight > 0):
		return errors.New("wall height must be positive")
	case !(p.FogDistance > 0):
		return errors.New("fog distance must be positive")
	case !(p.Epsilon > 0):
		return errors.New("epsilon must be positive")
	}
	return nil
}

// PlaneDistance is the distance from the eye to a projection plane exactly
// viewportWidth pixels wide across the field of view.
func PlaneDistance(view ViewInput) float64 {
	return float64(view.ViewportWidth) / 2 / math.Tan(float64(view.FieldOfView)/2)
}

// RayAngle returns the angle of ray i. Rays sweep left to right and each one
// passes through the center of its column, so the fan is symmetric around the
// facing angle.
func RayAngle(view ViewInput, i int) float64 {
	return float64(view.Angle) - float64(view.FieldOfView)/2 + (float64(i)+0.5)*float64(view.AngleStep)
}

// Height is the on-screen height for a fisheye-corrected distance. The result
// is finite and non-negative for any input; distances at or below Epsilon all
// map to the maximum height.
func (p Projection) Height(plane, distance float64) float64 {
	if math.IsNaN(distance) || distance < p.Epsilon {
		distance = p.Epsilon
	}
	return p.WallHeight * plane / distance
}

// MaxHeight is the height reported for distances at or below Epsilon.
func (p Projection) MaxHeight(plane float64) float64 {
	return p.Height(plane, p.Epsilon)
}

// Shade is 1 at the eye, falls off with the square of distance and reaches
// 0 at FogDistance.
func (p Projection) Shade(distance float64) float64 {
	if math.IsNaN(distance) || distance <= 0 {
		return 1
	}
	f := distance / p.FogDistance
	s := 1 - f*f
	if s < 0 {
		return 0
	}
	return s
}

// castRay computes ray i against scene. It reads nothing but its arguments,
// so rays can be evaluated in any order or concurrently.
func (p Projection) castRay(scene Intersector, view ViewInput, plane float64, i int) RayResult {
	origin := Vec2{X: float64(view.PosX), Y: float64(view.PosY)}
	angle := RayAngle(view, i)
	raw := scene.Intersect(origin, Direction(angle))
	if math.IsNaN(raw) || raw > scene.MaxDistance() {
		raw = scene.MaxDistance()
	}
	corrected := raw * math.Cos(angle-float64(view.Angle))
	return RayResult{
		Height: float32(p.Height(plane, corrected)),
		Shade:  float32(p.Shade(corrected)),
	}
}
