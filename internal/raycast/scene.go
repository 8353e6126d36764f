package raycast

import (
	"errors"
	"math"
)

// Vec2 is a point or direction in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Cross returns the z component of the 3-D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Direction returns the unit vector for angle in the renderer's convention:
// x grows to the right and y grows downward, so positive angles turn clockwise
// on screen.
func Direction(angle float64) Vec2 {
	return Vec2{X: math.Cos(-angle), Y: -math.Sin(-angle)}
}

// Intersector is the scene capability a caster needs: the distance from
// origin along the unit direction dir to the nearest surface, or MaxDistance
// when nothing is hit in range.
type Intersector interface {
	Intersect(origin, dir Vec2) float64
	MaxDistance() float64
}

// Segment is a single wall between two endpoints.
type Segment struct {
	A, B Vec2
}

// SegmentScene is a static list of wall segments.
type SegmentScene struct {
	walls       []Segment
	maxDistance float64
}

// NewSegmentScene copies walls into a scene. Rays that hit nothing closer
// than maxDistance report maxDistance.
func NewSegmentScene(walls []Segment, maxDistance float64) (*SegmentScene, error) {
	if maxDistance <= 0 || math.IsInf(maxDistance, 0) || math.IsNaN(maxDistance) {
		return nil, errors.New("scene max distance must be a positive finite number")
	}
	for _, w := range walls {
		if w.A == w.B {
			return nil, errors.New("scene contains a zero-length wall")
		}
	}
	cp := make([]Segment, len(walls))
	copy(cp, walls)
	return &SegmentScene{walls: cp, maxDistance: maxDistance}, nil
}

// Walls returns the scene walls. The slice must not be modified.
func (s *SegmentScene) Walls() []Segment { return s.walls }

// MaxDistance implements Intersector.
func (s *SegmentScene) MaxDistance() float64 { return s.maxDistance }

// Intersect implements Intersector.
func (s *SegmentScene) Intersect(origin, dir Vec2) float64 {
	best := s.maxDistance
	for _, w := range s.walls {
		if t, ok := raySegment(origin, dir, w); ok && t < best {
			best = t
		}
	}
	return best
}

// Blocks reports whether moving in a straight line from one point to another
// would cross a wall.
func (s *SegmentScene) Blocks(from, to Vec2) bool {
	step := to.Sub(from)
	if step.X == 0 && step.Y == 0 {
		return false
	}
	for _, w := range s.walls {
		t, u, ok := lineIntersect(from, step, w)
		if ok && t >= 0 && t <= 1 && u >= 0 && u <= 1 {
			return true
		}
	}
	return false
}

// Flatten returns the walls as x1,y1,x2,y2 quadruples for device upload.
func (s *SegmentScene) Flatten() []float32 {
	out := make([]float32, 0, len(s.walls)*4)
	for _, w := range s.walls {
		out = append(out, float32(w.A.X), float32(w.A.Y), float32(w.B.X), float32(w.B.Y))
	}
	return out
}

// raySegment returns the distance along dir at which the ray from origin
// meets w. Hits at or behind the origin do not count.
func raySegment(origin, dir Vec2, w Segment) (float64, bool) {
	t, u, ok := lineIntersect(origin, dir, w)
	if !ok || t <= 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// lineIntersect solves origin + t*dir = w.A + u*(w.B-w.A). ok is false for
// parallel lines.
func lineIntersect(origin, dir Vec2, w Segment) (t, u float64, ok bool) {
	edge := w.B.Sub(w.A)
	den := dir.Cross(edge)
	if den == 0 {
		return 0, 0, false
	}
	rel := w.A.Sub(origin)
	t = rel.Cross(edge) / den
	u = rel.Cross(dir) / den
	return t, u, true
}
