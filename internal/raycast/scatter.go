package raycast

import (
	"errors"
	"math"
	"math/rand"
)

// Scatter describes a batch of randomly placed axis-aligned walls.
type Scatter struct {
	Count     int
	MinLength float64
	MaxLength float64

	// Walls stay at least Margin inside the bounds and never come within
	// Clearance of Keep.
	Margin    float64
	Keep      Vec2
	Clearance float64
}

// maxScatterAttempts bounds the retries spent on walls that land too close
// to Keep.
const maxScatterAttempts = 64

// Validate checks that walls can be generated.
func (s Scatter) Validate() error {
	switch {
	case s.Count < 0:
		return errors.New("scatter count must not be negative")
	case s.Count == 0:
		return nil
	case !(s.MinLength > 0):
		return errors.New("scatter min length must be positive")
	case s.MaxLength < s.MinLength:
		return errors.New("scatter max length must not be below min length")
	case s.Margin < 0 || s.Clearance < 0:
		return errors.New("scatter margin and clearance must not be negative")
	}
	return nil
}

// ScatterWalls places up to s.Count walls inside [min, max]. Each wall runs
// horizontally or vertically from a random start and is clipped to the
// inset bounds. Fewer walls are returned when the clearance rule keeps
// rejecting candidates.
func ScatterWalls(rng *rand.Rand, min, max Vec2, s Scatter) []Segment {
	lo := Vec2{X: min.X + s.Margin, Y: min.Y + s.Margin}
	hi := Vec2{X: max.X - s.Margin, Y: max.Y - s.Margin}
	if s.Count <= 0 || hi.X <= lo.X || hi.Y <= lo.Y {
		return nil
	}

	walls := make([]Segment, 0, s.Count)
	for n := 0; n < s.Count; n++ {
		for attempt := 0; attempt < maxScatterAttempts; attempt++ {
			length := s.MinLength + rng.Float64()*(s.MaxLength-s.MinLength)
			a := Vec2{
				X: lo.X + rng.Float64()*(hi.X-lo.X),
				Y: lo.Y + rng.Float64()*(hi.Y-lo.Y),
			}
			b := a
			if rng.Intn(2) == 0 {
				b.X = math.Min(a.X+length, hi.X)
			} else {
				b.Y = math.Min(a.Y+length, hi.Y)
			}
			w := Segment{A: a, B: b}
			if a == b || distanceToSegment(s.Keep, w) < s.Clearance {
				continue
			}
			walls = append(walls, w)
			break
		}
	}
	return walls
}

// Bounds returns the axis-aligned box around every wall endpoint. ok is
// false for an empty scene.
func (s *SegmentScene) Bounds() (min, max Vec2, ok bool) {
	if len(s.walls) == 0 {
		return Vec2{}, Vec2{}, false
	}
	min = Vec2{X: math.Inf(1), Y: math.Inf(1)}
	max = Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, w := range s.walls {
		for _, p := range [2]Vec2{w.A, w.B} {
			min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
			max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
		}
	}
	return min, max, true
}

func distanceToSegment(p Vec2, w Segment) float64 {
	ab := w.B.Sub(w.A)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	t := 0.0
	if lenSq > 0 {
		ap := p.Sub(w.A)
		t = math.Max(0, math.Min(1, (ap.X*ab.X+ap.Y*ab.Y)/lenSq))
	}
	d := p.Sub(w.A.Add(ab.Scale(t)))
	return math.Hypot(d.X, d.Y)
}
