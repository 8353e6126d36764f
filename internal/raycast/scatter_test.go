package raycast

import (
	"math/rand"
	"testing"
)

func TestScatterWallsStaysInBoundsAndClear(t *testing.T) {
	s := Scatter{
		Count:     40,
		MinLength: 20,
		MaxLength: 300,
		Margin:    10,
		Keep:      Vec2{X: 600, Y: 400},
		Clearance: 80,
	}
	walls := ScatterWalls(rand.New(rand.NewSource(3)), Vec2{}, Vec2{X: 1200, Y: 800}, s)
	if len(walls) == 0 || len(walls) > s.Count {
		t.Fatalf("got %d walls, want 1..%d", len(walls), s.Count)
	}
	for i, w := range walls {
		for _, p := range []Vec2{w.A, w.B} {
			if p.X < 10 || p.X > 1190 || p.Y < 10 || p.Y > 790 {
				t.Fatalf("wall %d endpoint %+v outside inset bounds", i, p)
			}
		}
		if w.A.X != w.B.X && w.A.Y != w.B.Y {
			t.Fatalf("wall %d is not axis aligned: %+v", i, w)
		}
		if d := distanceToSegment(s.Keep, w); d < s.Clearance {
			t.Fatalf("wall %d is %v from the kept point", i, d)
		}
	}
}

func TestScatterWallsDeterministic(t *testing.T) {
	s := Scatter{Count: 8, MinLength: 50, MaxLength: 200}
	a := ScatterWalls(rand.New(rand.NewSource(9)), Vec2{}, Vec2{X: 500, Y: 500}, s)
	b := ScatterWalls(rand.New(rand.NewSource(9)), Vec2{}, Vec2{X: 500, Y: 500}, s)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("wall %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestScatterWallsDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := ScatterWalls(rng, Vec2{}, Vec2{X: 10, Y: 10}, Scatter{Count: 3, MinLength: 1, MaxLength: 2, Margin: 6}); got != nil {
		t.Fatalf("margin larger than bounds produced %v", got)
	}
	// Clearance covering the whole box rejects every candidate.
	if got := ScatterWalls(rng, Vec2{}, Vec2{X: 100, Y: 100}, Scatter{Count: 3, MinLength: 1, MaxLength: 2, Keep: Vec2{X: 50, Y: 50}, Clearance: 1000}); len(got) != 0 {
		t.Fatalf("expected no walls, got %v", got)
	}
}

func TestScatterValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Scatter
		ok   bool
	}{
		{"disabled", Scatter{}, true},
		{"valid", Scatter{Count: 2, MinLength: 1, MaxLength: 1}, true},
		{"negative count", Scatter{Count: -1}, false},
		{"zero min", Scatter{Count: 2, MaxLength: 5}, false},
		{"max below min", Scatter{Count: 2, MinLength: 5, MaxLength: 4}, false},
		{"negative clearance", Scatter{Count: 2, MinLength: 1, MaxLength: 2, Clearance: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSceneBounds(t *testing.T) {
	empty, _ := NewSegmentScene(nil, 10)
	if _, _, ok := empty.Bounds(); ok {
		t.Fatal("empty scene reported bounds")
	}
	scene, err := NewSegmentScene([]Segment{
		{A: Vec2{X: -5, Y: 2}, B: Vec2{X: 3, Y: 9}},
		{A: Vec2{X: 7, Y: -1}, B: Vec2{X: 0, Y: 0}},
	}, 10)
	if err != nil {
		t.Fatalf("NewSegmentScene: %v", err)
	}
	min, max, ok := scene.Bounds()
	if !ok || min != (Vec2{X: -5, Y: -1}) || max != (Vec2{X: 7, Y: 9}) {
		t.Fatalf("Bounds = %+v %+v %v", min, max, ok)
	}
}
