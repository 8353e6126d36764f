package raycast

import (
	"context"
	"math"
	"testing"
)

func castWith(t *testing.T, c Caster, view ViewInput) []RayResult {
	t.Helper()
	results, err := c.CastAll(context.Background(), view)
	if err != nil {
		t.Fatalf("CastAll: %v", err)
	}
	return results
}

func testArena() []Segment {
	return []Segment{
		{A: Vec2{0, 0}, B: Vec2{1200, 0}},
		{A: Vec2{1200, 0}, B: Vec2{1200, 800}},
		{A: Vec2{1200, 800}, B: Vec2{0, 800}},
		{A: Vec2{0, 800}, B: Vec2{0, 0}},
		{A: Vec2{320, 460}, B: Vec2{548, 530}},
		{A: Vec2{880, 560}, B: Vec2{876, 760}},
		{A: Vec2{172, 330}, B: Vec2{696, 90}},
	}
}

func TestCastAllReturnsOneResultPerRay(t *testing.T) {
	scene := wallAhead(t, 100)
	for _, rays := range []int{1, 5, 64, 1200} {
		view := NewViewInput(Vec2{}, 0, math.Pi/3, rays, 1200, 800)
		got := castWith(t, NewCPUCaster(scene, DefaultProjection, 4), view)
		if len(got) != rays {
			t.Fatalf("rays=%d: got %d results", rays, len(got))
		}
	}
}

func TestCastAllOrderIsLeftToRight(t *testing.T) {
	// The wall only covers the left half of the view (negative y is left when
	// facing +x), so lit columns must come first.
	scene, err := NewSegmentScene([]Segment{{A: Vec2{100, -1000}, B: Vec2{100, -1}}}, 2000)
	if err != nil {
		t.Fatalf("NewSegmentScene: %v", err)
	}
	view := NewViewInput(Vec2{}, 0, math.Pi/3, 10, 1200, 800)
	got := castWith(t, NewCPUCaster(scene, DefaultProjection, 1), view)
	for i := 0; i < 5; i++ {
		if got[i].Shade <= 0 {
			t.Fatalf("ray %d should hit the left wall: %+v", i, got[i])
		}
	}
	for i := 5; i < 10; i++ {
		if got[i].Shade != 0 {
			t.Fatalf("ray %d should see fog: %+v", i, got[i])
		}
	}
}

func TestRayAngleIsCenteredOnFacing(t *testing.T) {
	view := NewViewInput(Vec2{}, 1.0, math.Pi/3, 5, 1200, 800)
	if got := RayAngle(view, 2); math.Abs(got-1.0) > 1e-6 {
		t.Fatalf("center ray angle = %v, want 1.0", got)
	}
	for i := 1; i < 5; i++ {
		if RayAngle(view, i) <= RayAngle(view, i-1) {
			t.Fatalf("ray angles not increasing at %d", i)
		}
	}
	if got := RayAngle(view, 0) - 1.0; math.Abs(got+math.Pi/3/2-math.Pi/3/10) > 1e-6 {
		t.Fatalf("first ray offset = %v", got)
	}
}

func TestCastAllDeterministic(t *testing.T) {
	scene, err := NewSegmentScene(testArena(), 2000)
	if err != nil {
		t.Fatalf("NewSegmentScene: %v", err)
	}
	view := NewViewInput(Vec2{X: 600, Y: 400}, 0.7, math.Pi/3, 1200, 1200, 800)
	c := NewCPUCaster(scene, DefaultProjection, 0)
	a := castWith(t, c, view)
	b := castWith(t, c, view)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ray %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSequentialAndFanOutMatch(t *testing.T) {
	scene, err := NewSegmentScene(testArena(), 2000)
	if err != nil {
		t.Fatalf("NewSegmentScene: %v", err)
	}
	view := NewViewInput(Vec2{X: 250, Y: 520}, -2.1, math.Pi/3, 1200, 1200, 800)
	seq := castWith(t, NewCPUCaster(scene, DefaultProjection, 1), view)
	for _, workers := range []int{2, 3, 7, 16} {
		par := castWith(t, NewCPUCaster(scene, DefaultProjection, workers), view)
		for i := range seq {
			if seq[i] != par[i] {
				t.Fatalf("workers=%d ray %d: %+v vs sequential %+v", workers, i, par[i], seq[i])
			}
		}
	}
}

func TestHeightAndShadeMonotonic(t *testing.T) {
	view := NewViewInput(Vec2{}, 0, math.Pi/3, 1, 1200, 800)
	prev := RayResult{Height: float32(math.Inf(1)), Shade: 2}
	for d := 0.25; d < 1200; d *= 1.5 {
		got := castWith(t, NewCPUCaster(wallAhead(t, d), DefaultProjection, 1), view)[0]
		if got.Height > prev.Height {
			t.Fatalf("height increased at distance %v: %v > %v", d, got.Height, prev.Height)
		}
		if got.Shade > prev.Shade {
			t.Fatalf("shade increased at distance %v: %v > %v", d, got.Shade, prev.Shade)
		}
		if got.Height < 0 || got.Shade < 0 || got.Shade > 1 {
			t.Fatalf("out of range at distance %v: %+v", d, got)
		}
		prev = got
	}
}

func TestEpsilonAndFogBoundaries(t *testing.T) {
	view := NewViewInput(Vec2{}, 0, math.Pi/3, 1, 1200, 800)
	plane := PlaneDistance(view)
	want := float32(DefaultProjection.MaxHeight(plane))
	for _, d := range []float64{0.5, DefaultProjection.Epsilon} {
		got := castWith(t, NewCPUCaster(wallAhead(t, d), DefaultProjection, 1), view)[0]
		if got.Height != want {
			t.Fatalf("distance %v: height %v, want max %v", d, got.Height, want)
		}
		if math.IsInf(float64(got.Height), 0) || math.IsNaN(float64(got.Height)) {
			t.Fatalf("distance %v: degenerate height", d)
		}
	}
	for _, d := range []float64{DefaultProjection.FogDistance, DefaultProjection.FogDistance + 50} {
		got := castWith(t, NewCPUCaster(wallAhead(t, d), DefaultProjection, 1), view)[0]
		if got.Shade != 0 {
			t.Fatalf("distance %v: shade %v, want 0", d, got.Shade)
		}
	}
	for _, d := range []float64{0, -1, math.NaN()} {
		if h := DefaultProjection.Height(plane, d); math.IsInf(h, 0) || math.IsNaN(h) || h != DefaultProjection.MaxHeight(plane) {
			t.Fatalf("Height(%v) = %v", d, h)
		}
	}
}

func TestFisheyeCorrectionFlattensWall(t *testing.T) {
	scene := wallAhead(t, 300)
	view := NewViewInput(Vec2{}, 0, math.Pi/3, 41, 1200, 800)
	got := castWith(t, NewCPUCaster(scene, DefaultProjection, 1), view)
	for i := range got {
		if math.Abs(float64(got[i].Height-got[20].Height)) > 1e-3 {
			t.Fatalf("ray %d height %v differs from center %v", i, got[i].Height, got[20].Height)
		}
	}
}

func TestFiveRayScenario(t *testing.T) {
	scene := wallAhead(t, 100)
	view := NewViewInput(Vec2{}, 0, 60*math.Pi/180, 5, 1200, 800)
	got := castWith(t, NewCPUCaster(scene, DefaultProjection, 1), view)
	if len(got) != 5 {
		t.Fatalf("got %d results", len(got))
	}
	center := got[2]
	for i, r := range got {
		h := float64(r.Height)
		if math.IsInf(h, 0) || math.IsNaN(h) || h <= 0 {
			t.Fatalf("ray %d height %v not finite and positive", i, h)
		}
		if math.Abs(h-float64(center.Height)) > 1e-3 {
			t.Fatalf("ray %d height %v, center %v", i, h, center.Height)
		}
	}
	wantCenter := DefaultProjection.Height(PlaneDistance(view), 100)
	if math.Abs(float64(center.Height)-wantCenter) > 1e-2 {
		t.Fatalf("center height %v, want %v", center.Height, wantCenter)
	}
	// Without correction the edge rays would report the longer slant distance.
	slant := scene.Intersect(Vec2{}, Direction(RayAngle(view, 0)))
	if slant <= 100 {
		t.Fatalf("edge slant distance %v should exceed 100", slant)
	}
}

func TestCastAllRejectsBadView(t *testing.T) {
	c := NewCPUCaster(wallAhead(t, 100), DefaultProjection, 1)
	bad := []ViewInput{
		NewViewInput(Vec2{}, 0, math.Pi/3, 0, 1200, 800),
		NewViewInput(Vec2{}, 0, 0, 10, 1200, 800),
		NewViewInput(Vec2{}, 0, math.Pi, 10, 1200, 800),
		NewViewInput(Vec2{}, 0, math.Pi/3, 10, 0, 800),
	}
	for i, v := range bad {
		if _, err := c.CastAll(context.Background(), v); err == nil {
			t.Fatalf("view %d: expected error", i)
		}
	}
}

func TestCastAllHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	view := NewViewInput(Vec2{}, 0, math.Pi/3, 64, 1200, 800)
	for _, workers := range []int{1, 4} {
		res, err := NewCPUCaster(wallAhead(t, 100), DefaultProjection, workers).CastAll(ctx, view)
		if err == nil || res != nil {
			t.Fatalf("workers=%d: want error and no partial results, got %v, %d results", workers, err, len(res))
		}
	}
}

func TestSplitBands(t *testing.T) {
	tests := []struct {
		n, workers int
		want       int
	}{
		{10, 3, 3},
		{10, 1, 1},
		{1200, 8, 8},
		{5, 10, 5},
	}
	for _, tt := range tests {
		bands := splitBands(tt.n, tt.workers)
		if len(bands) != tt.want {
			t.Fatalf("splitBands(%d,%d) = %d bands, want %d", tt.n, tt.workers, len(bands), tt.want)
		}
		next := 0
		for _, b := range bands {
			if b.start != next || b.end <= b.start {
				t.Fatalf("splitBands(%d,%d) gap at %+v", tt.n, tt.workers, b)
			}
			next = b.end
		}
		if next != tt.n {
			t.Fatalf("splitBands(%d,%d) covers %d", tt.n, tt.workers, next)
		}
	}
}
