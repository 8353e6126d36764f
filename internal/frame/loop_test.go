package frame

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"raycaster/internal/player"
	"raycaster/internal/raycast"
)

// flakyCaster fails on the frames listed in fail and records the view it
// was given.
type flakyCaster struct {
	inner raycast.Caster
	calls int
	fail  map[int]bool
	last  raycast.ViewInput
}

func (f *flakyCaster) CastAll(ctx context.Context, view raycast.ViewInput) ([]raycast.RayResult, error) {
	f.calls++
	f.last = view
	if f.fail[f.calls] {
		return nil, errors.New("device lost")
	}
	return f.inner.CastAll(ctx, view)
}

func (f *flakyCaster) Name() string { return "flaky" }
func (f *flakyCaster) Close() error { return nil }

func newLoop(t *testing.T, fail map[int]bool) (*Loop, *flakyCaster) {
	t.Helper()
	scene, err := raycast.NewSegmentScene([]raycast.Segment{
		{A: raycast.Vec2{X: 300, Y: -1000}, B: raycast.Vec2{X: 300, Y: 1000}},
	}, 2000)
	if err != nil {
		t.Fatalf("NewSegmentScene: %v", err)
	}
	state, err := player.NewViewState(raycast.Vec2{}, 0, math.Pi/3, 16, 1200, 800)
	if err != nil {
		t.Fatalf("NewViewState: %v", err)
	}
	fc := &flakyCaster{inner: raycast.NewCPUCaster(scene, raycast.DefaultProjection, 1), fail: fail}
	return NewLoop(player.NewController(state), fc, log.New(io.Discard)), fc
}

func TestStepAdvancesThenCasts(t *testing.T) {
	l, fc := newLoop(t, nil)
	if err := l.Step(context.Background(), 0.1, player.Intent{Forward: true}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if fc.last.PosX != 20 {
		t.Fatalf("caster saw pos x %v, want the advanced position 20", fc.last.PosX)
	}
	if got := len(l.Results()); got != 16 {
		t.Fatalf("results = %d, want 16", got)
	}
	if s := l.State(); math.Abs(s.Position.X-20) > 1e-9 {
		t.Fatalf("state = %+v", s)
	}
}

func TestStepKeepsPreviousFrameOnError(t *testing.T) {
	l, _ := newLoop(t, map[int]bool{2: true})
	ctx := context.Background()
	if err := l.Step(ctx, 0.1, player.Intent{}); err != nil {
		t.Fatalf("first Step: %v", err)
	}
	first := l.Results()

	if err := l.Step(ctx, 0.1, player.Intent{Forward: true}); err == nil {
		t.Fatal("expected error from failing frame")
	}
	if got := l.Results(); &got[0] != &first[0] {
		t.Fatal("failed frame replaced the published results")
	}
	st := l.Stats()
	if st.Frames != 2 || st.Skipped != 1 {
		t.Fatalf("stats = %+v", st)
	}

	if err := l.Step(ctx, 0.1, player.Intent{}); err != nil {
		t.Fatalf("third Step: %v", err)
	}
	// The player is now 40 units closer, so the wall is taller.
	if l.Results()[8].Height <= first[8].Height {
		t.Fatalf("height %v not larger than %v after moving closer", l.Results()[8].Height, first[8].Height)
	}
	if l.CasterName() != "flaky" {
		t.Fatalf("CasterName = %q", l.CasterName())
	}
}
