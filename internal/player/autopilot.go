package player

import "math/rand"

// AutoPilot produces scripted input: it walks forward in bursts and turns
// by a random amount between bursts. Used for profiling runs and benchmarks
// where nobody is at the keyboard.
type AutoPilot struct {
	rng    *rand.Rand
	frames int
	intent Intent
}

// NewAutoPilot returns a pilot whose walk is fully determined by seed.
func NewAutoPilot(seed int64) *AutoPilot {
	return &AutoPilot{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the intent for the coming frame.
func (a *AutoPilot) Next() Intent {
	if a.frames <= 0 {
		a.randomize()
	}
	a.frames--
	in := a.intent
	// Turning is applied once at the start of a burst.
	a.intent.Turn = 0
	return in
}

// randomize picks a new heading change and burst length.
func (a *AutoPilot) randomize() {
	a.intent = Intent{
		Forward: a.rng.Intn(5) != 0,
		Turn:    (a.rng.Float64()*2 - 1) * 400,
	}
	if !a.intent.Forward {
		if a.rng.Intn(2) == 0 {
			a.intent.StrafeLeft = true
		} else {
			a.intent.StrafeRight = true
		}
	}
	a.frames = 20 + a.rng.Intn(50)
}
