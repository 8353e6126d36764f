package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raycaster/internal/player"
)

// enableAutoWalk schedules scripted movement for a limited duration.
func (g *Game) enableAutoWalk(duration time.Duration, seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.autoPilot = player.NewAutoPilot(seed)
	g.autoDeadline = time.Now().Add(duration)
}

// intent selects either manual or scripted input. done is true once a
// scripted walk has run out.
func (g *Game) intent() (in player.Intent, done bool) {
	if g.autoPilot != nil {
		if time.Now().After(g.autoDeadline) {
			return player.Intent{}, true
		}
		return g.autoPilot.Next(), false
	}
	return g.manualIntent(), false
}

// manualIntent reads WASD and the captured cursor's horizontal motion.
func (g *Game) manualIntent() player.Intent {
	x, _ := ebiten.CursorPosition()
	turn := 0.0
	if g.cursorValid {
		turn = float64(x - g.cursorX)
	}
	g.cursorX, g.cursorValid = x, true

	return player.Intent{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW),
		Back:        ebiten.IsKeyPressed(ebiten.KeyS),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		Turn:        turn,
	}
}

// handleDebugControls processes overlay hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showMap = !g.showMap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
}
