package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/internal/present"
	"raycaster/internal/raycast"
)

const (
	minimapSize    = 240
	minimapMargin  = 8
	minimapRays    = 24
	minimapPlayerR = 3
)

var (
	minimapBackground = color.RGBA{0x10, 0x10, 0x18, 0xc0}
	minimapWall       = color.RGBA{30, 40, 80, 255}
	minimapRay        = color.RGBA{0xff, 0xff, 0xff, 0x30}
	minimapPlayer     = color.RGBA{255, 0, 0, 255}
)

// Draw renders the last complete frame of columns and optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(present.Background)

	results := g.loop.Results()
	w, h := g.cfg.Window.Width, g.cfg.Window.Height
	for i, r := range results {
		line := present.Column(i, r, w, h, len(results))
		if line.Y1 <= line.Y0 {
			continue
		}
		vector.DrawFilledRect(screen, line.X, line.Y0, line.Width, line.Y1-line.Y0, line.Color, false)
	}

	if g.showMap {
		g.drawMinimap(screen)
	}
	if g.showDebug {
		st := g.loop.Stats()
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nCaster: %s\nCast: %.2f ms\nFrames: %d (skipped %d)",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.loop.CasterName(),
			st.CastTime.Seconds()*1000, st.Frames, st.Skipped)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// drawMinimap renders a top-down view of the walls, the player and a sparse
// version of the ray fan in the top-right corner.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	lo, hi, ok := g.scene.Bounds()
	if !ok {
		return
	}
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if span <= 0 {
		return
	}
	scale := float32(minimapSize / span)
	ox := float32(g.cfg.Window.Width - minimapSize - minimapMargin)
	oy := float32(minimapMargin)
	toMap := func(p raycast.Vec2) (float32, float32) {
		return ox + float32(p.X-lo.X)*scale, oy + float32(p.Y-lo.Y)*scale
	}

	vector.DrawFilledRect(screen, ox, oy, minimapSize, minimapSize, minimapBackground, false)
	for _, wall := range g.scene.Walls() {
		x0, y0 := toMap(wall.A)
		x1, y1 := toMap(wall.B)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, minimapWall, false)
	}

	state := g.loop.State()
	view := raycast.NewViewInput(state.Position, state.Angle, state.FieldOfView, minimapRays, state.ViewportWidth, state.ViewportHeight)
	px, py := toMap(state.Position)
	for i := 0; i < minimapRays; i++ {
		angle := raycast.RayAngle(view, i)
		dir := raycast.Direction(angle)
		hit := state.Position.Add(dir.Scale(g.scene.Intersect(state.Position, dir)))
		hx, hy := toMap(hit)
		vector.StrokeLine(screen, px, py, hx, hy, 1, minimapRay, false)
	}
	vector.DrawFilledCircle(screen, px, py, minimapPlayerR, minimapPlayer, false)
}
