// Package present maps ray results to screen columns.
package present

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"raycaster/internal/raycast"
)

// Background is the clear color behind the walls.
var Background = color.RGBA{A: 0xff}

// Line is one vertical wall slice in screen space. Y0 is the top edge and
// Y1 the bottom edge; both may lie off screen for very close walls.
type Line struct {
	X     float32
	Width float32
	Y0    float32
	Y1    float32
	Color color.RGBA
}

// Column maps result i of rays to its screen line: column x is
// i*(width/rays), the span is centered vertically and Height pixels tall, and
// the color is gray shade*255 at full opacity.
func Column(i int, r raycast.RayResult, width, height, rays int) Line {
	colWidth := float32(width) / float32(rays)
	mid := float32(height) * 0.5
	h := r.Height
	if h < 0 || math.IsNaN(float64(h)) {
		h = 0
	}
	g := Gray(r.Shade)
	return Line{
		X:     float32(i) * colWidth,
		Width: colWidth,
		Y0:    mid - h*0.5,
		Y1:    mid + h*0.5,
		Color: color.RGBA{R: g, G: g, B: g, A: 0xff},
	}
}

// Gray converts a shade in [0,1] to an 8-bit intensity. Values outside the
// range are clamped.
func Gray(shade float32) uint8 {
	switch {
	case !(shade > 0):
		return 0
	case shade >= 1:
		return 0xff
	}
	return uint8(shade * 255)
}

// Rasterize draws a full frame of results into dst without a window. dst is
// cleared to Background first.
func Rasterize(dst *image.RGBA, results []raycast.RayResult) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(Background), image.Point{}, draw.Src)
	width, height := bounds.Dx(), bounds.Dy()
	rays := len(results)
	for i, r := range results {
		line := Column(i, r, width, height, rays)
		x0 := bounds.Min.X + int(math.Floor(float64(line.X)))
		x1 := bounds.Min.X + int(math.Floor(float64(line.X+line.Width)))
		if x1 <= x0 {
			x1 = x0 + 1
		}
		y0 := bounds.Min.Y + int(math.Floor(float64(line.Y0)))
		y1 := bounds.Min.Y + int(math.Ceil(float64(line.Y1)))
		rect := image.Rect(x0, y0, x1, y1).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		draw.Draw(dst, rect, image.NewUniform(line.Color), image.Point{}, draw.Src)
	}
}
