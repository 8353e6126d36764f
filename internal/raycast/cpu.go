package raycast

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CPUCaster evaluates rays on the host. With more than one worker the ray
// range is split into contiguous bands that run concurrently; every ray
// writes only its own slot, so the output matches the sequential loop bit for
// bit.
type CPUCaster struct {
	scene      Intersector
	projection Projection
	workers    int
}

// NewCPUCaster returns a host caster. workers <= 0 uses one worker per CPU;
// workers == 1 runs a plain loop on the calling goroutine.
func NewCPUCaster(scene Intersector, projection Projection, workers int) *CPUCaster {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUCaster{scene: scene, projection: projection, workers: workers}
}

// Name implements Caster.
func (c *CPUCaster) Name() string { return "cpu" }

// Workers reports the fan-out width.
func (c *CPUCaster) Workers() int { return c.workers }

// Close implements Caster.
func (c *CPUCaster) Close() error { return nil }

// CastAll implements Caster.
func (c *CPUCaster) CastAll(ctx context.Context, view ViewInput) ([]RayResult, error) {
	if err := ValidateView(view); err != nil {
		return nil, err
	}
	n := view.Rays()
	results := make([]RayResult, n)
	plane := PlaneDistance(view)

	if c.workers == 1 || n < 2*c.workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.castBand(view, plane, results, band{0, n})
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range splitBands(n, c.workers) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.castBand(view, plane, results, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *CPUCaster) castBand(view ViewInput, plane float64, dst []RayResult, b band) {
	for i := b.start; i < b.end; i++ {
		dst[i] = c.projection.castRay(c.scene, view, plane, i)
	}
}

// band is a half-open range of ray indices.
type band struct{ start, end int }

// splitBands divides n rays into at most workers contiguous bands.
func splitBands(n, workers int) []band {
	if workers < 1 {
		workers = 1
	}
	per := (n + workers - 1) / workers
	bands := make([]band, 0, workers)
	for start := 0; start < n; start += per {
		end := start + per
		if end > n {
			end = n
		}
		bands = append(bands, band{start, end})
	}
	return bands
}
