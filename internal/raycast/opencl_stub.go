//go:build !opencl

package raycast

import (
	"context"
	"fmt"
)

type openCLCaster struct{}

func newOpenCLCaster(_ *SegmentScene, _ Projection) (*openCLCaster, error) {
	return nil, fmt.Errorf("%w: OpenCL support is not enabled; rebuild with -tags opencl", ErrBackendUnavailable)
}

func (c *openCLCaster) CastAll(context.Context, ViewInput) ([]RayResult, error) {
	return nil, fmt.Errorf("%w: OpenCL caster", ErrBackendUnavailable)
}

func (c *openCLCaster) Name() string { return "opencl" }

func (c *openCLCaster) DeviceName() string { return "" }

func (c *openCLCaster) Close() error { return nil }
