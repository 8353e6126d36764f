package raycast

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// Backend names a CastAll implementation.
type Backend string

const (
	BackendCPU    Backend = "cpu"
	BackendOpenCL Backend = "opencl"
	// BackendAuto prefers OpenCL and falls back to the CPU.
	BackendAuto Backend = "auto"
)

// ErrBackendUnavailable is returned when a backend cannot run on this build
// or machine.
var ErrBackendUnavailable = errors.New("compute backend unavailable")

// Caster evaluates every ray of a frame in one batch. Implementations return
// exactly view.Rays() results ordered left to right, and never a partially
// filled slice.
type Caster interface {
	CastAll(ctx context.Context, view ViewInput) ([]RayResult, error)
	Name() string
	Close() error
}

// Options configures NewCaster.
type Options struct {
	Backend    Backend
	Workers    int
	Projection Projection
	Logger     *log.Logger
}

// ParseBackend validates a backend name from config or flags.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(name); b {
	case BackendCPU, BackendOpenCL, BackendAuto:
		return b, nil
	case "":
		return BackendAuto, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want cpu, opencl or auto)", name)
	}
}

// NewCaster builds the requested backend for scene. With BackendAuto an
// OpenCL failure is logged and the CPU caster is used instead; with
// BackendOpenCL it is returned to the caller.
func NewCaster(scene *SegmentScene, opts Options) (Caster, error) {
	if err := opts.Projection.Validate(); err != nil {
		return nil, fmt.Errorf("projection: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch opts.Backend {
	case BackendCPU:
		return NewCPUCaster(scene, opts.Projection, opts.Workers), nil
	case BackendOpenCL:
		c, err := newOpenCLCaster(scene, opts.Projection)
		if err != nil {
			return nil, fmt.Errorf("OpenCL initialization failed: %w", err)
		}
		logger.Info("OpenCL caster enabled", "device", c.DeviceName())
		return c, nil
	case BackendAuto, "":
		c, err := newOpenCLCaster(scene, opts.Projection)
		if err == nil {
			logger.Info("OpenCL caster enabled", "device", c.DeviceName())
			return c, nil
		}
		logger.Warn("OpenCL unavailable, using CPU caster", "err", err, "workers", opts.Workers)
		return NewCPUCaster(scene, opts.Projection, opts.Workers), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

// ValidateView reports records no caster can evaluate.
func ValidateView(view ViewInput) error {
	rays := float64(view.RayCount)
	switch {
	case !(rays >= 1) || rays != math.Trunc(rays):
		return fmt.Errorf("ray count must be a positive integer, got %v", view.RayCount)
	case !(view.FieldOfView > 0) || float64(view.FieldOfView) >= math.Pi:
		return fmt.Errorf("field of view must be in (0, pi), got %v", view.FieldOfView)
	case !(view.AngleStep > 0):
		return fmt.Errorf("angle step must be positive, got %v", view.AngleStep)
	case view.ViewportWidth <= 0 || view.ViewportHeight <= 0:
		return fmt.Errorf("viewport must be positive, got %dx%d", view.ViewportWidth, view.ViewportHeight)
	}
	return nil
}
