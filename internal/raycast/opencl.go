//go:build opencl

package raycast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

type openCLCaster struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	viewBuf    *cl.MemObject
	wallBuf    *cl.MemObject
	resultBuf  *cl.MemObject
	resultCap  int
	wallCount  int
	deviceName string
	scratch    []byte
}

func newOpenCLCaster(scene *SegmentScene, projection Projection) (*openCLCaster, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	c := &openCLCaster{deviceName: device.Name()}
	if c.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if c.queue, err = c.context.CreateCommandQueue(device, 0); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if c.program, err = c.context.CreateProgramWithSource([]string{rayKernelSource}); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := c.program.BuildProgram([]*cl.Device{device}, kernelBuildOptions()); err != nil {
		c.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if c.kernel, err = c.program.CreateKernel("cast_rays"); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	if c.viewBuf, err = c.context.CreateEmptyBuffer(cl.MemReadOnly, ViewInputSize); err != nil {
		c.Close()
		return nil, fmt.Errorf("allocating view buffer: %w", err)
	}

	walls := scene.Flatten()
	c.wallCount = len(walls) / 4
	if len(walls) == 0 {
		// Zero-sized buffers are invalid; the kernel never reads this one.
		walls = make([]float32, 4)
	}
	byteLen := len(walls) * int(unsafe.Sizeof(float32(0)))
	if c.wallBuf, err = c.context.CreateEmptyBuffer(cl.MemReadOnly, byteLen); err != nil {
		c.Close()
		return nil, fmt.Errorf("allocating wall buffer: %w", err)
	}
	if _, err := c.queue.EnqueueWriteBufferFloat32(c.wallBuf, true, 0, walls, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("writing wall buffer: %w", err)
	}

	if err := c.kernel.SetArgs(
		c.viewBuf,
		c.wallBuf,
		int32(c.wallCount),
		float32(scene.MaxDistance()),
		float32(projection.WallHeight),
		float32(projection.FogDistance),
		float32(projection.Epsilon),
	); err != nil {
		c.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	return c, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureResultBuffer grows the output buffer to hold rays records and rebinds
// it to the kernel.
func (c *openCLCaster) ensureResultBuffer(rays int) error {
	if rays <= c.resultCap && c.resultBuf != nil {
		return nil
	}
	if c.resultBuf != nil {
		c.resultBuf.Release()
		c.resultBuf = nil
	}
	buf, err := c.context.CreateEmptyBuffer(cl.MemWriteOnly, rays*RayResultSize)
	if err != nil {
		return fmt.Errorf("allocating result buffer: %w", err)
	}
	if err := c.kernel.SetArgBuffer(7, buf); err != nil {
		buf.Release()
		return fmt.Errorf("binding result buffer: %w", err)
	}
	c.resultBuf = buf
	c.resultCap = rays
	return nil
}

// CastAll uploads the encoded input record, dispatches one work item per ray
// and blocks on the result read. The read is the only synchronization point, so
// results are never observed before the dispatch completes.
func (c *openCLCaster) CastAll(ctx context.Context, view ViewInput) ([]RayResult, error) {
	if err := ValidateView(view); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := view.Rays()
	if err := c.ensureResultBuffer(n); err != nil {
		return nil, err
	}
	encoded, err := view.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if _, err := c.queue.EnqueueWriteBuffer(c.viewBuf, true, 0, len(encoded), unsafe.Pointer(&encoded[0]), nil); err != nil {
		return nil, fmt.Errorf("writing view buffer: %w", err)
	}
	if _, err := c.queue.EnqueueNDRangeKernel(c.kernel, nil, []int{n}, nil, nil); err != nil {
		return nil, fmt.Errorf("enqueueing kernel: %w", err)
	}
	size := n * RayResultSize
	if cap(c.scratch) < size {
		c.scratch = make([]byte, size)
	}
	c.scratch = c.scratch[:size]
	if _, err := c.queue.EnqueueReadBuffer(c.resultBuf, true, 0, size, unsafe.Pointer(&c.scratch[0]), nil); err != nil {
		return nil, fmt.Errorf("reading result buffer: %w", err)
	}
	return DecodeResults(c.scratch)
}

func (c *openCLCaster) Name() string { return "opencl" }

func (c *openCLCaster) DeviceName() string { return c.deviceName }

func (c *openCLCaster) Close() error {
	if c.resultBuf != nil {
		c.resultBuf.Release()
		c.resultBuf = nil
	}
	if c.wallBuf != nil {
		c.wallBuf.Release()
		c.wallBuf = nil
	}
	if c.viewBuf != nil {
		c.viewBuf.Release()
		c.viewBuf = nil
	}
	if c.kernel != nil {
		c.kernel.Release()
		c.kernel = nil
	}
	if c.program != nil {
		c.program.Release()
		c.program = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.context != nil {
		c.context.Release()
		c.context = nil
	}
	return nil
}
