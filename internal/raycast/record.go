package raycast

import (
	"encoding/binary"
	"fmt"
)

// LayoutVersion identifies the byte layout of ViewInput and RayResult shared
// with the compute kernel. Bump it whenever a field is added, removed or moved.
const LayoutVersion = 1

// Sizes of the wire records in bytes.
const (
	ViewInputSize = 32
	RayResultSize = 8
)

// ViewInput is the per-frame input record uploaded to the caster. The kernel
// reads it by offset, so field order and widths are fixed:
//
//	0  PosX            float32
//	4  PosY            float32
//	8  Angle           float32
//	12 FieldOfView     float32
//	16 RayCount        float32
//	20 AngleStep       float32
//	24 ViewportWidth   int32
//	28 ViewportHeight  int32
type ViewInput struct {
	PosX           float32
	PosY           float32
	Angle          float32
	FieldOfView    float32
	RayCount       float32
	AngleStep      float32
	ViewportWidth  int32
	ViewportHeight int32
}

// RayResult is the per-column output record: projected wall height in pixels
// and a shade factor in [0,1].
type RayResult struct {
	Height float32
	Shade  float32
}

// NewViewInput packs view parameters into the wire record, deriving the
// angle step from the field of view and ray count.
func NewViewInput(pos Vec2, angle, fov float64, rays, width, height int) ViewInput {
	step := 0.0
	if rays > 0 {
		step = fov / float64(rays)
	}
	return ViewInput{
		PosX:           float32(pos.X),
		PosY:           float32(pos.Y),
		Angle:          float32(angle),
		FieldOfView:    float32(fov),
		RayCount:       float32(rays),
		AngleStep:      float32(step),
		ViewportWidth:  int32(width),
		ViewportHeight: int32(height),
	}
}

// Rays returns the ray count carried by the record.
func (v ViewInput) Rays() int {
	return int(v.RayCount)
}

// MarshalBinary encodes the record little-endian in kernel order, ready for
// upload.
func (v ViewInput) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ViewInputSize)
	if _, err := binary.Encode(buf, binary.LittleEndian, v); err != nil {
		return nil, fmt.Errorf("encoding view input: %w", err)
	}
	return buf, nil
}

// DecodeResults unpacks a result buffer read back from the kernel,
// RayResultSize bytes per ray in ray order.
func DecodeResults(data []byte) ([]RayResult, error) {
	if len(data)%RayResultSize != 0 {
		return nil, fmt.Errorf("ray results: %d bytes is not a multiple of %d", len(data), RayResultSize)
	}
	results := make([]RayResult, len(data)/RayResultSize)
	if _, err := binary.Decode(data, binary.LittleEndian, results); err != nil {
		return nil, fmt.Errorf("decoding ray results: %w", err)
	}
	return results, nil
}
