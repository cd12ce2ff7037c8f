package shapekey

// Host interop for packed float32 position buffers. 3D hosts expose bulk
// vertex access as flat x,y,z float32 triples; these routines convert to
// and from PositionSet and compute displacements directly on the packed
// layout without a float64 round trip.

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnpackPositions converts a packed x,y,z buffer into a PositionSet.
func UnpackPositions(buf []float32) (PositionSet, error) {
	if len(buf)%3 != 0 {
		return nil, &ErrPackedLength{Len: len(buf)}
	}
	p := make(PositionSet, len(buf)/3)
	for i := range p {
		p[i] = r3.Vec{
			X: float64(buf[3*i]),
			Y: float64(buf[3*i+1]),
			Z: float64(buf[3*i+2]),
		}
	}
	return p, nil
}

// PackPositions writes src into the packed buffer dst, which must hold
// exactly 3 floats per vertex.
func PackPositions(dst []float32, src PositionSet) error {
	if len(dst) != 3*len(src) {
		return &ErrPackedLength{Len: len(dst)}
	}
	for i, v := range src {
		dst[3*i] = float32(v.X)
		dst[3*i+1] = float32(v.Y)
		dst[3*i+2] = float32(v.Z)
	}
	return nil
}

// PackedDisplacements appends the per-vertex basis→shape distances of two
// packed buffers to dst and returns it. The buffers must describe the
// same number of vertices.
func PackedDisplacements(dst, basis, shape []float32) ([]float32, error) {
	if len(basis)%3 != 0 {
		return nil, &ErrPackedLength{Len: len(basis)}
	}
	if len(shape)%3 != 0 {
		return nil, &ErrPackedLength{Len: len(shape)}
	}
	if len(basis) != len(shape) {
		return nil, &ErrLengthMismatch{Basis: len(basis) / 3, Shape: len(shape) / 3}
	}
	for i := 0; i < len(basis); i += 3 {
		dx := shape[i] - basis[i]
		dy := shape[i+1] - basis[i+1]
		dz := shape[i+2] - basis[i+2]
		dst = append(dst, math32.Sqrt(dx*dx+dy*dy+dz*dz))
	}
	return dst, nil
}
