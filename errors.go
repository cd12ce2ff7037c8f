package shapekey

import (
	"fmt"
	"math"
)

var inf = math.Inf(1)

// ErrLengthMismatch indicates basis and shape position arrays of unequal
// length. Aligned lengths are part of the host contract; the operations
// refuse to guess which array is authoritative.
type ErrLengthMismatch struct {
	Basis int
	Shape int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("basis/shape length mismatch: %d != %d", e.Basis, e.Shape)
}

// ErrParamRange indicates a parameter outside its allowed range.
type ErrParamRange struct {
	Param    string
	Value    float64
	Min, Max float64
}

func (e *ErrParamRange) Error() string {
	return fmt.Sprintf("%s = %v outside [%v, %v]", e.Param, e.Value, e.Min, e.Max)
}

// ErrPackedLength indicates a packed position buffer whose length is not
// a multiple of three floats.
type ErrPackedLength struct {
	Len int
}

func (e *ErrPackedLength) Error() string {
	return fmt.Sprintf("packed position buffer length %d is not a multiple of 3", e.Len)
}

// checkAligned validates the index alignment invariant before any write.
func checkAligned(basis, shape PositionSet) error {
	if len(basis) != len(shape) {
		return &ErrLengthMismatch{Basis: len(basis), Shape: len(shape)}
	}
	return nil
}

func checkPercentage(name string, v float64) error {
	if v < 0 || v > 100 {
		return &ErrParamRange{Param: name, Value: v, Min: 0, Max: 100}
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if v < 0 {
		return &ErrParamRange{Param: name, Value: v, Min: 0, Max: inf}
	}
	return nil
}
