package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector routines shared by the shape-key operations.

// Lerp linearly interpolates between a and b. t is not clamped. Both
// endpoints are exact: t=0 returns a and t=1 returns b bit for bit,
// which the cleanup and blend operations rely on.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	s := 1 - t
	return r3.Vec{
		X: s*a.X + t*b.X,
		Y: s*a.Y + t*b.Y,
		Z: s*a.Z + t*b.Z,
	}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

type Set []r3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r3.Vec {
	min := a[0]
	for _, v := range a[1:] {
		min = MinElem(min, v)
	}
	return min
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r3.Vec {
	max := a[0]
	for _, v := range a[1:] {
		max = MaxElem(max, v)
	}
	return max
}
