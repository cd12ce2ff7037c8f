package shapekey

import (
	"sort"

	"github.com/SorrowfulExistence/ShapekeyTools/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// DisplacementStats summarizes how far a shape key moves a mesh. All
// figures except Total describe the moving set only; vertices already at
// basis are noise for threshold selection.
type DisplacementStats struct {
	Total  int // vertex count
	Moving int // vertices with nonzero displacement

	Min, Max float64
	Mean     float64
	Median   float64
	StdDev   float64

	// Diagonal is the basis bounding-box diagonal, for reading the other
	// figures relative to mesh size.
	Diagonal float64
}

// SummarizeDisplacement computes displacement statistics over a
// basis/shape pair, typically to pick a sensible selection or cleanup
// threshold before mutating anything.
func SummarizeDisplacement(basis, shape PositionSet) (DisplacementStats, error) {
	d, max, err := Displacements(make([]float64, 0, len(shape)), basis, shape)
	if err != nil {
		return DisplacementStats{}, err
	}
	s := DisplacementStats{Total: len(shape)}
	if len(basis) > 0 {
		bb := d3.Set(basis)
		s.Diagonal = r3.Norm(r3.Sub(bb.Max(), bb.Min()))
	}
	moving := d[:0]
	for _, di := range d {
		if di > 0 {
			moving = append(moving, di)
		}
	}
	s.Moving = len(moving)
	if s.Moving == 0 {
		return s, nil
	}
	sort.Float64s(moving)
	s.Min = moving[0]
	s.Max = max
	s.Mean = stat.Mean(moving, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, moving, nil)
	if len(moving) > 1 {
		s.StdDev = stat.StdDev(moving, nil)
	}
	return s, nil
}
