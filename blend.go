package shapekey

import (
	"fmt"

	"github.com/SorrowfulExistence/ShapekeyTools/internal/d3"
)

// BlendVertexGroup reshapes the active shape against a painted weight
// map: every vertex moves to lerp(basis[i], shape[i], w), so a weight of
// 1 keeps the full shape-key deformation and a weight of 0 collapses the
// vertex onto basis. invert replaces each weight with 1−w. Weights are
// not clamped, matching host vertex-group semantics.
//
// shape is mutated in place. Validation happens before the first write.
func BlendVertexGroup(basis, shape PositionSet, weights WeightMap, invert bool) (Report, error) {
	if err := checkAligned(basis, shape); err != nil {
		return Report{}, err
	}
	for i := range shape {
		w := weights[i]
		if invert {
			w = 1 - w
		}
		shape[i] = d3.Lerp(basis[i], shape[i], w)
	}
	return Report{
		Status:  StatusOK,
		Count:   len(shape),
		Message: fmt.Sprintf("blended %d vertices by weight map", len(shape)),
	}, nil
}

// DistanceMode selects how displacement maps to blend weight in
// BlendByDistance.
type DistanceMode uint8

const (
	// Linear weighs vertices proportionally to how far they moved, so the
	// largest movements are pulled hardest toward basis.
	Linear DistanceMode = iota
	// Inverse weighs vertices opposite to how far they moved, tapering
	// small movements while leaving large ones mostly intact.
	Inverse
)

func (m DistanceMode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Inverse:
		return "inverse"
	}
	return "unknown"
}

// DistanceBlendConfig parameterizes BlendByDistance.
type DistanceBlendConfig struct {
	// Percentage scales the overall blend strength, in [0,100].
	Percentage float64
	Mode       DistanceMode
	// Normalize divides every displacement by the maximum observed one,
	// so the weight ramp spans the full [0,1] range regardless of how far
	// the shape key actually moves the mesh.
	Normalize bool
}

// BlendByDistance blends each vertex of the active shape toward basis by
// a weight derived from its own displacement. Note the lerp direction is
// the reverse of BlendVertexGroup: a blend weight of 1 lands the vertex
// exactly on basis and 0 leaves it untouched.
//
// shape is mutated in place. If no vertex moved at all the operation
// reports StatusNoOp and writes nothing.
func BlendByDistance(basis, shape PositionSet, cfg DistanceBlendConfig) (Report, error) {
	if err := checkAligned(basis, shape); err != nil {
		return Report{}, err
	}
	if err := checkPercentage("percentage", cfg.Percentage); err != nil {
		return Report{}, err
	}
	if cfg.Mode != Linear && cfg.Mode != Inverse {
		return Report{}, &ErrParamRange{Param: "distance mode", Value: float64(cfg.Mode), Min: float64(Linear), Max: float64(Inverse)}
	}
	d, max, err := Displacements(make([]float64, 0, len(shape)), basis, shape)
	if err != nil {
		return Report{}, err
	}
	if max == 0 {
		return Report{Status: StatusNoOp, Message: "no vertices moved by the active shape key"}, nil
	}
	scale := cfg.Percentage / 100
	for i := range shape {
		w := d[i]
		if cfg.Normalize {
			w /= max
		}
		if cfg.Mode == Inverse {
			w = 1 - w
		}
		shape[i] = d3.Lerp(shape[i], basis[i], w*scale)
	}
	return Report{
		Status:  StatusOK,
		Count:   len(shape),
		Message: fmt.Sprintf("blended toward basis at %v%% (%s)", cfg.Percentage, cfg.Mode),
	}, nil
}
