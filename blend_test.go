package shapekey_test

import (
	"errors"
	"testing"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBlendVertexGroupDirection(t *testing.T) {
	basis, shape := fixture()
	orig := shape.Clone()
	weights := shapekey.WeightMap{1: 1, 2: 0.5}
	// vertex 3 is absent from the map and defaults to weight 0.
	rep, err := shapekey.BlendVertexGroup(basis, shape, weights, false)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != len(shape) {
		t.Errorf("processed %d vertices, want %d", rep.Count, len(shape))
	}
	// Weight 1 retains the full shape-key deformation, exactly.
	if !vecEqual(shape[1], orig[1]) {
		t.Errorf("weight 1 moved vertex 1 to %v, want %v", shape[1], orig[1])
	}
	// Weight 0.5 sits halfway between basis and shape.
	if want := (r3.Vec{X: 1}); !vecEqual(shape[2], want) {
		t.Errorf("weight 0.5 put vertex 2 at %v, want %v", shape[2], want)
	}
	// Weight 0 collapses the vertex onto basis, exactly.
	if !vecEqual(shape[3], basis[3]) {
		t.Errorf("weight 0 put vertex 3 at %v, want basis %v", shape[3], basis[3])
	}
}

func TestBlendVertexGroupInvert(t *testing.T) {
	basis, shape := fixture()
	orig := shape.Clone()
	weights := shapekey.WeightMap{1: 1}
	if _, err := shapekey.BlendVertexGroup(basis, shape, weights, true); err != nil {
		t.Fatal(err)
	}
	// Inverted weight 1 becomes 0: vertex 1 collapses onto basis.
	if !vecEqual(shape[1], basis[1]) {
		t.Errorf("inverted weight 1 put vertex 1 at %v, want basis", shape[1])
	}
	// Inverted missing weight becomes 1: vertex 3 keeps its deformation.
	if !vecEqual(shape[3], orig[3]) {
		t.Errorf("inverted weight 0 put vertex 3 at %v, want %v", shape[3], orig[3])
	}
}

func TestBlendVertexGroupUnclamped(t *testing.T) {
	basis := shapekey.PositionSet{{}}
	shape := shapekey.PositionSet{{X: 1}}
	// Host weights are nominally [0,1] but the blend does not clamp.
	if _, err := shapekey.BlendVertexGroup(basis, shape, shapekey.WeightMap{0: 2}, false); err != nil {
		t.Fatal(err)
	}
	if want := (r3.Vec{X: 2}); !vecEqual(shape[0], want) {
		t.Errorf("weight 2 extrapolated to %v, want %v", shape[0], want)
	}
}

func TestBlendVertexGroupLengthMismatch(t *testing.T) {
	basis, shape := fixture()
	_, err := shapekey.BlendVertexGroup(basis[:1], shape, nil, false)
	var lm *shapekey.ErrLengthMismatch
	if !errors.As(err, &lm) {
		t.Fatalf("got %v, want ErrLengthMismatch", err)
	}
}

func TestBlendByDistanceDirection(t *testing.T) {
	basis, shape := fixture()
	// Full-strength normalized linear blend: the farthest vertex gets
	// blend weight exactly 1 and must land exactly on basis.
	rep, err := shapekey.BlendByDistance(basis, shape, shapekey.DistanceBlendConfig{
		Percentage: 100,
		Mode:       shapekey.Linear,
		Normalize:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != shapekey.StatusOK {
		t.Fatalf("status %v, want ok", rep.Status)
	}
	if !vecEqual(shape[3], basis[3]) {
		t.Errorf("max-displacement vertex at %v, want exact basis %v", shape[3], basis[3])
	}
	// The others moved toward basis proportionally to d/max: vertex 1 has
	// blend weight 1/3 and ends a third of the way back.
	const tol = 1e-12
	if want := 2.0 / 3; shape[1].X < want-tol || shape[1].X > want+tol {
		t.Errorf("vertex 1 at x=%v, want %v", shape[1].X, want)
	}
}

func TestBlendByDistanceZeroPercentage(t *testing.T) {
	basis, shape := fixture()
	orig := shape.Clone()
	if _, err := shapekey.BlendByDistance(basis, shape, shapekey.DistanceBlendConfig{
		Percentage: 0,
		Mode:       shapekey.Linear,
		Normalize:  true,
	}); err != nil {
		t.Fatal(err)
	}
	for i := range shape {
		if !vecEqual(shape[i], orig[i]) {
			t.Errorf("vertex %d moved at 0%%: %v -> %v", i, orig[i], shape[i])
		}
	}
}

func TestBlendByDistanceInverse(t *testing.T) {
	basis, shape := fixture()
	orig := shape.Clone()
	if _, err := shapekey.BlendByDistance(basis, shape, shapekey.DistanceBlendConfig{
		Percentage: 100,
		Mode:       shapekey.Inverse,
		Normalize:  true,
	}); err != nil {
		t.Fatal(err)
	}
	// The farthest vertex gets inverse weight 0 and stays put.
	if !vecEqual(shape[3], orig[3]) {
		t.Errorf("max-displacement vertex moved under inverse mode: %v", shape[3])
	}
	// A smaller movement is tapered toward basis.
	if shape[1].X >= orig[1].X {
		t.Errorf("vertex 1 not tapered: %v", shape[1])
	}
}

func TestBlendByDistanceNoOp(t *testing.T) {
	basis := shapekey.PositionSet{{X: 1}, {Y: 2}}
	shape := basis.Clone()
	rep, err := shapekey.BlendByDistance(basis, shape, shapekey.DistanceBlendConfig{
		Percentage: 100,
		Mode:       shapekey.Linear,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != shapekey.StatusNoOp {
		t.Errorf("status %v, want no-op", rep.Status)
	}
	for i := range shape {
		if !vecEqual(shape[i], basis[i]) {
			t.Errorf("no-op blend mutated vertex %d", i)
		}
	}
}

func TestBlendByDistancePercentageRange(t *testing.T) {
	basis, shape := fixture()
	orig := shape.Clone()
	_, err := shapekey.BlendByDistance(basis, shape, shapekey.DistanceBlendConfig{Percentage: 101})
	var pr *shapekey.ErrParamRange
	if !errors.As(err, &pr) {
		t.Fatalf("got %v, want ErrParamRange", err)
	}
	for i := range shape {
		if !vecEqual(shape[i], orig[i]) {
			t.Fatal("failed blend mutated the shape")
		}
	}
}
