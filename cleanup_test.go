package shapekey_test

import (
	"errors"
	"testing"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
)

func TestCleanupPercentage(t *testing.T) {
	basis, shape := fixture()
	// Moving set is vertices 1..3 (d = 1, 2, 3). 50% of 3 floors to 1:
	// only the least-moved vertex resets.
	rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:       shapekey.CleanupPercentage,
		Percentage: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 1 {
		t.Errorf("reset %d vertices, want 1", rep.Count)
	}
	if rep.Remaining != 2 {
		t.Errorf("remaining %d, want 2", rep.Remaining)
	}
	if !vecEqual(shape[1], basis[1]) {
		t.Errorf("vertex 1 at %v, want exact basis", shape[1])
	}
	if shape[2].X != 2 || shape[3].X != 3 {
		t.Errorf("vertices 2 and 3 must be untouched, got %v %v", shape[2], shape[3])
	}
}

func TestCleanupPercentageFloor(t *testing.T) {
	// floor, not round: 3 movers at 49% is still 1 reset; at 99% it is 2.
	for _, tc := range []struct {
		percentage float64
		want       int
	}{
		{0, 0},
		{33, 0},
		{34, 1},
		{49, 1},
		{99, 2},
		{100, 3},
	} {
		basis, shape := fixture()
		rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
			Mode:       shapekey.CleanupPercentage,
			Percentage: tc.percentage,
		})
		if err != nil {
			t.Fatal(err)
		}
		if rep.Count != tc.want {
			t.Errorf("percentage %g reset %d, want %d", tc.percentage, rep.Count, tc.want)
		}
	}
}

func TestCleanupThreshold(t *testing.T) {
	basis, shape := fixture()
	rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:     shapekey.CleanupThreshold,
		Distance: 1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 1 || rep.Remaining != 2 {
		t.Errorf("reset/remaining = %d/%d, want 1/2", rep.Count, rep.Remaining)
	}
	if !vecEqual(shape[1], basis[1]) {
		t.Errorf("vertex 1 at %v, want exact basis", shape[1])
	}
}

func TestCleanupThresholdInclusive(t *testing.T) {
	basis, shape := fixture()
	// The bound is inclusive: a vertex moving exactly the threshold
	// distance resets.
	rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:     shapekey.CleanupThreshold,
		Distance: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 2 {
		t.Errorf("reset %d vertices, want 2", rep.Count)
	}
	if !vecEqual(shape[2], basis[2]) {
		t.Errorf("vertex 2 moved exactly the threshold and must reset, got %v", shape[2])
	}
}

func TestCleanupStableTies(t *testing.T) {
	basis := shapekey.PositionSet{{}, {}, {}}
	shape := shapekey.PositionSet{
		{X: 1}, // ties with vertex 1
		{Y: 1},
		{X: 2},
	}
	// One reset out of three movers: ties keep index order, so vertex 0
	// goes first every run.
	rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:       shapekey.CleanupPercentage,
		Percentage: 34,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 1 {
		t.Fatalf("reset %d vertices, want 1", rep.Count)
	}
	if !vecEqual(shape[0], basis[0]) {
		t.Error("tie broken against index order: vertex 0 not reset")
	}
	if shape[1].Y != 1 {
		t.Error("tie broken against index order: vertex 1 reset")
	}
}

func TestCleanupConvergence(t *testing.T) {
	basis, shape := fixture()
	cfg := shapekey.CleanupConfig{Mode: shapekey.CleanupPercentage, Percentage: 50}
	prev := len(shape) + 1
	remaining := -1
	for i := 0; i < 10; i++ {
		rep, err := shapekey.Cleanup(basis, shape, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Status == shapekey.StatusNoOp {
			break
		}
		moving := rep.Remaining + rep.Count
		if moving > prev {
			t.Fatalf("iteration %d: moving set grew from %d to %d", i, prev, moving)
		}
		prev = moving
		remaining = rep.Remaining
		if rep.Count == 0 {
			break
		}
	}
	// floor(M*0.5) stalls once M hits 1; that vertex stays moving.
	if remaining != 1 {
		t.Errorf("moving set settled at %d, want 1", remaining)
	}
}

func TestCleanupNoOp(t *testing.T) {
	basis := shapekey.PositionSet{{X: 1}, {Y: 1}}
	shape := basis.Clone()
	rep, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:       shapekey.CleanupPercentage,
		Percentage: 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != shapekey.StatusNoOp {
		t.Errorf("status %v, want no-op", rep.Status)
	}
}

func TestCleanupErrors(t *testing.T) {
	basis, shape := fixture()
	var pr *shapekey.ErrParamRange
	_, err := shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:       shapekey.CleanupPercentage,
		Percentage: -1,
	})
	if !errors.As(err, &pr) {
		t.Errorf("negative percentage: got %v, want ErrParamRange", err)
	}
	_, err = shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{
		Mode:     shapekey.CleanupThreshold,
		Distance: -0.5,
	})
	if !errors.As(err, &pr) {
		t.Errorf("negative distance: got %v, want ErrParamRange", err)
	}
	_, err = shapekey.Cleanup(basis, shape, shapekey.CleanupConfig{Mode: 99})
	if !errors.As(err, &pr) {
		t.Errorf("bad mode: got %v, want ErrParamRange", err)
	}
}
