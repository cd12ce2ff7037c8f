package shapekey

import (
	"fmt"
	"sort"
)

// CleanupMode selects how Cleanup decides which moving vertices to reset.
type CleanupMode uint8

const (
	// CleanupPercentage resets the given percentage of the moving set,
	// least-moved vertices first.
	CleanupPercentage CleanupMode = iota
	// CleanupThreshold resets every moving vertex displaced at most the
	// configured distance (inclusive).
	CleanupThreshold
)

func (m CleanupMode) String() string {
	switch m {
	case CleanupPercentage:
		return "percentage"
	case CleanupThreshold:
		return "threshold"
	}
	return "unknown"
}

// CleanupConfig parameterizes Cleanup.
type CleanupConfig struct {
	Mode CleanupMode
	// Percentage of the moving set to reset, in [0,100]. Used by
	// CleanupPercentage.
	Percentage float64
	// Distance is the inclusive displacement bound below which vertices
	// are reset. Used by CleanupThreshold.
	Distance float64
}

// Cleanup resets small shape-key movements to the basis pose. Vertices
// already at basis are excluded up front: the percentage applies to the
// moving set only, so repeated runs at a fixed percentage keep shrinking
// it. Reset positions are exact basis copies, not interpolations.
//
// shape is mutated in place. With nothing moving the operation reports
// StatusNoOp and writes nothing.
func Cleanup(basis, shape PositionSet, cfg CleanupConfig) (Report, error) {
	if err := checkAligned(basis, shape); err != nil {
		return Report{}, err
	}
	switch cfg.Mode {
	case CleanupPercentage:
		if err := checkPercentage("percentage", cfg.Percentage); err != nil {
			return Report{}, err
		}
	case CleanupThreshold:
		if err := checkNonNegative("distance threshold", cfg.Distance); err != nil {
			return Report{}, err
		}
	default:
		return Report{}, &ErrParamRange{Param: "cleanup mode", Value: float64(cfg.Mode), Min: float64(CleanupPercentage), Max: float64(CleanupThreshold)}
	}

	type mover struct {
		index int
		dist  float64
	}
	var moving []mover
	for i := range shape {
		if d := Displacement(basis[i], shape[i]); d > 0 {
			moving = append(moving, mover{index: i, dist: d})
		}
	}
	if len(moving) == 0 {
		return Report{Status: StatusNoOp, Message: "no vertices to clean - all are at basis"}, nil
	}
	// Least movement first. The sort must be stable so equal distances
	// keep index order and repeated runs are deterministic.
	sort.SliceStable(moving, func(a, b int) bool { return moving[a].dist < moving[b].dist })

	reset := 0
	switch cfg.Mode {
	case CleanupPercentage:
		n := int(float64(len(moving)) * cfg.Percentage / 100)
		for _, m := range moving[:n] {
			shape[m.index] = basis[m.index]
		}
		reset = n
	case CleanupThreshold:
		for _, m := range moving {
			if m.dist > cfg.Distance {
				break
			}
			shape[m.index] = basis[m.index]
			reset++
		}
	}
	remaining := len(moving) - reset

	var msg string
	if cfg.Mode == CleanupPercentage {
		msg = fmt.Sprintf("reset %d vertices (%v%% of %d moving) - %d still moving",
			reset, cfg.Percentage, len(moving), remaining)
	} else {
		msg = fmt.Sprintf("reset %d vertices moving at most %v - %d still moving",
			reset, cfg.Distance, remaining)
	}
	return Report{Status: StatusOK, Count: reset, Remaining: remaining, Message: msg}, nil
}
