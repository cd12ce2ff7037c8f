package shapekey

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Defaults matching the parameter defaults of the original tool.
const (
	// DefaultThreshold is the minimum distance a vertex must move to count
	// as affected by the active shape key.
	DefaultThreshold = 0.0001
	// DefaultCleanupPercentage is the share of the moving set reset by a
	// percentage-mode cleanup.
	DefaultCleanupPercentage = 10.0
	// DefaultCleanupDistance is the inclusive distance bound of a
	// threshold-mode cleanup.
	DefaultCleanupDistance = 0.001
)

// PositionSet is an ordered set of vertex positions. A basis set and a
// shape set of equal length share indexing: index i refers to the same
// logical vertex in both.
type PositionSet []r3.Vec

// Clone returns a copy of the set. Operations mutate shape sets in place;
// callers that need the original keep a clone.
func (p PositionSet) Clone() PositionSet {
	q := make(PositionSet, len(p))
	copy(q, p)
	return q
}

// Displacement returns how far a vertex moved between its basis and shape
// positions. Zero means the shape key leaves the vertex untouched.
func Displacement(basis, shape r3.Vec) float64 {
	return r3.Norm(r3.Sub(shape, basis))
}

// Displacements appends the per-vertex basis→shape distances to dst and
// returns it along with the largest distance observed.
func Displacements(dst []float64, basis, shape PositionSet) (d []float64, max float64, err error) {
	if err := checkAligned(basis, shape); err != nil {
		return nil, 0, err
	}
	for i := range shape {
		di := Displacement(basis[i], shape[i])
		if di > max {
			max = di
		}
		dst = append(dst, di)
	}
	return dst, max, nil
}

// WeightMap maps a vertex index to its painted influence, nominally in
// [0,1]. The map is sparse: a missing index weighs 0, matching host
// vertex-group storage.
type WeightMap map[int]float64

// FaceSet maps a face index to its vertex indices in polygon winding
// order, as supplied by the host mesh.
type FaceSet [][]int

// Selection is a set of flagged vertex or face indices produced by the
// finder operations and handed back to the host's selection state.
type Selection map[int]struct{}

func (s Selection) Add(i int)      { s[i] = struct{}{} }
func (s Selection) Has(i int) bool { _, ok := s[i]; return ok }
func (s Selection) Len() int       { return len(s) }

// Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Status classifies a successful operation outcome. Failures are Go
// errors, never statuses.
type Status uint8

const (
	// StatusOK means the operation did its work.
	StatusOK Status = iota
	// StatusNoOp means the input was valid but there was nothing to do,
	// e.g. no vertex is moved by the active shape key. No side effects
	// were performed.
	StatusNoOp
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	}
	return "unknown"
}

// Report describes the outcome of an operation.
type Report struct {
	Status Status
	// Count is operation specific: vertices flagged by a finder, vertices
	// processed by a blend, or vertices reset by a cleanup.
	Count int
	// Remaining is the number of still-moving vertices after a cleanup.
	Remaining int
	// Message is a human-readable summary suitable for host UI feedback.
	Message string
}
