// Package host defines the narrow adapter between the shape-key
// operations and the 3D application that owns the mesh. The numeric core
// in the root package never touches host state directly; it sees only
// the position arrays, weight maps and adjacency this interface hands
// over, and the runners here write selections and mutated positions
// back.
package host

import (
	"fmt"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
)

// Mesh is the view of a host mesh the operations need. Basis and
// ActiveShape return index-aligned live position arrays; blend and
// cleanup runners mutate the ActiveShape slice in place and the host is
// responsible for any display refresh afterwards.
type Mesh interface {
	VertexCount() int
	Basis() shapekey.PositionSet
	ActiveShape() shapekey.PositionSet
	Faces() shapekey.FaceSet
	// WeightMap returns the named painted weight map, or an
	// *ErrGroupNotFound if the host has no group by that name.
	WeightMap(name string) (shapekey.WeightMap, error)
	// SelectVertices and SelectFaces replace the host's current
	// selection with the given set.
	SelectVertices(shapekey.Selection)
	SelectFaces(shapekey.Selection)
}

// DataAccessor is implemented by hosts whose raw position arrays are
// only readable or writable in a particular interaction mode.
// AcquireData switches the host into that mode and returns a release
// function that restores the previous mode; the runners call release on
// every exit path, error paths included.
type DataAccessor interface {
	AcquireData() (release func(), err error)
}

// ErrGroupNotFound indicates a weight-map name unknown to the host.
type ErrGroupNotFound struct {
	Name string
}

func (e *ErrGroupNotFound) Error() string {
	return fmt.Sprintf("vertex group %q not found", e.Name)
}

func acquire(m Mesh) (func(), error) {
	if da, ok := m.(DataAccessor); ok {
		return da.AcquireData()
	}
	return func() {}, nil
}

// SelectAffected flags every vertex moved beyond threshold by the active
// shape key and replaces the host's vertex selection with the result.
func SelectAffected(m Mesh, threshold float64) (shapekey.Selection, shapekey.Report, error) {
	release, err := acquire(m)
	if err != nil {
		return nil, shapekey.Report{}, err
	}
	defer release()
	sel, rep, err := shapekey.AffectedVertices(m.Basis(), m.ActiveShape(), threshold)
	if err != nil {
		return nil, shapekey.Report{}, err
	}
	m.SelectVertices(sel)
	return sel, rep, nil
}

// SelectAffectedFaces flags every face touching an affected vertex and
// replaces the host's face selection with the result.
func SelectAffectedFaces(m Mesh, threshold float64) (shapekey.Selection, shapekey.Report, error) {
	release, err := acquire(m)
	if err != nil {
		return nil, shapekey.Report{}, err
	}
	defer release()
	vsel, _, err := shapekey.AffectedVertices(m.Basis(), m.ActiveShape(), threshold)
	if err != nil {
		return nil, shapekey.Report{}, err
	}
	fsel, rep := shapekey.AffectedFaces(vsel, m.Faces())
	m.SelectFaces(fsel)
	return fsel, rep, nil
}

// BlendGroup blends the active shape by the named painted weight map.
// The weight lookup happens before any mutation, so an unknown group
// name fails without side effects.
func BlendGroup(m Mesh, group string, invert bool) (shapekey.Report, error) {
	weights, err := m.WeightMap(group)
	if err != nil {
		return shapekey.Report{}, err
	}
	release, err := acquire(m)
	if err != nil {
		return shapekey.Report{}, err
	}
	defer release()
	rep, err := shapekey.BlendVertexGroup(m.Basis(), m.ActiveShape(), weights, invert)
	if err != nil {
		return rep, err
	}
	rep.Message = fmt.Sprintf("blended active shape using vertex group %q", group)
	return rep, nil
}

// BlendDistance blends the active shape toward basis by
// displacement-derived weights.
func BlendDistance(m Mesh, cfg shapekey.DistanceBlendConfig) (shapekey.Report, error) {
	release, err := acquire(m)
	if err != nil {
		return shapekey.Report{}, err
	}
	defer release()
	return shapekey.BlendByDistance(m.Basis(), m.ActiveShape(), cfg)
}

// Cleanup resets small shape-key movements on the active shape.
func Cleanup(m Mesh, cfg shapekey.CleanupConfig) (shapekey.Report, error) {
	release, err := acquire(m)
	if err != nil {
		return shapekey.Report{}, err
	}
	defer release()
	return shapekey.Cleanup(m.Basis(), m.ActiveShape(), cfg)
}
