package host

import (
	"fmt"
	"path/filepath"
	"strings"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
	"github.com/fogleman/fauxgl"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriMesh is a file-backed Mesh for tooling and tests: a pair of
// triangle-mesh files holding the same mesh in its basis pose and its
// deformed pose stands in for a host shape-key pair. Triangle soups
// carry no shared vertex indexing, so every triangle corner is its own
// vertex and face i lists corners 3i, 3i+1, 3i+2.
type TriMesh struct {
	basis shapekey.PositionSet
	shape shapekey.PositionSet
	faces shapekey.FaceSet

	groups map[string]shapekey.WeightMap

	selVerts shapekey.Selection
	selFaces shapekey.Selection
}

// NewTriMesh builds a TriMesh from in-memory position sets. faces may be
// nil for hosts that only run vertex operations.
func NewTriMesh(basis, shape shapekey.PositionSet, faces shapekey.FaceSet) (*TriMesh, error) {
	if len(basis) != len(shape) {
		return nil, &shapekey.ErrLengthMismatch{Basis: len(basis), Shape: len(shape)}
	}
	return &TriMesh{
		basis:  basis,
		shape:  shape,
		faces:  faces,
		groups: make(map[string]shapekey.WeightMap),
	}, nil
}

// LoadTriMesh reads a basis mesh file and a deformed mesh file
// (.obj, .stl or .ply) describing the same triangle layout.
func LoadTriMesh(basisPath, shapePath string) (*TriMesh, error) {
	bm, err := loadMeshFile(basisPath)
	if err != nil {
		return nil, err
	}
	sm, err := loadMeshFile(shapePath)
	if err != nil {
		return nil, err
	}
	if len(bm.Triangles) != len(sm.Triangles) {
		return nil, fmt.Errorf("basis and shape meshes differ: %d vs %d triangles",
			len(bm.Triangles), len(sm.Triangles))
	}
	basis := flattenPositions(bm)
	shape := flattenPositions(sm)
	faces := make(shapekey.FaceSet, len(bm.Triangles))
	for i := range faces {
		faces[i] = []int{3 * i, 3*i + 1, 3*i + 2}
	}
	return NewTriMesh(basis, shape, faces)
}

func loadMeshFile(path string) (*fauxgl.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return fauxgl.LoadOBJ(path)
	case ".stl":
		return fauxgl.LoadSTL(path)
	case ".ply":
		return fauxgl.LoadPLY(path)
	}
	return nil, fmt.Errorf("unsupported mesh file %q (want .obj, .stl or .ply)", path)
}

func flattenPositions(m *fauxgl.Mesh) shapekey.PositionSet {
	p := make(shapekey.PositionSet, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		for _, v := range [3]fauxgl.Vertex{t.V1, t.V2, t.V3} {
			p = append(p, r3.Vec{X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z})
		}
	}
	return p
}

func (m *TriMesh) VertexCount() int                  { return len(m.basis) }
func (m *TriMesh) Basis() shapekey.PositionSet       { return m.basis }
func (m *TriMesh) ActiveShape() shapekey.PositionSet { return m.shape }
func (m *TriMesh) Faces() shapekey.FaceSet           { return m.faces }

func (m *TriMesh) WeightMap(name string) (shapekey.WeightMap, error) {
	w, ok := m.groups[name]
	if !ok {
		return nil, &ErrGroupNotFound{Name: name}
	}
	return w, nil
}

// SetWeightMap attaches a named weight map, standing in for a painted
// host vertex group.
func (m *TriMesh) SetWeightMap(name string, w shapekey.WeightMap) {
	m.groups[name] = w
}

func (m *TriMesh) SelectVertices(sel shapekey.Selection) { m.selVerts = sel }
func (m *TriMesh) SelectFaces(sel shapekey.Selection)    { m.selFaces = sel }

// SelectedVertices returns the current vertex selection, which may be nil.
func (m *TriMesh) SelectedVertices() shapekey.Selection { return m.selVerts }

// SelectedFaces returns the current face selection, which may be nil.
func (m *TriMesh) SelectedFaces() shapekey.Selection { return m.selFaces }

// ShapeMesh materializes the current (possibly mutated) shape positions
// as a fauxgl mesh for saving or rendering.
func (m *TriMesh) ShapeMesh() *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, 0, len(m.faces))
	for _, face := range m.faces {
		if len(face) != 3 {
			continue
		}
		a, b, c := m.shape[face[0]], m.shape[face[1]], m.shape[face[2]]
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			fauxgl.Vector{X: a.X, Y: a.Y, Z: a.Z},
			fauxgl.Vector{X: b.X, Y: b.Y, Z: b.Z},
			fauxgl.Vector{X: c.X, Y: c.Y, Z: c.Z},
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}

// SaveSTL writes the current shape positions to a binary STL file.
func (m *TriMesh) SaveSTL(path string) error {
	return fauxgl.SaveSTL(path, m.ShapeMesh())
}
