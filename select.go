package shapekey

import "fmt"

// AffectedVertices flags every vertex whose basis→shape displacement
// exceeds threshold. The comparison is strict, so threshold 0 flags any
// vertex the shape key moves at all.
func AffectedVertices(basis, shape PositionSet, threshold float64) (Selection, Report, error) {
	if err := checkAligned(basis, shape); err != nil {
		return nil, Report{}, err
	}
	if err := checkNonNegative("threshold", threshold); err != nil {
		return nil, Report{}, err
	}
	sel := make(Selection)
	for i := range shape {
		if Displacement(basis[i], shape[i]) > threshold {
			sel.Add(i)
		}
	}
	rep := Report{
		Status:  StatusOK,
		Count:   sel.Len(),
		Message: fmt.Sprintf("selected %d affected vertices", sel.Len()),
	}
	return sel, rep, nil
}

// AffectedFaces flags every face with at least one vertex in sel. Faces
// whose vertices all sit at basis never appear in the result.
func AffectedFaces(sel Selection, faces FaceSet) (Selection, Report) {
	out := make(Selection)
	for fi, face := range faces {
		for _, vi := range face {
			if sel.Has(vi) {
				out.Add(fi)
				break
			}
		}
	}
	rep := Report{
		Status:  StatusOK,
		Count:   out.Len(),
		Message: fmt.Sprintf("selected %d affected faces", out.Len()),
	}
	return out, rep
}
