// Package shapekey implements editing operations on mesh shape-key
// (blend-shape) data: selecting the geometry a shape key affects,
// blending a shape key's influence by a painted weight map or by
// displacement distance, and cleaning up small residual movements by
// resetting vertices to the basis pose.
//
// Every operation works on two index-aligned position arrays, the
// undeformed basis pose and the active shape pose. Operations are pure
// passes over the arrays: finders return a Selection, blend and cleanup
// operations mutate the shape array in place. Nothing here touches the
// host application's object model; see the host package for the adapter
// interface a 3D application implements to wire these operations to a
// live mesh.
//
//	sel, rep, err := shapekey.AffectedVertices(basis, shape, shapekey.DefaultThreshold)
//	if err != nil {
//		return err
//	}
//	fmt.Println(rep.Message, sel.Indices())
package shapekey
