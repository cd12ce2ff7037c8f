package main

import (
	"flag"
	"log"
	"math"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
	"github.com/SorrowfulExistence/ShapekeyTools/host"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// Scale down images relative to Full HD resolution.
const (
	fhdScaler     = 0.4
	width, height = int(1920. * fhdScaler), int(1080. * fhdScaler)
)

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var mf meshFlags
	mf.register(fs)
	threshold := fs.Float64("threshold", shapekey.DefaultThreshold, "minimum movement distance for highlighting")
	out := fs.String("o", "preview.png", "output PNG file")
	fs.Parse(args)

	m, err := mf.load()
	if err != nil {
		return err
	}
	fsel, rep, err := host.SelectAffectedFaces(m, *threshold)
	if err != nil {
		return err
	}
	log.Print(rep.Message)

	affected := faceSubsetMesh(m, func(fi int) bool { return fsel.Has(fi) })
	rest := faceSubsetMesh(m, func(fi int) bool { return !fsel.Has(fi) })

	// Fit both sub-meshes with one transform so they stay registered.
	fit := biUnitFit(m.ShapeMesh().BoundingBox())
	affected.Transform(fit)
	rest.Transform(fit)

	const (
		scale = 2  // supersampling factor
		fovy  = 30 // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(2.4, 2.4, 2.4) // iso view
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 0, 1)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, 1, 10)

	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#468966")
	context.Shader = shader
	context.DrawMesh(rest)

	shader = fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#C0392B")
	context.Shader = shader
	context.DrawMesh(affected)

	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	if err := fauxgl.SavePNG(*out, image); err != nil {
		return err
	}
	log.Print("wrote ", *out)
	return nil
}

// faceSubsetMesh builds a fauxgl mesh from the faces keep admits.
func faceSubsetMesh(m *host.TriMesh, keep func(fi int) bool) *fauxgl.Mesh {
	shape := m.ActiveShape()
	var triangles []*fauxgl.Triangle
	for fi, face := range m.Faces() {
		if len(face) != 3 || !keep(fi) {
			continue
		}
		a, b, c := shape[face[0]], shape[face[1]], shape[face[2]]
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			fauxgl.Vector{X: a.X, Y: a.Y, Z: a.Z},
			fauxgl.Vector{X: b.X, Y: b.Y, Z: b.Z},
			fauxgl.Vector{X: c.X, Y: c.Y, Z: c.Z},
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}

// biUnitFit returns the transform centering a bounding box on the origin
// and scaling it into the bi-unit cube.
func biUnitFit(box fauxgl.Box) fauxgl.Matrix {
	center := box.Min.Add(box.Max).MulScalar(0.5)
	size := box.Max.Sub(box.Min)
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	s := 1.0
	if extent > 0 {
		s = 2 / extent
	}
	return fauxgl.Identity().Translate(center.Negate()).Scale(fauxgl.V(s, s, s))
}
