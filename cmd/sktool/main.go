// Command sktool runs shape-key editing operations on mesh files. It
// plays the role of the host wrapper: a basis-pose mesh file plus a
// deformed-pose mesh file of identical layout stand in for a shape-key
// pair.
//
// Example usages:
//
//	sktool select -basis rest.obj -shape smile.obj -threshold 0.001
//	sktool select -basis rest.obj -shape smile.obj -faces
//	sktool blend -basis rest.obj -shape smile.obj -weights w.json -group brow -o out.stl
//	sktool blend -basis rest.obj -shape smile.obj -percent 25 -inverse -normalize -o out.stl
//	sktool cleanup -basis rest.obj -shape smile.obj -mode percentage -percent 10 -o out.stl
//	sktool stats -basis rest.obj -shape smile.obj -histogram hist.png
//	sktool preview -basis rest.obj -shape smile.obj -threshold 0.001 -o preview.png
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	shapekey "github.com/SorrowfulExistence/ShapekeyTools"
	"github.com/SorrowfulExistence/ShapekeyTools/host"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sktool <command> [flags]

commands:
  select   flag vertices (or faces) affected by the deformation
  blend    blend the deformation by a weight map or by distance
  cleanup  reset small movements back to the basis pose
  stats    displacement statistics, optionally as a histogram
  preview  render a shaded PNG with affected faces highlighted

run "sktool <command> -h" for command flags`)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sktool: ")
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "select":
		err = runSelect(args)
	case "blend":
		err = runBlend(args)
	case "cleanup":
		err = runCleanup(args)
	case "stats":
		err = runStats(args)
	case "preview":
		err = runPreview(args)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// meshFlags declares the flags every command shares and loads the mesh
// pair after parsing.
type meshFlags struct {
	basis, shape string
}

func (mf *meshFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&mf.basis, "basis", "", "basis (rest pose) mesh file")
	fs.StringVar(&mf.shape, "shape", "", "deformed mesh file")
}

func (mf *meshFlags) load() (*host.TriMesh, error) {
	if mf.basis == "" || mf.shape == "" {
		return nil, fmt.Errorf("both -basis and -shape are required")
	}
	return host.LoadTriMesh(mf.basis, mf.shape)
}

func runSelect(args []string) error {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	var mf meshFlags
	mf.register(fs)
	threshold := fs.Float64("threshold", shapekey.DefaultThreshold, "minimum movement distance")
	faces := fs.Bool("faces", false, "select faces instead of vertices")
	verbose := fs.Bool("v", false, "print the selected indices")
	fs.Parse(args)

	m, err := mf.load()
	if err != nil {
		return err
	}
	var (
		sel shapekey.Selection
		rep shapekey.Report
	)
	if *faces {
		sel, rep, err = host.SelectAffectedFaces(m, *threshold)
	} else {
		sel, rep, err = host.SelectAffected(m, *threshold)
	}
	if err != nil {
		return err
	}
	log.Print(rep.Message)
	if *verbose {
		fmt.Println(sel.Indices())
	}
	return nil
}

func runBlend(args []string) error {
	fs := flag.NewFlagSet("blend", flag.ExitOnError)
	var mf meshFlags
	mf.register(fs)
	group := fs.String("group", "", "weight-map name to blend by (requires -weights)")
	weights := fs.String("weights", "", "JSON file mapping vertex index to weight")
	invert := fs.Bool("invert", false, "invert the weight map influence")
	percent := fs.Float64("percent", 100, "distance-blend strength in [0,100]")
	inverse := fs.Bool("inverse", false, "distance blend: taper small movements instead of large ones")
	normalize := fs.Bool("normalize", false, "distance blend: normalize by the largest movement")
	out := fs.String("o", "", "output STL file for the blended shape")
	fs.Parse(args)

	m, err := mf.load()
	if err != nil {
		return err
	}
	var rep shapekey.Report
	if *group != "" {
		w, err := loadWeights(*weights)
		if err != nil {
			return err
		}
		m.SetWeightMap(*group, w)
		rep, err = host.BlendGroup(m, *group, *invert)
		if err != nil {
			return err
		}
	} else {
		mode := shapekey.Linear
		if *inverse {
			mode = shapekey.Inverse
		}
		rep, err = host.BlendDistance(m, shapekey.DistanceBlendConfig{
			Percentage: *percent,
			Mode:       mode,
			Normalize:  *normalize,
		})
		if err != nil {
			return err
		}
	}
	log.Print(rep.Message)
	return saveResult(m, rep, *out)
}

func runCleanup(args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	var mf meshFlags
	mf.register(fs)
	mode := fs.String("mode", "percentage", `"percentage" or "threshold"`)
	percent := fs.Float64("percent", shapekey.DefaultCleanupPercentage, "share of moving vertices to reset")
	distance := fs.Float64("distance", shapekey.DefaultCleanupDistance, "inclusive movement bound to reset")
	out := fs.String("o", "", "output STL file for the cleaned shape")
	fs.Parse(args)

	m, err := mf.load()
	if err != nil {
		return err
	}
	cfg := shapekey.CleanupConfig{Percentage: *percent, Distance: *distance}
	switch *mode {
	case "percentage":
		cfg.Mode = shapekey.CleanupPercentage
	case "threshold":
		cfg.Mode = shapekey.CleanupThreshold
	default:
		return fmt.Errorf("unknown cleanup mode %q", *mode)
	}
	rep, err := host.Cleanup(m, cfg)
	if err != nil {
		return err
	}
	log.Print(rep.Message)
	return saveResult(m, rep, *out)
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	var mf meshFlags
	mf.register(fs)
	histogram := fs.String("histogram", "", "write a displacement histogram PNG")
	bins := fs.Int("bins", 32, "histogram bin count")
	fs.Parse(args)

	m, err := mf.load()
	if err != nil {
		return err
	}
	s, err := shapekey.SummarizeDisplacement(m.Basis(), m.ActiveShape())
	if err != nil {
		return err
	}
	fmt.Printf("vertices       %d\n", s.Total)
	fmt.Printf("moving         %d\n", s.Moving)
	if s.Moving > 0 {
		fmt.Printf("min            %g\n", s.Min)
		fmt.Printf("max            %g\n", s.Max)
		fmt.Printf("mean           %g\n", s.Mean)
		fmt.Printf("median         %g\n", s.Median)
		fmt.Printf("stddev         %g\n", s.StdDev)
	}
	fmt.Printf("mesh diagonal  %g\n", s.Diagonal)
	if *histogram == "" {
		return nil
	}
	if s.Moving == 0 {
		return fmt.Errorf("no moving vertices to plot")
	}
	return saveHistogram(m, *histogram, *bins)
}

func saveHistogram(m *host.TriMesh, path string, bins int) error {
	d, _, err := shapekey.Displacements(nil, m.Basis(), m.ActiveShape())
	if err != nil {
		return err
	}
	values := make(plotter.Values, 0, len(d))
	for _, di := range d {
		if di > 0 {
			values = append(values, di)
		}
	}
	p := plot.New()
	p.Title.Text = "Shape-key displacement"
	p.X.Label.Text = "distance"
	p.Y.Label.Text = "vertices"
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}
	log.Print("wrote ", path)
	return nil
}

// loadWeights reads a sparse vertex-index→weight JSON object, the stand-in
// for a painted host vertex group.
func loadWeights(path string) (shapekey.WeightMap, error) {
	if path == "" {
		return nil, fmt.Errorf("-group requires -weights")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	w := make(shapekey.WeightMap, len(raw))
	for k, v := range raw {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("weight map key %q is not a vertex index", k)
		}
		w[i] = v
	}
	return w, nil
}

func saveResult(m *host.TriMesh, rep shapekey.Report, out string) error {
	if out == "" {
		return nil
	}
	if rep.Status == shapekey.StatusNoOp {
		log.Print("nothing changed, not writing ", out)
		return nil
	}
	if err := m.SaveSTL(out); err != nil {
		return err
	}
	log.Print("wrote ", out)
	return nil
}
