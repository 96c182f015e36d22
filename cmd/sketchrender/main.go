// Command sketchrender renders a sketch file to a PNG image, optionally
// solving it first.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"sketch-solver/internal/project"
	"sketch-solver/internal/render"
	"sketch-solver/internal/solver"
)

func main() {
	sketchPath := flag.String("sketch", "", "Path to a .sketch project file")
	outPath := flag.String("out", "sketch.png", "Output PNG path")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 600, "Image height in pixels")
	solveFirst := flag.Bool("solve", false, "Run the solver before rendering")
	flag.Parse()

	if *sketchPath == "" {
		fmt.Println("Usage: sketchrender -sketch <path> [-out sketch.png] [-width 800] [-height 600] [-solve]")
		os.Exit(1)
	}

	proj, err := project.Load(*sketchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load sketch: %v\n", err)
		os.Exit(1)
	}
	s := proj.Sketch
	fmt.Printf("Loaded %q: %d points, %d entities, %d constraints\n",
		proj.Name, len(s.Points()), len(s.Entities()), len(s.Constraints()))

	if *solveFirst {
		res := solver.Solve(s, solver.DefaultConfig())
		fmt.Printf("Solve: %s (%d iterations, residual %.3g)\n", res.Status, res.Iterations, res.FinalResidual)
	}

	opts := render.DefaultOptions()
	opts.Width = *width
	opts.Height = *height
	img := render.Render(s, opts)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", *outPath, *width, *height)
}
