// Command solvetest runs the constraint solver on a sketch file and
// prints diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"

	"sketch-solver/internal/profile"
	"sketch-solver/internal/project"
	"sketch-solver/internal/sketch"
	"sketch-solver/internal/solver"
)

func main() {
	sketchPath := flag.String("sketch", "", "Path to a .sketch project file")
	tolerance := flag.Float64("tolerance", 0, "Override convergence tolerance (0 = project setting)")
	maxIter := flag.Int("max-iter", 0, "Override iteration budget (0 = project setting)")
	verbose := flag.Bool("v", false, "Print per-constraint residuals before and after")
	flag.Parse()

	if *sketchPath == "" {
		fmt.Println("Usage: solvetest -sketch <path> [-tolerance 1e-6] [-max-iter 100] [-v]")
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

	cfg := solver.DefaultConfig()
	if proj.Settings.Tolerance > 0 {
		cfg = cfg.WithTolerance(proj.Settings.Tolerance)
	}
	if proj.Settings.MaxIterations > 0 {
		cfg = cfg.WithMaxIterations(proj.Settings.MaxIterations)
	}
	if *tolerance > 0 {
		cfg = cfg.WithTolerance(*tolerance)
	}
	if *maxIter > 0 {
		cfg = cfg.WithMaxIterations(*maxIter)
	}

	info := solver.ComputeDOF(s)
	fmt.Printf("\nDOF analysis:\n")
	fmt.Printf("  Variables: %d\n", info.TotalVariables)
	fmt.Printf("  Equations: %d\n", info.NumEquations)
	fmt.Printf("  DOF:       %d (%s)\n", info.DOF, info.Status)

	if *verbose {
		printResiduals(s, "Residuals before solve")
	}

	fmt.Printf("\nSolving (tolerance %.1e, max %d iterations)...\n", cfg.Tolerance, cfg.MaxIterations)
	res := solver.Solve(s, cfg)
	fmt.Printf("  Status:     %s\n", res.Status)
	fmt.Printf("  Iterations: %d\n", res.Iterations)
	fmt.Printf("  Residual:   %.6g\n", res.FinalResidual)
	fmt.Printf("  %s\n", res.Message)

	if *verbose {
		printResiduals(s, "Residuals after solve")
	}

	profiles := profile.Detect(s)
	closed := 0
	for _, p := range profiles {
		if p.Closed {
			closed++
		}
	}
	fmt.Printf("\nProfiles: %d (%d closed)\n", len(profiles), closed)

	if res.Status != solver.StatusSuccess {
		os.Exit(1)
	}
}

func printResiduals(s *sketch.Sketch, header string) {
	fmt.Printf("\n%s:\n", header)
	for _, cr := range solver.ResidualsByConstraint(s) {
		if len(cr.Values) == 0 {
			fmt.Printf("  #%-3d %-16s (no residual)\n", cr.ID, cr.Kind)
			continue
		}
		fmt.Printf("  #%-3d %-16s %v\n", cr.ID, cr.Kind, cr.Values)
	}
}
