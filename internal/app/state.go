// Package app provides application state shared between the UI and the
// solver: the current project, dirty tracking, and solve orchestration.
package app

import (
	"fmt"
	"math"
	"sync"

	"sketch-solver/internal/project"
	"sketch-solver/internal/sketch"
	"sketch-solver/internal/solver"
)

// State holds the application state. All methods are safe for use from
// the UI thread; the mutex guards against callbacks firing mid-update.
// Solves run synchronously on the calling goroutine, per the solver's
// single-owner contract.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	Modified    bool

	proj         *project.File
	solverConfig solver.Config
	lastResult   *solver.Result
}

// NewState creates application state with an empty untitled project.
func NewState() *State {
	return &State{
		proj:         project.New("untitled"),
		solverConfig: solver.DefaultConfig(),
	}
}

// Sketch returns the current sketch. The caller must not retain it across
// a project load.
func (st *State) Sketch() *sketch.Sketch {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.proj.Sketch
}

// SolverConfig returns the active solver configuration.
func (st *State) SolverConfig() solver.Config {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.solverConfig
}

// LastResult returns the most recent solve result, or nil before the
// first solve.
func (st *State) LastResult() *solver.Result {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.lastResult
}

// LoadProject replaces the current project with one loaded from disk and
// adopts its solver settings.
func (st *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.proj = proj
	st.ProjectPath = path
	st.Modified = false
	st.lastResult = nil
	cfg := solver.DefaultConfig()
	if proj.Settings.Tolerance > 0 {
		cfg = cfg.WithTolerance(proj.Settings.Tolerance)
	}
	if proj.Settings.MaxIterations > 0 {
		cfg = cfg.WithMaxIterations(proj.Settings.MaxIterations)
	}
	st.solverConfig = cfg
	return nil
}

// SaveProject writes the current project to disk.
func (st *State) SaveProject(path string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.proj.Save(path); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	st.ProjectPath = path
	st.Modified = false
	return nil
}

// Solve runs the solver on the current sketch and records the result.
func (st *State) Solve() solver.Result {
	st.mu.Lock()
	defer st.mu.Unlock()
	res := solver.Solve(st.proj.Sketch, st.solverConfig)
	st.lastResult = &res
	if res.Status == solver.StatusSuccess {
		st.Modified = true
	}
	return res
}

// DOF returns the current degree-of-freedom analysis.
func (st *State) DOF() solver.DOFInfo {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return solver.ComputeDOF(st.proj.Sketch)
}

// MovePoint drags a free point to a new position and re-solves, which is
// what keeps constraints satisfied during interactive dragging.
func (st *State) MovePoint(id sketch.PointID, x, y float64) solver.Result {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.proj.Sketch.SetPointPosition(id, x, y)
	st.Modified = true
	res := solver.Solve(st.proj.Sketch, st.solverConfig)
	st.lastResult = &res
	return res
}

// NearestFreePoint returns the free point closest to (x, y) within
// maxDist, for drag picking.
func (st *State) NearestFreePoint(x, y, maxDist float64) (sketch.PointID, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	best := sketch.PointID(0)
	bestDist := maxDist
	found := false
	for _, p := range st.proj.Sketch.Points() {
		if p.Fixed {
			continue
		}
		d := math.Hypot(p.X-x, p.Y-y)
		if d <= bestDist {
			best = p.ID
			bestDist = d
			found = true
		}
	}
	return best, found
}

// NewDemoProject returns a project with a small constrained sketch: a
// rectangle pinned at the origin, so the app has something interactive to
// show when launched without a file.
func NewDemoProject() *project.File {
	proj := project.New("demo")
	s := proj.Sketch

	p1 := s.AddFixedPoint(0, 0)
	p2 := s.AddPoint(60, 2)
	p3 := s.AddPoint(58, 41)
	p4 := s.AddPoint(-2, 39)

	bottom, _ := s.AddLine(p1, p2)
	right, _ := s.AddLine(p2, p3)
	top, _ := s.AddLine(p3, p4)
	left, _ := s.AddLine(p4, p1)

	s.AddConstraint(sketch.Horizontal{Line: bottom})
	s.AddConstraint(sketch.Horizontal{Line: top})
	s.AddConstraint(sketch.Vertical{Line: left})
	s.AddConstraint(sketch.Vertical{Line: right})
	s.AddConstraint(sketch.Distance{P1: p1, P2: p2, Value: 60})
	s.AddConstraint(sketch.Distance{P1: p1, P2: p4, Value: 40})

	return proj
}

// UseProject swaps in an in-memory project (e.g. the demo sketch).
func (st *State) UseProject(proj *project.File) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.proj = proj
	st.ProjectPath = ""
	st.Modified = false
	st.lastResult = nil
}
