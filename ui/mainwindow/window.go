// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"sketch-solver/internal/app"
	"sketch-solver/internal/solver"
	"sketch-solver/ui/canvas"
)

// MainWindow is the primary application window: a toolbar, the sketch
// canvas, and a status bar reporting DOF and the last solve outcome.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	canvas    *canvas.SketchCanvas
	statusBar *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Sketch Solver")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}
	mw.setupUI()
	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state)
	mw.canvas.SetOnSolve(mw.updateStatus)
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), mw.openProject),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), mw.saveProject),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), mw.solve),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), mw.canvas.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), mw.canvas.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), mw.canvas.ZoomFit),
	)

	content := container.NewBorder(
		toolbar,      // top
		mw.statusBar, // bottom
		nil,
		nil,
		mw.canvas,
	)
	mw.SetContent(content)
	mw.Resize(fyne.NewSize(960, 720))
	mw.updateStatus()
}

// solve runs the solver on the current sketch.
func (mw *MainWindow) solve() {
	res := mw.state.Solve()
	log.Printf("Solve: %s (%d iterations, residual %.3g)", res.Status, res.Iterations, res.FinalResidual)
	mw.canvas.Refresh()
	mw.updateStatus()
}

// updateStatus refreshes the status bar with DOF and solve outcome.
func (mw *MainWindow) updateStatus() {
	info := mw.state.DOF()
	text := fmt.Sprintf("%s (DOF %d: %d variables, %d equations)",
		info.Status, info.DOF, info.TotalVariables, info.NumEquations)
	if res := mw.state.LastResult(); res != nil {
		text += fmt.Sprintf(" | last solve: %s, residual %.3g", res.Status, res.FinalResidual)
		if res.Status == solver.StatusOverconstrained {
			text += " (remove a constraint)"
		}
	}
	mw.statusBar.SetText(text)
}

// openProject prompts for a .sketch file and loads it.
func (mw *MainWindow) openProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle("Sketch Solver - " + filepath.Base(path))
		mw.canvas.Refresh()
		mw.updateStatus()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".sketch"}))
	fd.Show()
}

// saveProject writes the project, prompting for a path when untitled.
func (mw *MainWindow) saveProject() {
	if mw.state.ProjectPath != "" {
		if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
			dialog.ShowError(err, mw.Window)
		}
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle("Sketch Solver - " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("untitled.sketch")
	fd.Show()
}
