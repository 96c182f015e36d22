// Package main provides the entry point for the Sketch Solver application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"sketch-solver/internal/app"
	"sketch-solver/ui/mainwindow"
)

const (
	appTitle   = "Sketch Solver"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.SketchTheme{})

	state := app.NewState()

	// Open a project from the command line, or fall back to the demo
	// sketch so there is something to drag.
	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := state.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	} else {
		state.UseProject(app.NewDemoProject())
	}

	win := mainwindow.New(fyneApp, state)
	win.ShowAndRun()
}
