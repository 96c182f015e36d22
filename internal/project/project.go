// Package project provides sketch file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"sketch-solver/internal/sketch"
)

// File represents a sketch project file (.sketch).
type File struct {
	Version  int            `json:"version"`
	Name     string         `json:"name"`
	Created  time.Time      `json:"created"`
	Modified time.Time      `json:"modified"`
	Sketch   *sketch.Sketch `json:"sketch"`
	Settings Settings       `json:"settings,omitempty"`
}

// Settings holds per-project solver preferences.
type Settings struct {
	Tolerance     float64 `json:"tolerance,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

// New creates a new project file with an empty sketch and default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Sketch:   sketch.New(),
		Settings: Settings{
			Tolerance:     1e-6,
			MaxIterations: 100,
		},
	}
}

// Load loads a project from a .sketch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	if proj.Sketch == nil {
		proj.Sketch = sketch.New()
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
