// Package home manages the thermomap home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the thermomap home directory.
	DefaultDirName = ".thermomap"

	// DataDirName is the subdirectory for raw temperature logs.
	DataDirName = "data"

	// TemplateDirName is the subdirectory for layout templates.
	TemplateDirName = "template"

	// ResultDirName is the subdirectory result workbooks are written to.
	ResultDirName = "result"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Conventional file names inside the layout, matching what the data
// acquisition side drops in place.
const (
	DefaultDataFileName     = "data1.txt"
	DefaultTemplateFileName = "template.xlsx"
	ResultFileName          = "result.xlsx"
)

// Dir represents the thermomap home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.thermomap).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DataPath returns the path to the data directory.
func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

// TemplatePath returns the path to the template directory.
func (d *Dir) TemplatePath() string {
	return filepath.Join(d.path, TemplateDirName)
}

// ResultPath returns the path to the result directory.
func (d *Dir) ResultPath() string {
	return filepath.Join(d.path, ResultDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DefaultDataFile returns the conventional location of the temperature log.
func (d *Dir) DefaultDataFile() string {
	return filepath.Join(d.DataPath(), DefaultDataFileName)
}

// DefaultTemplateFile returns the conventional location of the layout template.
func (d *Dir) DefaultTemplateFile() string {
	return filepath.Join(d.TemplatePath(), DefaultTemplateFileName)
}

// ResultFile returns the destination path of the result workbook.
func (d *Dir) ResultFile() string {
	return filepath.Join(d.ResultPath(), ResultFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.DataPath(), d.TemplatePath(), d.ResultPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
