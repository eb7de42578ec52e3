package connector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PyProject holds the parts of pyproject.toml the checks care about.
type PyProject struct {
	Tool struct {
		Poetry PoetrySection `toml:"poetry"`
	} `toml:"tool"`
}

// PoetrySection is the [tool.poetry] table.
type PoetrySection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	License string `toml:"license"`
}

// HasPyProject reports whether the connector ships a pyproject.toml.
func (c *Connector) HasPyProject() bool {
	return c.FileExists(PyProjectFileName)
}

// PyProject parses the connector's pyproject.toml.
func (c *Connector) PyProject() (*PyProject, error) {
	return LoadPyProject(filepath.Join(c.CodeDirectory, PyProjectFileName))
}

// LoadPyProject parses a pyproject.toml file.
func LoadPyProject(path string) (*PyProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", PyProjectFileName, err)
	}
	var p PyProject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", PyProjectFileName, err)
	}
	return &p, nil
}
