// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// pyproject.toml and Pipfile extraction

package evidence

import (
	"github.com/BurntSushi/toml"
)

// PyProject holds the parts of pyproject.toml used for detection
type PyProject struct {
	Project struct {
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry *struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ParsePyProject decodes pyproject.toml
func ParsePyProject(data []byte) (*PyProject, error) {
	var py PyProject
	if err := toml.Unmarshal(data, &py); err != nil {
		return nil, err
	}
	return &py, nil
}

// UsesPoetry reports whether a [tool.poetry] table is declared
func (p *PyProject) UsesPoetry() bool {
	return p.Tool.Poetry != nil
}

// PythonRequirement returns the declared interpreter constraint, checking
// project.requires-python first and the poetry python dependency second
func (p *PyProject) PythonRequirement() string {
	if p.Project.RequiresPython != "" {
		return p.Project.RequiresPython
	}
	if p.Tool.Poetry != nil {
		if python, ok := p.Tool.Poetry.Dependencies["python"].(string); ok {
			return python
		}
	}
	return ""
}

// Pipfile holds the [requires] table of a Pipfile
type Pipfile struct {
	Requires struct {
		PythonVersion     string `toml:"python_version"`
		PythonFullVersion string `toml:"python_full_version"`
	} `toml:"requires"`
}

// ParsePipfile decodes a Pipfile
func ParsePipfile(data []byte) (*Pipfile, error) {
	var pf Pipfile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

// PythonVersion returns the full version when declared, else python_version
func (p *Pipfile) PythonVersion() string {
	if p.Requires.PythonFullVersion != "" {
		return p.Requires.PythonFullVersion
	}
	return p.Requires.PythonVersion
}
