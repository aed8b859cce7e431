// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// package.json extraction

package evidence

import (
	"bytes"
	"encoding/json"
	"strings"
)

// npmDefaultTestScript is what `npm init` writes into scripts.test
const npmDefaultTestScript = `echo "Error: no test specified" && exit 1`

// PackageJSON holds the parts of a Node package descriptor used for detection
type PackageJSON struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	Bin             json.RawMessage   `json:"bin"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Engines         map[string]string `json:"engines"`
}

// ParsePackageJSON decodes a package descriptor
func ParsePackageJSON(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// HasDependency checks dependencies and devDependencies for an exact name
func (p *PackageJSON) HasDependency(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// HasScript reports whether a script is declared with a real command
func (p *PackageJSON) HasScript(name string) bool {
	script := strings.TrimSpace(p.Scripts[name])
	if script == "" {
		return false
	}
	return !(name == "test" && script == npmDefaultTestScript)
}

// ScriptInvokes reports whether any script command runs the given executable
func (p *PackageJSON) ScriptInvokes(tool string) bool {
	for _, script := range p.Scripts {
		words := strings.FieldsFunc(script, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '&' || r == ';' || r == '|'
		})
		for _, word := range words {
			if word == tool {
				return true
			}
		}
	}
	return false
}

// HasBin reports whether the package declares executables
func (p *PackageJSON) HasBin() bool {
	bin := bytes.TrimSpace(p.Bin)
	return len(bin) > 0 && !bytes.Equal(bin, []byte("null")) &&
		!bytes.Equal(bin, []byte(`""`)) && !bytes.Equal(bin, []byte("{}"))
}

// NodeEngine returns the engines.node constraint
func (p *PackageJSON) NodeEngine() string {
	return p.Engines["node"]
}
