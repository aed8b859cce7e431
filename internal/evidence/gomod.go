// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// go.mod extraction

package evidence

import (
	"strings"

	"golang.org/x/mod/modfile"
)

// GoMod holds the parts of a go.mod file used for detection
type GoMod struct {
	Module    string
	GoVersion string   // value of the go directive
	Toolchain string   // toolchain directive without the "go" prefix
	Requires  []string // required module paths, in file order
}

// ParseGoMod parses go.mod content. Files the strict parser rejects are
// parsed leniently, which drops unknown directives.
func ParseGoMod(data []byte) (*GoMod, error) {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		f, err = modfile.ParseLax("go.mod", data, nil)
		if err != nil {
			return nil, err
		}
	}

	mod := &GoMod{}
	if f.Module != nil {
		mod.Module = f.Module.Mod.Path
	}
	if f.Go != nil {
		mod.GoVersion = f.Go.Version
	}
	if f.Toolchain != nil {
		mod.Toolchain = strings.TrimPrefix(f.Toolchain.Name, "go")
	} else {
		mod.Toolchain = strings.TrimPrefix(toolchainLine(f.Syntax), "go")
	}
	for _, req := range f.Require {
		mod.Requires = append(mod.Requires, req.Mod.Path)
	}
	return mod, nil
}

// Version returns the declared Go version, preferring the go directive
func (m *GoMod) Version() (string, bool) {
	if v, ok := CleanVersion(m.GoVersion); ok {
		return v, true
	}
	if v, ok := CleanVersion(m.Toolchain); ok {
		return v, true
	}
	return "", false
}

// RequiresModule reports whether the module path or one of its sub-paths is required
func (m *GoMod) RequiresModule(path string) bool {
	for _, req := range m.Requires {
		if req == path || strings.HasPrefix(req, path+"/") {
			return true
		}
	}
	return false
}

// toolchainLine reads the toolchain directive from the syntax tree, which
// keeps it even when the lenient parser skipped it
func toolchainLine(syntax *modfile.FileSyntax) string {
	if syntax == nil {
		return ""
	}
	for _, stmt := range syntax.Stmt {
		line, ok := stmt.(*modfile.Line)
		if ok && len(line.Token) == 2 && line.Token[0] == "toolchain" {
			return line.Token[1]
		}
	}
	return ""
}
