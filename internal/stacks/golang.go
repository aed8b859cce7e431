// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Go stack detector

package stacks

import (
	"path"
	"strings"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

// goFrameworks are checked against go.mod requires in priority order
var goFrameworks = []rule[*evidence.GoMod]{
	{"gin", requiresModule("github.com/gin-gonic/gin")},
	{"echo", requiresModule("github.com/labstack/echo")},
	{"fiber", requiresModule("github.com/gofiber/fiber")},
	{"chi", requiresModule("github.com/go-chi/chi")},
	{"gorilla", requiresModule("github.com/gorilla/mux")},
	{"grpc", requiresModule("google.golang.org/grpc")},
}

func requiresModule(modPath string) func(*evidence.GoMod) bool {
	return func(mod *evidence.GoMod) bool {
		return mod.RequiresModule(modPath)
	}
}

// GoDetector detects Go modules
type GoDetector struct {
	BaseDetector
}

// NewGoDetector creates a new Go detector
func NewGoDetector() *GoDetector {
	return &GoDetector{
		BaseDetector: NewBaseDetector(StackGo, BaseScoreGo),
	}
}

// Detect checks if the module is a Go module
func (d *GoDetector) Detect(t Target) (Result, bool) {
	// go.mod is required
	data, ok := t.read("go.mod")
	if !ok {
		return Result{}, false
	}

	f := newFinding(d.BaseScore(), Verdict{
		Language:     "go",
		Framework:    None,
		BuildTool:    "go",
		TestTool:     "go-test",
		ArtifactType: "library",
	})
	f.note("Go: go.mod present")

	mod, err := evidence.ParseGoMod(data)
	if err != nil {
		t.logger().Debug("go.mod unparseable", "module", t.Module.RelPath, "err", err)
		mod = &evidence.GoMod{}
	}

	// Entry point at the root or in the cmd/<name>/ layout
	entry := t.exists("main.go") || t.has(3, func(relPath, name string) bool {
		return name == "main.go" && matchPath("cmd/*/main.go", relPath)
	})
	if entry {
		f.verdict.ArtifactType = "binary"
		f.add(10, "Go: entry point main.go")
	}

	if t.has(2, func(_, name string) bool { return strings.HasSuffix(name, "_test.go") }) {
		f.add(5, "Go: test files present")
	}

	if framework, ok := firstMatch(goFrameworks, mod); ok {
		f.verdict.Framework = framework
		f.add(5, "Go: framework %s required in go.mod", framework)
	}

	if v, ok := mod.Version(); ok {
		f.version = VersionPrefixGo + v
		f.note("Go: version %s declared in go.mod", v)
	}

	f.build = "go build ./..."
	f.test = "go test ./..."

	return f.result(d.Name()), true
}

// matchPath matches a slash separated relative path against a pattern
func matchPath(pattern, relPath string) bool {
	ok, err := path.Match(pattern, relPath)
	return err == nil && ok
}
