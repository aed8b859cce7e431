// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Python stack detector

package stacks

import (
	"regexp"
	"strings"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

// pythonDescriptors are read in this order when inferring the framework
var pythonDescriptors = []string{"pyproject.toml", "requirements.txt", "Pipfile", "setup.py"}

// pythonFrameworks are matched, lowercased, against descriptor content
var pythonFrameworks = []rule[string]{
	{"django", mentions("django")},
	{"fastapi", mentions("fastapi")},
	{"flask", mentions("flask")},
}

// pythonImportFrameworks are matched against source files
var pythonImportFrameworks = []rule[string]{
	{"django", imports("django")},
	{"fastapi", imports("fastapi")},
	{"flask", imports("flask")},
}

var webFrameworks = map[string]bool{
	"django":  true,
	"fastapi": true,
	"flask":   true,
	"asgi":    true,
	"wsgi":    true,
}

const maxPythonSources = 200

func mentions(word string) func(string) bool {
	return func(content string) bool {
		return strings.Contains(strings.ToLower(content), word)
	}
}

func imports(module string) func(string) bool {
	pattern := regexp.MustCompile(`(?m)^\s*(?:from|import)\s+` + regexp.QuoteMeta(module) + `\b`)
	return pattern.MatchString
}

// PythonDetector detects Python projects
type PythonDetector struct {
	BaseDetector
}

// NewPythonDetector creates a new Python detector
func NewPythonDetector() *PythonDetector {
	return &PythonDetector{
		BaseDetector: NewBaseDetector(StackPython, BaseScorePython),
	}
}

// Detect checks if the module is a Python project
func (d *PythonDetector) Detect(t Target) (Result, bool) {
	hasPyProject := t.exists("pyproject.toml")
	hasSetupPy := t.exists("setup.py")
	hasRequirements := t.exists("requirements.txt")
	hasPipfile := t.exists("Pipfile")

	// Must have at least one Python descriptor
	if !hasPyProject && !hasSetupPy && !hasRequirements && !hasPipfile {
		return Result{}, false
	}

	f := newFinding(d.BaseScore(), Verdict{
		Language:     "python",
		Framework:    None,
		BuildTool:    "pip",
		TestTool:     "unittest",
		ArtifactType: "application",
	})
	for _, name := range pythonDescriptors {
		if t.exists(name) {
			f.note("Python: %s present", name)
		}
	}

	var pyproject *evidence.PyProject
	if data, ok := t.read("pyproject.toml"); ok {
		parsed, err := evidence.ParsePyProject(data)
		if err != nil {
			t.logger().Debug("pyproject.toml unparseable", "module", t.Module.RelPath, "err", err)
		} else {
			pyproject = parsed
		}
	}

	if framework, ok := d.framework(t); ok {
		f.verdict.Framework = framework
		f.add(10, "Python: framework %s", framework)
	}

	if t.existsAny("main.py", "app.py", "manage.py", "__main__.py") ||
		t.has(3, func(relPath, name string) bool { return matchPath("src/*/__main__.py", relPath) }) {
		f.add(5, "Python: entry point present")
	}

	if t.existsAny("tests", "test", "conftest.py") || t.has(1, func(_, name string) bool {
		return strings.HasPrefix(name, "test_") && strings.HasSuffix(name, ".py")
	}) {
		f.add(5, "Python: tests present")
	}

	switch {
	case t.exists("poetry.lock") || (pyproject != nil && pyproject.UsesPoetry()):
		f.verdict.BuildTool = "poetry"
	case hasPipfile:
		f.verdict.BuildTool = "pipenv"
	case t.exists("uv.lock"):
		f.verdict.BuildTool = "uv"
	}

	if t.existsAny("pytest.ini", "conftest.py") || d.descriptorsMention(t, "pytest") {
		f.verdict.TestTool = "pytest"
	}

	switch {
	case webFrameworks[f.verdict.Framework]:
		f.verdict.ArtifactType = "service"
	case hasPyProject || hasSetupPy:
		f.verdict.ArtifactType = "package"
	}

	f.build, f.test = pythonCommands(f.verdict.BuildTool, f.verdict.TestTool, hasRequirements)
	if f.verdict.Framework == "django" && t.exists("manage.py") {
		f.test = "python manage.py test"
	}

	if v, source, ok := pythonVersion(t, pyproject); ok {
		f.version = VersionPrefixPython + v
		f.note("Python: version %s from %s", v, source)
	}

	return f.result(d.Name()), true
}

// framework walks the descriptor, source and entry point fallbacks.
// manage.py overrides every other signal.
func (d *PythonDetector) framework(t Target) (string, bool) {
	if t.exists("manage.py") {
		return "django", true
	}

	for _, name := range pythonDescriptors {
		content, ok := t.readString(name)
		if !ok {
			continue
		}
		if framework, ok := firstMatch(pythonFrameworks, content); ok {
			return framework, true
		}
	}

	sources := t.find(3, maxPythonSources, func(_, name string) bool {
		return strings.HasSuffix(name, ".py")
	})
	for _, src := range sources {
		content, ok := t.Files.ReadString(src)
		if !ok {
			continue
		}
		if framework, ok := firstMatch(pythonImportFrameworks, content); ok {
			return framework, true
		}
	}

	asgi, wsgi := t.exists("asgi.py"), t.exists("wsgi.py")
	switch {
	case asgi && wsgi:
		return "django", true
	case asgi:
		return "asgi", true
	case wsgi:
		return "wsgi", true
	}
	return "", false
}

func (d *PythonDetector) descriptorsMention(t Target, word string) bool {
	for _, name := range pythonDescriptors {
		if t.Files.ContainsFold(t.path(name), word) {
			return true
		}
	}
	return false
}

// pythonCommands returns the install and test commands for a build tool
func pythonCommands(buildTool, testTool string, hasRequirements bool) (string, string) {
	runner := "pytest"
	if testTool != "pytest" {
		runner = "python -m unittest discover"
	}

	switch buildTool {
	case "poetry", "pipenv", "uv":
		install := buildTool + " install"
		if buildTool == "uv" {
			install = "uv sync"
		}
		return install, buildTool + " run " + runner
	}

	if hasRequirements {
		return "pip install -r requirements.txt", runner
	}
	return "pip install .", runner
}

// pythonVersion checks .python-version, pyproject and Pipfile in that order
func pythonVersion(t Target, pyproject *evidence.PyProject) (string, string, bool) {
	if line, ok := t.Files.FirstLine(t.path(".python-version")); ok {
		if v, ok := evidence.ExtractVersion(line); ok {
			return v, ".python-version", true
		}
	}
	if pyproject != nil {
		if v, ok := evidence.ExtractVersion(pyproject.PythonRequirement()); ok {
			return v, "pyproject.toml", true
		}
	}
	if data, ok := t.read("Pipfile"); ok {
		if pf, err := evidence.ParsePipfile(data); err == nil {
			if v, ok := evidence.ExtractVersion(pf.PythonVersion()); ok {
				return v, "Pipfile", true
			}
		}
	}
	return "", "", false
}
