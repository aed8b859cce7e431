// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Node.js / TypeScript stack detector

package stacks

import (
	"path/filepath"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

// nodeDependencyFrameworks: server frameworks beat UI libraries
var nodeDependencyFrameworks = []rule[*evidence.PackageJSON]{
	{"nestjs", dependsOn("@nestjs/core")},
	{"express", dependsOn("express")},
	{"fastify", dependsOn("fastify")},
	{"koa", dependsOn("koa")},
	{"hapi", dependsOn("@hapi/hapi")},
	{"nextjs", dependsOn("next")},
	{"nuxt", dependsOn("nuxt")},
	{"angular", dependsOn("@angular/core")},
	{"react", dependsOn("react")},
	{"vue", dependsOn("vue")},
	{"svelte", dependsOn("svelte")},
}

// nodeScriptFrameworks override the dependency guess when a script runs the tool
var nodeScriptFrameworks = []rule[*evidence.PackageJSON]{
	{"nextjs", invokes("next")},
	{"nuxt", invokes("nuxt")},
	{"angular", invokes("ng")},
	{"nestjs", invokes("nest")},
	{"react", invokes("react-scripts")},
	{"vite", invokes("vite")},
}

var nodeTestTools = []rule[*evidence.PackageJSON]{
	{"vitest", usesTool("vitest")},
	{"jest", usesTool("jest")},
	{"mocha", usesTool("mocha")},
}

var serverFrameworks = map[string]bool{
	"nestjs":  true,
	"express": true,
	"fastify": true,
	"koa":     true,
	"hapi":    true,
}

func dependsOn(name string) func(*evidence.PackageJSON) bool {
	return func(pkg *evidence.PackageJSON) bool {
		return pkg.HasDependency(name)
	}
}

func invokes(tool string) func(*evidence.PackageJSON) bool {
	return func(pkg *evidence.PackageJSON) bool {
		return pkg.ScriptInvokes(tool)
	}
}

func usesTool(tool string) func(*evidence.PackageJSON) bool {
	return func(pkg *evidence.PackageJSON) bool {
		return pkg.HasDependency(tool) || pkg.ScriptInvokes(tool)
	}
}

// NodeDetector detects Node.js and TypeScript projects
type NodeDetector struct {
	BaseDetector
}

// NewNodeDetector creates a new Node.js detector
func NewNodeDetector() *NodeDetector {
	return &NodeDetector{
		BaseDetector: NewBaseDetector(StackNode, BaseScoreNode),
	}
}

// Detect checks if the module is a Node.js project
func (d *NodeDetector) Detect(t Target) (Result, bool) {
	// package.json is required, preferably at the module root
	descriptor := t.path("package.json")
	atRoot := evidence.IsFile(descriptor)
	if !atRoot {
		nested := t.find(2, 1, named("package.json"))
		if len(nested) == 0 {
			return Result{}, false
		}
		descriptor = nested[0]
	}
	pkgDir := filepath.Dir(descriptor)

	f := newFinding(d.BaseScore(), Verdict{
		Language:     "javascript",
		Framework:    None,
		BuildTool:    "npm",
		TestTool:     Unknown,
		ArtifactType: "package",
	})
	if atRoot {
		f.add(5, "Node: package.json present")
	} else {
		rel, _ := filepath.Rel(t.Module.Path, descriptor)
		f.add(-10, "Node: package.json found in %s", filepath.ToSlash(rel))
	}

	pkg := &evidence.PackageJSON{}
	if data, ok := t.Files.Read(descriptor); ok {
		if parsed, err := evidence.ParsePackageJSON(data); err == nil {
			pkg = parsed
		} else {
			t.logger().Debug("package.json unparseable", "module", t.Module.RelPath, "err", err)
		}
	}

	if t.has(2, named("tsconfig.json")) {
		f.verdict.Language = "typescript"
		f.note("Node: tsconfig.json present (TypeScript)")
	}

	// Lockfile priority: pnpm overrides yarn, yarn overrides the npm default
	if evidence.Exists(filepath.Join(pkgDir, "yarn.lock")) {
		f.verdict.BuildTool = "yarn"
	}
	if evidence.Exists(filepath.Join(pkgDir, "pnpm-lock.yaml")) {
		f.verdict.BuildTool = "pnpm"
	}
	f.note("Node: package manager %s", f.verdict.BuildTool)

	framework, ok := firstMatch(nodeDependencyFrameworks, pkg)
	if scripted, found := firstMatch(nodeScriptFrameworks, pkg); found {
		framework, ok = scripted, true
	}
	if ok {
		f.verdict.Framework = framework
		f.add(10, "Node: framework %s", framework)
	}

	switch {
	case pkg.HasBin():
		f.verdict.ArtifactType = "cli"
	case serverFrameworks[f.verdict.Framework]:
		f.verdict.ArtifactType = "service"
	case f.verdict.Framework != None:
		f.verdict.ArtifactType = "web-app"
	}

	entries := []string{"index.js", "server.js", "src/index.ts", "src/index.js"}
	if pkg.Main != "" || existsUnder(pkgDir, entries...) {
		f.add(5, "Node: entry point present")
	}

	if tool, ok := firstMatch(nodeTestTools, pkg); ok {
		f.verdict.TestTool = tool
	}

	tool := f.verdict.BuildTool
	if pkg.HasScript("build") {
		f.build = tool + " run build"
	}
	if pkg.HasScript("test") {
		f.test = tool + " test"
		f.add(5, "Node: test script declared")
	}

	if v, source, ok := nodeVersion(t, pkgDir, pkg); ok {
		f.version = VersionPrefixNode + v
		f.note("Node: version %s from %s", v, source)
	}

	return f.result(d.Name()), true
}

// nodeVersion checks .nvmrc, .node-version and engines.node in that order
func nodeVersion(t Target, pkgDir string, pkg *evidence.PackageJSON) (string, string, bool) {
	for _, pin := range []string{".nvmrc", ".node-version"} {
		if line, ok := t.Files.FirstLine(filepath.Join(pkgDir, pin)); ok {
			if v, ok := evidence.ExtractVersion(line); ok {
				return v, pin, true
			}
		}
	}
	if v, ok := evidence.ExtractVersion(pkg.NodeEngine()); ok {
		return v, "engines.node", true
	}
	return "", "", false
}

func existsUnder(dir string, names ...string) bool {
	for _, name := range names {
		if evidence.Exists(filepath.Join(dir, filepath.FromSlash(name))) {
			return true
		}
	}
	return false
}
