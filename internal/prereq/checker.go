// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Toolchain availability checker

package prereq

import (
	"os/exec"
	"strings"
)

// Checker verifies that build tools are installed
type Checker struct {
	tools    map[string]*Tool
	lookPath func(string) (string, error)
}

// NewChecker creates a checker for the default toolchains
func NewChecker() *Checker {
	return NewCheckerWithTools(DefaultTools())
}

// NewCheckerWithTools creates a checker with custom tools
func NewCheckerWithTools(tools map[string]*Tool) *Checker {
	return &Checker{
		tools:    tools,
		lookPath: exec.LookPath,
	}
}

// WithLookPath replaces the PATH lookup, mainly for tests
func (c *Checker) WithLookPath(fn func(string) (string, error)) *Checker {
	c.lookPath = fn
	return c
}

// CheckTool checks if a build tool's executable is in PATH. Nothing is run.
func (c *Checker) CheckTool(name string) CheckResult {
	result := CheckResult{Name: name}

	tool, ok := c.tools[strings.ToLower(name)]
	if !ok {
		// Unknown tool - try direct command check
		result.Path, result.Found = c.which(name)
		return result
	}

	for _, cmd := range append([]string{tool.Command}, tool.Alternatives...) {
		if path, found := c.which(cmd); found {
			result.Found = true
			result.Path = path
			return result
		}
	}
	return result
}

// CheckMultiple checks each distinct name once, skipping placeholders
func (c *Checker) CheckMultiple(names []string) *CheckSummary {
	summary := NewCheckSummary()
	seen := make(map[string]bool)

	for _, name := range names {
		if name == "" || name == "unknown" || seen[name] {
			continue
		}
		seen[name] = true
		summary.AddResult(c.CheckTool(name))
	}
	return summary
}

// GetInstallGuide returns installation instructions for a tool
func (c *Checker) GetInstallGuide(name string) string {
	tool, ok := c.tools[strings.ToLower(name)]
	if !ok {
		return "No installation guide available for " + name
	}
	return tool.InstallGuide
}

func (c *Checker) which(cmd string) (string, bool) {
	path, err := c.lookPath(cmd)
	if err != nil {
		return "", false
	}
	return path, true
}
