// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Package manager and runtime version policies

package aggregate

import (
	"strings"

	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/stacks"
)

// packageManagers maps a build tool to the package manager it implies.
// Build tools missing here have no package manager.
var packageManagers = map[string]string{
	"go":      "go-modules",
	"bundler": "bundler",
	"npm":     "npm",
	"yarn":    "yarn",
	"pnpm":    "pnpm",
	"pip":     "pip",
	"poetry":  "poetry",
	"pipenv":  "pipenv",
	"uv":      "uv",
	"maven":   "maven",
	"gradle":  "gradle",
}

// PackageManagerFor returns the package manager of a build tool, or
// "unknown" when the build tool is not on the allow-list
func PackageManagerFor(buildTool string) string {
	if pm, ok := packageManagers[buildTool]; ok {
		return pm
	}
	return stacks.Unknown
}

// AcceptRuntimeVersion reports whether a runtime version carries a known
// ecosystem prefix followed by a dotted numeric version
func AcceptRuntimeVersion(version string) bool {
	for _, prefix := range stacks.VersionPrefixes {
		if rest, ok := strings.CutPrefix(version, prefix); ok {
			return evidence.IsNumericVersion(rest)
		}
	}
	return false
}

// floor clamps negative weights to zero
func floor(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
