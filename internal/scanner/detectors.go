// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Directory pruning and file name matching

package scanner

import (
	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs contains directories that are never entered
var skipDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"build":            true,
	"dist":             true,
	"out":              true,
	"target":           true,
	".venv":            true,
	"venv":             true,
	"env":              true,
	"__pycache__":      true,
	".tox":             true,
	".mypy_cache":      true,
	".pytest_cache":    true,
	".idea":            true,
	".vscode":          true,
	".gradle":          true,
	".mvn":             true,
	".next":            true,
	".nuxt":            true,
	"coverage":         true,
	".cache":           true,
	".rda-temp":        true,
}

// ShouldSkipDir checks if a directory should be skipped during scanning
func ShouldSkipDir(name string) bool {
	return skipDirs[name]
}

// IsManifest reports whether a file name starts a module
func IsManifest(name string) bool {
	return manifestNames[name]
}

// MatchAny reports whether a base name matches any of the glob patterns
func MatchAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// IsDockerfile checks if a base name belongs to the Dockerfile family
func IsDockerfile(name string) bool {
	return MatchAny(name, DockerfilePatterns)
}

// IsComposeFile checks if a base name is a docker compose file
func IsComposeFile(name string) bool {
	return MatchAny(name, ComposePatterns)
}

// IsEnvFile checks if a base name is a dotenv file
func IsEnvFile(name string) bool {
	return MatchAny(name, EnvPatterns)
}
