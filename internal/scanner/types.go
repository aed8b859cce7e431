// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scanner types and constants

package scanner

import "errors"

// ErrNotDirectory is returned when the scan root is not a directory
var ErrNotDirectory = errors.New("root path is not a directory")

// Manifest file names that mark a module directory
const (
	ManifestGoMod        = "go.mod"
	ManifestGemfile      = "Gemfile"
	ManifestPackageJSON  = "package.json"
	ManifestPyProject    = "pyproject.toml"
	ManifestSetupPy      = "setup.py"
	ManifestRequirements = "requirements.txt"
	ManifestPom          = "pom.xml"
	ManifestGradle       = "build.gradle"
	ManifestGradleKts    = "build.gradle.kts"
)

// RootModulePath is the relative path of the repository root module
const RootModulePath = "."

// manifestNames is the fixed set of files that start a module
var manifestNames = map[string]bool{
	ManifestGoMod:        true,
	ManifestGemfile:      true,
	ManifestPackageJSON:  true,
	ManifestPyProject:    true,
	ManifestSetupPy:      true,
	ManifestRequirements: true,
	ManifestPom:          true,
	ManifestGradle:       true,
	ManifestGradleKts:    true,
}

// Glob patterns for container descriptors (matched against base names)
var (
	DockerfilePatterns = []string{"Dockerfile", "Dockerfile.*", "*.Dockerfile", "Containerfile"}
	ComposePatterns    = []string{
		"docker-compose.yml", "docker-compose.yaml",
		"docker-compose.*.yml", "docker-compose.*.yaml",
		"compose.yml", "compose.yaml",
	}
	EnvPatterns = []string{".env", ".env.*"}
)

// Module is one independently buildable directory of the repository
type Module struct {
	Path    string `json:"-"`    // Absolute directory path
	RelPath string `json:"path"` // Path relative to Root, "." for the root itself
	Root    string `json:"-"`    // Absolute repository root
}

// IsRoot reports whether the module is the repository root
func (m Module) IsRoot() bool {
	return m.RelPath == RootModulePath
}

// ContainerFiles lists container descriptors found under a directory
type ContainerFiles struct {
	Dockerfiles  []string `json:"dockerfiles"`
	ComposeFiles []string `json:"compose_files"`
}

// HasDockerfile reports whether any Dockerfile-family file was found
func (c *ContainerFiles) HasDockerfile() bool {
	return len(c.Dockerfiles) > 0
}

// All returns dockerfiles followed by compose files
func (c *ContainerFiles) All() []string {
	all := make([]string, 0, len(c.Dockerfiles)+len(c.ComposeFiles))
	all = append(all, c.Dockerfiles...)
	return append(all, c.ComposeFiles...)
}
