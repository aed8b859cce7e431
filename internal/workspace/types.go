// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// workspace types/constants

package workspace

const (
	TempDirPrefix = ".rda-temp"
	RunIDPrefix   = "rda"
	RepoSubdir    = "repo"
)

// Workspace is the temporary clone directory of a single run
type Workspace struct {
	RunID   string
	Path    string
	BaseDir string
	keep    bool
}

// WorkspaceConfig holds configuration for workspace creation
type WorkspaceConfig struct {
	BaseDir string // Defaults to os.TempDir()
	Keep    bool
}
