// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Fetcher types and constants

package fetcher

import (
	"errors"
	"regexp"

	"github.com/charmbracelet/log"
)

// Source type constants
const (
	SourceTypeUnknown = "unknown"
	SourceTypeGitHub  = "github"
	SourceTypeGitLab  = "gitlab"
	SourceTypeGit     = "git"
	SourceTypeLocal   = "local"
)

// Sentinel errors
var (
	ErrUnknownSource = errors.New("unknown source type")
	ErrCloneFailed   = errors.New("failed to clone repository")
	ErrNotDirectory  = errors.New("path is not a directory")
)

// Common patterns for GitHub URLs
var (
	// HTTPS: https://github.com/user/repo or https://github.com/user/repo.git
	githubHTTPSPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	// SSH: git@github.com:user/repo.git
	githubSSHPattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	// HTTPS: https://gitlab.com/user/repo or https://gitlab.com/user/repo.git
	gitlabHTTPSPattern = regexp.MustCompile(`^https?://gitlab\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	// SSH: git@gitlab.com:user/repo.git
	gitlabSSHPattern = regexp.MustCompile(`^git@gitlab\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	// Any other remote: scheme URLs or scp-like user@host:path
	gitURLPattern = regexp.MustCompile(`^(?:(?:https?|ssh|git|file)://\S+|[\w.\-]+@[\w.\-]+:\S+)$`)
)

// FetchConfig holds configuration for cloning a repository
type FetchConfig struct {
	Source       string      // Repository URL
	Destination  string      // Target directory (workspace.RepoPath())
	Logger       *log.Logger // Progress logger (optional)
	ShallowClone bool        // Use shallow clone (depth=1)
}

// FetchResult contains the result of a fetch operation
type FetchResult struct {
	Source      string // Original source
	CloneURL    string // URL actually cloned
	Destination string // Where the repository was cloned
	SourceType  string // Type of source (github, gitlab, git)
	FileCount   int    // Number of files in the working tree
	ByteCount   int64  // Total bytes in the working tree
}

// GitRepoInfo contains parsed git repository information
type GitRepoInfo struct {
	Owner    string
	Repo     string
	URL      string
	Platform string // "github" or "gitlab"
}
