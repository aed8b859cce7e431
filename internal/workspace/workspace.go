// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Main workspace logic

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID creates a run ID with format rda-YYYYMMDD-HHMM-<8 hex chars>
func GenerateRunID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}
	suffix := strings.ReplaceAll(id.String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", RunIDPrefix, time.Now().Format("20060102-1504"), suffix), nil
}

// New creates a new workspace with the given configuration.
// If config is nil, the system temp directory is used as base.
func New(config *WorkspaceConfig) (*Workspace, error) {
	if config == nil {
		config = &WorkspaceConfig{}
	}
	baseDir := config.BaseDir
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	runID, err := GenerateRunID()
	if err != nil {
		return nil, err
	}

	workspacePath := filepath.Join(baseDir, TempDirPrefix, runID)
	if err := os.MkdirAll(workspacePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", workspacePath, err)
	}

	return &Workspace{
		RunID:   runID,
		Path:    workspacePath,
		BaseDir: baseDir,
		keep:    config.Keep,
	}, nil
}

// RepoPath returns the clone destination inside the workspace
func (w *Workspace) RepoPath() string {
	return filepath.Join(w.Path, RepoSubdir)
}

// Exists checks if the workspace directory exists
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SetKeep sets whether to preserve the workspace on cleanup
func (w *Workspace) SetKeep(keep bool) {
	w.keep = keep
}

// ShouldKeep returns whether the workspace should be preserved
func (w *Workspace) ShouldKeep() bool {
	return w.keep
}

// String returns a string representation of the workspace
func (w *Workspace) String() string {
	return fmt.Sprintf("Workspace{RunID: %s, Path: %s, Keep: %v}", w.RunID, w.Path, w.keep)
}
