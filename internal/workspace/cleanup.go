// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Cleanup functionality

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cleanup removes the workspace directory unless keep is true
// Returns nil if keep is true or cleanup succeeds
func (w *Workspace) Cleanup() error {
	if w.keep {
		return nil
	}

	if !w.Exists() {
		return nil
	}

	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("failed to cleanup workspace %s: %w", w.Path, err)
	}

	// Try to remove the parent .rda-temp directory if it's empty
	tempDir := filepath.Join(w.BaseDir, TempDirPrefix)
	_ = os.Remove(tempDir) // Ignore error - directory might not be empty

	return nil
}

// CleanupStale removes workspaces older than maxAge, such as clones left
// behind by --keep or by a killed run. It returns how many were removed.
func CleanupStale(baseDir string, maxAge time.Duration) (int, error) {
	tempDir := filepath.Join(baseDir, TempDirPrefix)

	info, err := os.Stat(tempDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat temp directory %s: %w", tempDir, err)
	}
	if !info.IsDir() {
		return 0, nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read temp directory: %w", err)
	}

	now := time.Now()
	cleaned := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryInfo, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(entryInfo.ModTime()) >= maxAge {
			wsPath := filepath.Join(tempDir, entry.Name())
			if err := os.RemoveAll(wsPath); err == nil {
				cleaned++
			}
		}
	}

	// Try to remove the parent directory if empty
	_ = os.Remove(tempDir)

	return cleaned, nil
}
