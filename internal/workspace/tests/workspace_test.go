// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace tests

package workspace_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/internal/workspace"
)

var runIDPattern = regexp.MustCompile(`^rda-\d{8}-\d{4}-[0-9a-f]{8}$`)

func TestGenerateRunID(t *testing.T) {
	runID, err := workspace.GenerateRunID()
	if err != nil {
		t.Fatalf("GenerateRunID() error = %v", err)
	}

	if !runIDPattern.MatchString(runID) {
		t.Errorf("GenerateRunID() = %v, want format rda-YYYYMMDD-HHMM-xxxxxxxx", runID)
	}
	if !strings.HasPrefix(runID, workspace.RunIDPrefix+"-") {
		t.Errorf("GenerateRunID() = %v, want prefix %s-", runID, workspace.RunIDPrefix)
	}
}

func TestGenerateRunID_Uniqueness(t *testing.T) {
	const numGoroutines = 10
	const idsPerGoroutine = 20

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool)
	)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				runID, err := workspace.GenerateRunID()
				if err != nil {
					t.Errorf("GenerateRunID() error = %v", err)
					return
				}
				mu.Lock()
				if ids[runID] {
					t.Errorf("Duplicate run ID generated: %v", runID)
				}
				ids[runID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, numGoroutines*idsPerGoroutine)
}

func TestNew(t *testing.T) {
	base := t.TempDir()

	ws, err := workspace.New(&workspace.WorkspaceConfig{BaseDir: base})
	require.NoError(t, err)

	assert.True(t, ws.Exists())
	assert.Equal(t, base, ws.BaseDir)
	assert.Equal(t, filepath.Join(base, workspace.TempDirPrefix, ws.RunID), ws.Path)
	assert.Equal(t, filepath.Join(ws.Path, workspace.RepoSubdir), ws.RepoPath())
	assert.Regexp(t, runIDPattern, ws.RunID)
	assert.False(t, ws.ShouldKeep())
	assert.Contains(t, ws.String(), ws.RunID)
}

func TestNew_NilConfigUsesTempDir(t *testing.T) {
	ws, err := workspace.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Cleanup() })

	assert.Equal(t, os.TempDir(), ws.BaseDir)
	assert.True(t, ws.Exists())
}

func TestCleanup(t *testing.T) {
	base := t.TempDir()

	ws, err := workspace.New(&workspace.WorkspaceConfig{BaseDir: base})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(ws.RepoPath(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.RepoPath(), "go.mod"), []byte("module x\n"), 0o644))

	require.NoError(t, ws.Cleanup())
	assert.False(t, ws.Exists())
	// The empty temp parent goes too
	assert.NoDirExists(t, filepath.Join(base, workspace.TempDirPrefix))

	// Cleaning twice is harmless
	assert.NoError(t, ws.Cleanup())
}

func TestCleanup_Keep(t *testing.T) {
	base := t.TempDir()

	ws, err := workspace.New(&workspace.WorkspaceConfig{BaseDir: base, Keep: true})
	require.NoError(t, err)
	assert.True(t, ws.ShouldKeep())

	require.NoError(t, ws.Cleanup())
	assert.True(t, ws.Exists())

	ws.SetKeep(false)
	require.NoError(t, ws.Cleanup())
	assert.False(t, ws.Exists())
}

func TestCleanupStale(t *testing.T) {
	base := t.TempDir()

	stale, err := workspace.New(&workspace.WorkspaceConfig{BaseDir: base})
	require.NoError(t, err)
	fresh, err := workspace.New(&workspace.WorkspaceConfig{BaseDir: base})
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale.Path, old, old))

	cleaned, err := workspace.CleanupStale(base, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)
	assert.False(t, stale.Exists())
	assert.True(t, fresh.Exists())
}

func TestCleanupStale_MissingTempDir(t *testing.T) {
	cleaned, err := workspace.CleanupStale(t.TempDir(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, cleaned)
}
