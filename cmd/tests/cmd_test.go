/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/cmd"
	"github.com/sony-level/repo-analyzer/internal/workspace"
)

// isolate keeps user config files and leftover clones out of the test
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("TMPDIR", tmp)
	return tmp
}

func goRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cmd.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestAnalyze_UsageErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"neither source", []string{"analyze"}},
		{"both sources", []string{"analyze", "--path", ".", "--url", "https://github.com/user/repo"}},
		{"bad format", []string{"analyze", "--path", ".", "--format", "yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			assert.ErrorIs(t, err, cmd.ErrUsage)
			assert.Empty(t, stdout)
		})
	}
}

func TestAnalyze_UnknownFlag(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "analyze", "--path", ".", "--bogus")
	assert.ErrorContains(t, err, "unknown flag")

	_, _, err = run(t, "analyze", "extra-arg", "--path", ".")
	assert.Error(t, err)
}

func TestAnalyze_MissingPath(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "analyze", "--path", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestAnalyze_PathJSON(t *testing.T) {
	isolate(t)
	repo := goRepo(t)

	stdout, _, err := run(t, "analyze", "--path", repo)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, repo, doc["root"])
	languages := doc["languages"].([]any)
	require.NotEmpty(t, languages)
	assert.Equal(t, "go", languages[0].(map[string]any)["value"])
	assert.NotContains(t, doc, "modules")
}

func TestAnalyze_ModulesFlag(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "analyze", "--path", goRepo(t), "--modules")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc["modules"], 1)
}

func TestAnalyze_FormatFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("RDA_FORMAT", "text")

	stdout, _, err := run(t, "analyze", "--path", goRepo(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Repository analysis")
	assert.False(t, json.Valid([]byte(stdout)))
}

func TestAnalyze_FlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("RDA_FORMAT", "text")

	stdout, _, err := run(t, "analyze", "--path", goRepo(t), "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestAnalyze_ConfigFile(t *testing.T) {
	tmp := isolate(t)
	config := filepath.Join(tmp, "rda.yaml")
	require.NoError(t, os.WriteFile(config, []byte("format: text\nmodules: true\n"), 0o644))

	stdout, _, err := run(t, "--config", config, "analyze", "--path", goRepo(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Modules")

	_, _, err = run(t, "--config", filepath.Join(tmp, "missing.yaml"), "analyze", "--path", ".")
	assert.ErrorContains(t, err, "failed to read config")
}

func TestAnalyze_VerboseLogsToStderr(t *testing.T) {
	isolate(t)

	stdout, stderr, err := run(t, "analyze", "--path", goRepo(t), "-v")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stderr, "Repository partitioned")
}

func TestAnalyze_CheckToolsReportsMissingTool(t *testing.T) {
	isolate(t)
	repo := goRepo(t)
	t.Setenv("PATH", t.TempDir())

	stdout, stderr, err := run(t, "analyze", "--path", repo, "--check-tools")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Build tool not installed")
	assert.Contains(t, stderr, "https://go.dev/dl/")

	var doc struct {
		Toolchains struct {
			AllFound bool     `json:"all_found"`
			Missing  []string `json:"missing"`
		} `json:"toolchains"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.False(t, doc.Toolchains.AllFound)
	assert.Equal(t, []string{"go"}, doc.Toolchains.Missing)
}

// remote commits a Go repository and returns its file URL. Shallow
// clones over file:// need the git binary.
func remote(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := goRepo(t)
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(dir)
}

func TestAnalyze_URLClonesAndCleansUp(t *testing.T) {
	tmp := isolate(t)

	stdout, _, err := run(t, "analyze", "--url", remote(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"go-1.22"`)
	assert.NoDirExists(t, filepath.Join(tmp, workspace.TempDirPrefix))
}

func TestAnalyze_URLKeep(t *testing.T) {
	tmp := isolate(t)

	_, stderr, err := run(t, "analyze", "--url", remote(t), "--keep")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Clone kept")

	entries, err := os.ReadDir(filepath.Join(tmp, workspace.TempDirPrefix))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
