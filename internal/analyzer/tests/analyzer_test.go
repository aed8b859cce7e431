// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Analysis pipeline tests

package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/internal/aggregate"
	"github.com/sony-level/repo-analyzer/internal/analyzer"
	"github.com/sony-level/repo-analyzer/internal/scanner"
	"github.com/sony-level/repo-analyzer/internal/stacks"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// monorepo lays out two Go services and a React front end
func monorepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "api/go.mod", "module example.com/api\n\ngo 1.22\n")
	writeFile(t, root, "api/main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "api/Dockerfile", "FROM golang:1.22\nEXPOSE 8080\n")
	writeFile(t, root, "web/package.json", `{"name":"web","dependencies":{"react":"^18.2.0"}}`)
	writeFile(t, root, "worker/go.mod", "module example.com/worker\n\ngo 1.22\n")
	writeFile(t, root, "docker-compose.yml", "services:\n  api:\n    build: ./api\n")
	return root
}

func sum(entries []aggregate.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Score
	}
	return total
}

func TestAnalyze_MultiModule(t *testing.T) {
	root := monorepo(t)

	report, err := analyzer.Analyze(context.Background(), root, analyzer.Options{})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(report.Root))
	require.Len(t, report.Summary.Modules, 3)
	assert.Equal(t, "api", report.Summary.Modules[0].Path)
	assert.Equal(t, "web", report.Summary.Modules[1].Path)
	assert.Equal(t, "worker", report.Summary.Modules[2].Path)

	api := report.Summary.Modules[0]
	assert.Equal(t, "go", api.Language)
	assert.Equal(t, "go-1.22", api.RuntimeVersion)
	assert.Equal(t, "go-modules", api.PackageManager)
	assert.Equal(t, []string{"8080"}, api.Ports)
	assert.Len(t, api.Dockerfiles, 1)

	web := report.Summary.Modules[1]
	assert.Equal(t, "javascript", web.Language)
	assert.Equal(t, "react", web.Framework)

	// Root container probes cover the whole tree
	assert.True(t, report.Containers.HasDockerfile())
	assert.Len(t, report.Containers.ComposeFiles, 1)
}

func TestAnalyze_TalliesFollowModuleScores(t *testing.T) {
	root := monorepo(t)

	report, err := analyzer.Analyze(context.Background(), root, analyzer.Options{})
	require.NoError(t, err)
	s := report.Summary

	total := 0
	goScore := 0
	for _, m := range s.Modules {
		total += max(m.Score, 0)
		if m.Language == "go" {
			goScore += m.Score
		}
	}
	assert.Equal(t, total, sum(s.Languages))
	assert.Equal(t, total, sum(s.BuildTools))
	assert.Equal(t, goScore, s.Languages[0].Score)
	assert.Equal(t, "go", s.Languages[0].Value)

	// The port carries the weight of the module declaring it
	assert.Equal(t, []aggregate.Entry{{Value: "8080", Score: s.Modules[0].Score}}, s.Ports)
}

func TestAnalyze_NotesDeduplicated(t *testing.T) {
	root := monorepo(t)

	report, err := analyzer.Analyze(context.Background(), root, analyzer.Options{})
	require.NoError(t, err)

	count := 0
	for _, n := range report.Summary.Notes {
		if n == "Go: go.mod present" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, report.Summary.Modules[2].Notes, "Go: go.mod present")
}

func TestAnalyze_Idempotent(t *testing.T) {
	root := monorepo(t)

	first, err := analyzer.Analyze(context.Background(), root, analyzer.Options{})
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), root, analyzer.Options{CacheSize: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Containers, second.Containers)
}

func TestAnalyze_EmptyRepository(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# nothing to build\n")

	report, err := analyzer.Analyze(context.Background(), root, analyzer.Options{})
	require.NoError(t, err)

	require.Len(t, report.Summary.Modules, 1)
	assert.Equal(t, scanner.RootModulePath, report.Summary.Modules[0].Path)
	assert.Equal(t, stacks.Unknown, report.Summary.Modules[0].Language)
	assert.Empty(t, report.Summary.Languages)
	assert.Empty(t, report.Summary.Ports)
	assert.False(t, report.Containers.HasDockerfile())
}

func TestAnalyze_CustomDetectors(t *testing.T) {
	root := monorepo(t)

	report, err := analyzer.Analyze(context.Background(), root, analyzer.Options{
		Detectors: []stacks.Detector{stacks.NewNodeDetector()},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"unknown", "javascript", "unknown"}, []string{
		report.Summary.Modules[0].Language,
		report.Summary.Modules[1].Language,
		report.Summary.Modules[2].Language,
	})
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := analyzer.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing"), analyzer.Options{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.Analyze(ctx, monorepo(t), analyzer.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
