// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Shared fixtures for stack tests

package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/scanner"
	"github.com/sony-level/repo-analyzer/internal/stacks"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
}

// module returns the partitioned module at rel inside root
func module(t *testing.T, root, rel string) scanner.Module {
	t.Helper()
	modules, err := scanner.Partition(root)
	require.NoError(t, err)
	for _, m := range modules {
		if m.RelPath == rel {
			return m
		}
	}
	require.FailNowf(t, "module not found", "%s in %v", rel, modules)
	return scanner.Module{}
}

// classify runs the default arbitrator against the module at rel
func classify(t *testing.T, root, rel string) stacks.Classification {
	t.Helper()
	return stacks.NewArbitrator(evidence.NewReader(0), nil).Classify(module(t, root, rel))
}

// detect runs a single detector against the root module
func detect(t *testing.T, d stacks.Detector, root string) (stacks.Result, bool) {
	t.Helper()
	return d.Detect(stacks.Target{
		Module: module(t, root, "."),
		Files:  evidence.NewReader(0),
	})
}
