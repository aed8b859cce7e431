// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scanner tests

package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/internal/scanner"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func relPaths(modules []scanner.Module) []string {
	out := make([]string, 0, len(modules))
	for _, m := range modules {
		out = append(out, m.RelPath)
	}
	return out
}

func TestPartition_NoManifestFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# hello")
	writeFile(t, root, "src/main.c", "int main(){}")

	modules, err := scanner.Partition(root)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, scanner.RootModulePath, modules[0].RelPath)
	assert.True(t, modules[0].IsRoot())

	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, modules[0].Path)
	assert.Equal(t, abs, modules[0].Root)
}

func TestPartition_OneModulePerDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/x\n")
	writeFile(t, root, "web/package.json", "{}")
	writeFile(t, root, "api/pyproject.toml", "")
	writeFile(t, root, "api/requirements.txt", "flask\n")
	writeFile(t, root, "api/setup.py", "")
	writeFile(t, root, "svc/pom.xml", "<project/>")

	modules, err := scanner.Partition(root)
	require.NoError(t, err)
	// Lexical walk order: api/ sorts before the root go.mod
	assert.Equal(t, []string{"api", ".", "svc", "web"}, relPaths(modules))
}

func TestPartition_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{}")
	writeFile(t, root, "node_modules/left-pad/package.json", "{}")
	writeFile(t, root, "vendor/github.com/x/y/go.mod", "module y\n")
	writeFile(t, root, ".git/hooks/pom.xml", "")
	writeFile(t, root, "build/gen/Gemfile", "")

	modules, err := scanner.Partition(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, relPaths(modules))
}

func TestPartition_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"c", "a", "b/d", "b"} {
		writeFile(t, root, dir+"/Gemfile", "")
	}

	first, err := scanner.Partition(root)
	require.NoError(t, err)
	second, err := scanner.Partition(root)
	require.NoError(t, err)
	assert.Equal(t, relPaths(first), relPaths(second))
	assert.Equal(t, []string{"a", "b", "b/d", "c"}, relPaths(first))
}

func TestPartition_Errors(t *testing.T) {
	_, err := scanner.Partition(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := writeFile(t, t.TempDir(), "file.txt", "x")
	_, err = scanner.Partition(file)
	assert.ErrorIs(t, err, scanner.ErrNotDirectory)

	_, err = scanner.Partition("")
	assert.Error(t, err)
}

func TestWalk_DepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "")
	writeFile(t, root, "one/b.txt", "")
	writeFile(t, root, "one/two/c.txt", "")

	var seen []string
	err := scanner.Walk(root, 2, func(_, relPath string, _ os.DirEntry) error {
		seen = append(seen, filepath.ToSlash(relPath))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "one/b.txt"}, seen)
}

func TestFileMatchers(t *testing.T) {
	tests := []struct {
		name       string
		dockerfile bool
		compose    bool
		env        bool
	}{
		{"Dockerfile", true, false, false},
		{"Dockerfile.prod", true, false, false},
		{"api.Dockerfile", true, false, false},
		{"Containerfile", true, false, false},
		{"docker-compose.yml", false, true, false},
		{"docker-compose.override.yaml", false, true, false},
		{"compose.yaml", false, true, false},
		{".env", false, false, true},
		{".env.local", false, false, true},
		{"main.go", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dockerfile, scanner.IsDockerfile(tt.name))
			assert.Equal(t, tt.compose, scanner.IsComposeFile(tt.name))
			assert.Equal(t, tt.env, scanner.IsEnvFile(tt.name))
		})
	}
}

func TestShouldSkipDir(t *testing.T) {
	for _, name := range []string{".git", "node_modules", "vendor", "build", "dist", ".venv", ".rda-temp"} {
		assert.True(t, scanner.ShouldSkipDir(name), name)
	}
	for _, name := range []string{"src", "cmd", "internal", "app"} {
		assert.False(t, scanner.ShouldSkipDir(name), name)
	}
}

func TestFindContainerFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Dockerfile", "FROM scratch")
	writeFile(t, root, "deploy/docker-compose.yml", "services: {}")
	writeFile(t, root, "node_modules/x/Dockerfile", "FROM node")

	files, err := scanner.FindContainerFiles(root, 0)
	require.NoError(t, err)
	require.Len(t, files.Dockerfiles, 1)
	require.Len(t, files.ComposeFiles, 1)
	assert.True(t, files.HasDockerfile())
	assert.True(t, filepath.IsAbs(files.Dockerfiles[0]))
	assert.Len(t, files.All(), 2)

	empty, err := scanner.FindContainerFiles(t.TempDir(), 0)
	require.NoError(t, err)
	assert.False(t, empty.HasDockerfile())
	assert.NotNil(t, empty.Dockerfiles)
}
