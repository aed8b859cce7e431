// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Module partitioning and container file probes

package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkFunc is called for every regular file reached by Walk
type WalkFunc func(path, relPath string, d fs.DirEntry) error

// Walk visits every file under root in lexical order, pruning skipped
// directories. A maxDepth of 0 means unlimited depth; depth 1 is the
// root's own files. Unreadable entries are ignored.
func Walk(root string, maxDepth int, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Continue scanning
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		depth := 0
		if relPath != "." {
			depth = strings.Count(relPath, string(os.PathSeparator)) + 1
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if ShouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if maxDepth > 0 && depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if maxDepth > 0 && depth > maxDepth {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(path, relPath, d)
	})
}

// validateRoot checks that root exists and is a directory
func validateRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("root path cannot be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("failed to access root path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, absRoot)
	}
	return absRoot, nil
}

// Partition splits the repository into modules, one per directory holding
// a manifest file. Directories are returned in discovery order and each
// appears once. A repository without manifests is a single root module.
func Partition(root string) ([]Module, error) {
	absRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	var modules []Module
	seen := make(map[string]bool)

	err = Walk(absRoot, 0, func(path, relPath string, d fs.DirEntry) error {
		if !IsManifest(d.Name()) {
			return nil
		}
		dir := filepath.Dir(path)
		if seen[dir] {
			return nil
		}
		seen[dir] = true
		modules = append(modules, newModule(absRoot, dir))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	if len(modules) == 0 {
		modules = append(modules, newModule(absRoot, absRoot))
	}
	return modules, nil
}

func newModule(root, dir string) Module {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "" {
		rel = RootModulePath
	}
	return Module{
		Path:    dir,
		RelPath: filepath.ToSlash(rel),
		Root:    root,
	}
}

// FindContainerFiles lists Dockerfiles and compose files under dir
func FindContainerFiles(dir string, maxDepth int) (*ContainerFiles, error) {
	absDir, err := validateRoot(dir)
	if err != nil {
		return nil, err
	}

	result := &ContainerFiles{
		Dockerfiles:  []string{},
		ComposeFiles: []string{},
	}
	err = Walk(absDir, maxDepth, func(path, _ string, d fs.DirEntry) error {
		switch name := d.Name(); {
		case IsDockerfile(name):
			result.Dockerfiles = append(result.Dockerfiles, path)
		case IsComposeFile(name):
			result.ComposeFiles = append(result.ComposeFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("container scan failed: %w", err)
	}
	return result, nil
}
