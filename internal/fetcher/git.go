// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Git cloning implementation

package fetcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// fetchFromGit clones a repository. The clone follows ctx, so an
// interrupted run stops cloning and the caller can still clean up.
func fetchFromGit(ctx context.Context, config *FetchConfig, sourceType string) (*FetchResult, error) {
	logger := config.Logger

	// Normalize to HTTPS URL for cloning
	cloneURL := NormalizeGitURL(config.Source)
	if repoInfo, err := ParseGitURL(config.Source); err == nil {
		logger.Info("Cloning repository", "owner", repoInfo.Owner, "repo", repoInfo.Repo, "platform", repoInfo.Platform)
	} else {
		logger.Info("Cloning repository", "url", cloneURL)
	}
	logger.Debug("Clone target", "url", cloneURL, "destination", config.Destination)

	cloneOpts := &git.CloneOptions{
		URL: cloneURL,
	}

	// Use shallow clone if requested
	if config.ShallowClone {
		cloneOpts.Depth = 1
		cloneOpts.SingleBranch = true
		cloneOpts.ReferenceName = plumbing.HEAD
	}

	if _, err := git.PlainCloneContext(ctx, config.Destination, false, cloneOpts); err != nil {
		// Clean up partial clone on failure
		_ = os.RemoveAll(config.Destination)
		return nil, fmt.Errorf("%w: %s: %w", ErrCloneFailed, cloneURL, err)
	}

	fileCount, byteCount, err := countFiles(config.Destination)
	if err != nil {
		// Non-fatal
		logger.Warn("Could not count cloned files", "err", err)
	}
	logger.Debug("Clone complete", "files", fileCount, "bytes", byteCount)

	return &FetchResult{
		Source:      config.Source,
		CloneURL:    cloneURL,
		Destination: config.Destination,
		SourceType:  sourceType,
		FileCount:   fileCount,
		ByteCount:   byteCount,
	}, nil
}

// countFiles counts files and total bytes in a directory, skipping .git
func countFiles(dir string) (int, int64, error) {
	var fileCount int
	var byteCount int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fileCount++
		byteCount += info.Size()
		return nil
	})

	return fileCount, byteCount, err
}
