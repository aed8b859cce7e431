// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Cached file access shared by all detectors of a run

package evidence

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sony-level/repo-analyzer/internal/scanner"
)

const (
	// DefaultCacheSize is the number of file contents kept in memory
	DefaultCacheSize = 512
	// MaxFileSize caps how much of a single file is read
	MaxFileSize = 1 << 20
)

// Reader reads evidence files. Contents are cached so that detectors
// probing the same manifest do not hit the disk twice.
type Reader struct {
	cache *lru.Cache[string, []byte]
}

// NewReader creates a reader with a cache of the given size
func NewReader(size int) *Reader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		// Only possible for a non-positive size
		panic(err)
	}
	return &Reader{cache: cache}
}

// Read returns the content of a regular file. Missing, unreadable or
// non-regular files report false.
func (r *Reader) Read(path string) ([]byte, bool) {
	if data, ok := r.cache.Get(path); ok {
		return data, true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize))
	if err != nil {
		return nil, false
	}

	r.cache.Add(path, data)
	return data, true
}

// ReadString returns the content of a file as a string
func (r *Reader) ReadString(path string) (string, bool) {
	data, ok := r.Read(path)
	if !ok {
		return "", false
	}
	return string(data), true
}

// Contains reports whether the file exists and contains substr
func (r *Reader) Contains(path, substr string) bool {
	content, ok := r.ReadString(path)
	return ok && strings.Contains(content, substr)
}

// ContainsFold is Contains with case-insensitive matching
func (r *Reader) ContainsFold(path, substr string) bool {
	content, ok := r.ReadString(path)
	return ok && strings.Contains(strings.ToLower(content), strings.ToLower(substr))
}

// FirstLine returns the first non-empty, trimmed line of a file
func (r *Reader) FirstLine(path string) (string, bool) {
	content, ok := r.ReadString(path)
	if !ok {
		return "", false
	}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, true
		}
	}
	return "", false
}

// Exists checks if a path exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FindFiles returns files under dir, at most maxDepth levels deep, for
// which match returns true. At most limit paths are returned (0 = no limit).
func FindFiles(dir string, maxDepth, limit int, match func(relPath, name string) bool) []string {
	var found []string
	_ = scanner.Walk(dir, maxDepth, func(path, relPath string, d fs.DirEntry) error {
		if match(filepath.ToSlash(relPath), d.Name()) {
			found = append(found, path)
			if limit > 0 && len(found) >= limit {
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found
}

// HasFile reports whether FindFiles would return at least one path
func HasFile(dir string, maxDepth int, match func(relPath, name string) bool) bool {
	return len(FindFiles(dir, maxDepth, 1, match)) > 0
}

// WalkUp calls fn for dir and then for each parent directory, at most
// maxHops steps above dir. The walk never leaves stop (when stop is an
// ancestor of dir) and never goes past the filesystem root. It returns
// true as soon as fn does.
func WalkUp(dir, stop string, maxHops int, fn func(dir string) bool) bool {
	current := filepath.Clean(dir)
	bounded := stop != "" && isWithin(filepath.Clean(stop), current)
	stop = filepath.Clean(stop)

	for hop := 0; hop <= maxHops; hop++ {
		if fn(current) {
			return true
		}
		if bounded && current == stop {
			return false
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Filesystem root
			return false
		}
		current = parent
	}
	return false
}

// isWithin reports whether path is base or a descendant of base
func isWithin(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
