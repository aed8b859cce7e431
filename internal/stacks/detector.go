// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Base detector functionality

package stacks

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	name      string
	baseScore int
}

// NewBaseDetector creates a new base detector
func NewBaseDetector(name string, baseScore int) BaseDetector {
	return BaseDetector{name: name, baseScore: baseScore}
}

// Name returns the detector name
func (d BaseDetector) Name() string {
	return d.name
}

// BaseScore returns the score granted when the marker is present
func (d BaseDetector) BaseScore() int {
	return d.baseScore
}

var discardLogger = log.New(io.Discard)

// Helper methods for detectors

func (t Target) logger() *log.Logger {
	if t.Logger == nil {
		return discardLogger
	}
	return t.Logger
}

// path joins elements onto the module directory
func (t Target) path(elem ...string) string {
	return filepath.Join(append([]string{t.Module.Path}, elem...)...)
}

// exists checks if a file or directory exists inside the module
func (t Target) exists(elem ...string) bool {
	return evidence.Exists(t.path(elem...))
}

// existsAny checks if any of the module-relative paths exists
func (t Target) existsAny(paths ...string) bool {
	for _, p := range paths {
		if t.exists(p) {
			return true
		}
	}
	return false
}

// isDir checks if a directory exists inside the module
func (t Target) isDir(elem ...string) bool {
	return evidence.IsDir(t.path(elem...))
}

// read returns the content of a module file
func (t Target) read(elem ...string) ([]byte, bool) {
	return t.Files.Read(t.path(elem...))
}

// readString returns the content of a module file as a string
func (t Target) readString(elem ...string) (string, bool) {
	return t.Files.ReadString(t.path(elem...))
}

// find returns module files within depth matching the predicate
func (t Target) find(depth, limit int, match func(relPath, name string) bool) []string {
	return evidence.FindFiles(t.Module.Path, depth, limit, match)
}

// has reports whether any module file within depth matches
func (t Target) has(depth int, match func(relPath, name string) bool) bool {
	return evidence.HasFile(t.Module.Path, depth, match)
}

// named matches files by exact base name
func named(names ...string) func(relPath, name string) bool {
	return func(_, name string) bool {
		for _, n := range names {
			if name == n {
				return true
			}
		}
		return false
	}
}

// finding accumulates evidence while a detector runs
type finding struct {
	verdict Verdict
	version string
	build   string
	test    string
	notes   []string
}

func newFinding(base int, verdict Verdict) *finding {
	verdict.Score = base
	return &finding{verdict: verdict}
}

// add adjusts the score and records why
func (f *finding) add(points int, format string, args ...any) {
	f.verdict.Score += points
	f.note(format, args...)
}

// note records a piece of evidence
func (f *finding) note(format string, args ...any) {
	f.notes = append(f.notes, fmt.Sprintf(format, args...))
}

// result registers every proposal with the final verdict score
func (f *finding) result(detector string) Result {
	r := Result{
		Detector: detector,
		Verdict:  f.verdict,
		Notes:    uniqueStrings(f.notes),
	}
	r.RuntimeVersions.Add(f.version, f.verdict.Score)
	r.BuildCommands.Add(f.build, f.verdict.Score)
	r.TestCommands.Add(f.test, f.verdict.Score)
	return r
}

// rule pairs a predicate with the tag it yields. Rule lists are evaluated
// in order and the first match wins.
type rule[T any] struct {
	tag   string
	match func(T) bool
}

// firstMatch returns the tag of the first rule matching in
func firstMatch[T any](rules []rule[T], in T) (string, bool) {
	for _, r := range rules {
		if r.match(in) {
			return r.tag, true
		}
	}
	return "", false
}

// uniqueStrings removes exact duplicates, keeping the first occurrence
func uniqueStrings(slice []string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, s := range slice {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}
