// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Stack detection types and interfaces

package stacks

import (
	"github.com/charmbracelet/log"

	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/scanner"
)

// Detector defines the interface for ecosystem detectors
type Detector interface {
	Name() string
	BaseScore() int
	// Detect classifies one module. It returns false when the ecosystem
	// marker is absent, in which case the Result must be ignored.
	Detect(target Target) (Result, bool)
}

// Target is the module under inspection plus the shared file reader
type Target struct {
	Module scanner.Module
	Files  *evidence.Reader
	Logger *log.Logger
}

// Verdict is one detector's classification proposal for a module
type Verdict struct {
	Language     string `json:"language"`
	Framework    string `json:"framework"`
	BuildTool    string `json:"build_tool"`
	TestTool     string `json:"test_tool"`
	ArtifactType string `json:"artifact_type"`
	Score        int    `json:"score"`
}

// Result is what a single detector invocation produces
type Result struct {
	Detector        string
	Verdict         Verdict
	RuntimeVersions CandidateSet
	BuildCommands   CandidateSet
	TestCommands    CandidateSet
	Notes           []string
}

// Base scores reflect how unambiguous each ecosystem marker is
const (
	BaseScoreGo     = 70
	BaseScoreRuby   = 65
	BaseScoreNode   = 60
	BaseScorePython = 60
	BaseScoreJava   = 60
)

// Stack names
const (
	StackGo     = "go"
	StackRuby   = "ruby"
	StackNode   = "node"
	StackPython = "python"
	StackJava   = "java"
)

// Placeholder values that never enter a tally
const (
	Unknown = "unknown"
	None    = "none"
)

// IsPlaceholder reports whether a value carries no information
func IsPlaceholder(value string) bool {
	return value == "" || value == Unknown || value == None
}

// DefaultVerdict is used for modules no detector recognizes
func DefaultVerdict() Verdict {
	return Verdict{
		Language:     Unknown,
		Framework:    None,
		BuildTool:    Unknown,
		TestTool:     Unknown,
		ArtifactType: Unknown,
	}
}

// Runtime version prefixes, one per ecosystem
const (
	VersionPrefixGo     = "go-"
	VersionPrefixRuby   = "ruby-"
	VersionPrefixNode   = "node-"
	VersionPrefixPython = "python-"
	VersionPrefixJava   = "java-"
)

// VersionPrefixes lists every known runtime version prefix
var VersionPrefixes = []string{
	VersionPrefixGo,
	VersionPrefixRuby,
	VersionPrefixNode,
	VersionPrefixPython,
	VersionPrefixJava,
}
