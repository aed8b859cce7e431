// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Module arbitration across detectors

package stacks

import (
	"github.com/charmbracelet/log"

	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/scanner"
)

// Arbitrator runs every detector against a module and keeps the best verdict
type Arbitrator struct {
	detectors []Detector
	files     *evidence.Reader
	logger    *log.Logger
}

// DefaultDetectors returns the detectors in their fixed run order. Ties are
// won by the earlier detector, so the order is part of the contract.
func DefaultDetectors() []Detector {
	return []Detector{
		NewGoDetector(),
		NewRubyDetector(),
		NewNodeDetector(),
		NewPythonDetector(),
		NewJavaDetector(),
	}
}

// NewArbitrator creates an arbitrator with all built-in detectors
func NewArbitrator(files *evidence.Reader, logger *log.Logger) *Arbitrator {
	return NewArbitratorWithDetectors(files, logger, DefaultDetectors()...)
}

// NewArbitratorWithDetectors creates an arbitrator with custom detectors
func NewArbitratorWithDetectors(files *evidence.Reader, logger *log.Logger, detectors ...Detector) *Arbitrator {
	if files == nil {
		files = evidence.NewReader(evidence.DefaultCacheSize)
	}
	if logger == nil {
		logger = discardLogger
	}
	return &Arbitrator{
		detectors: detectors,
		files:     files,
		logger:    logger,
	}
}

// Detectors returns the detectors in run order
func (a *Arbitrator) Detectors() []Detector {
	out := make([]Detector, len(a.detectors))
	copy(out, a.detectors)
	return out
}

// Classification is the arbitrated outcome for one module
type Classification struct {
	Module   scanner.Module
	Verdict  Verdict
	Detector string // Winning detector, empty when none fired

	// Candidates proposed by every detector that fired, not only the winner
	RuntimeVersions CandidateSet
	BuildCommands   CandidateSet
	TestCommands    CandidateSet

	RuntimeVersion string
	BuildCommand   string
	TestCommand    string

	Notes []string
}

// Classify runs the detectors in order. A later verdict replaces the
// current one only when its score is strictly greater.
func (a *Arbitrator) Classify(module scanner.Module) Classification {
	c := Classification{
		Module:  module,
		Verdict: DefaultVerdict(),
	}
	target := Target{Module: module, Files: a.files, Logger: a.logger}

	matched := false
	for _, detector := range a.detectors {
		result, ok := detector.Detect(target)
		if !ok {
			a.logger.Debug("detector abstained", "module", module.RelPath, "detector", detector.Name())
			continue
		}
		a.logger.Debug("detector matched", "module", module.RelPath, "detector", detector.Name(), "score", result.Verdict.Score)

		c.RuntimeVersions.Merge(result.RuntimeVersions)
		c.BuildCommands.Merge(result.BuildCommands)
		c.TestCommands.Merge(result.TestCommands)
		c.Notes = append(c.Notes, result.Notes...)

		if !matched || result.Verdict.Score > c.Verdict.Score {
			c.Verdict = result.Verdict
			c.Detector = result.Detector
			matched = true
		}
	}

	c.RuntimeVersion = c.RuntimeVersions.BestOr(Unknown)
	c.BuildCommand = c.BuildCommands.BestOr(Unknown)
	c.TestCommand = c.TestCommands.BestOr(Unknown)
	c.Notes = uniqueStrings(c.Notes)
	return c
}
