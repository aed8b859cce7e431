// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// JSON report document

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sony-level/repo-analyzer/internal/aggregate"
	"github.com/sony-level/repo-analyzer/internal/analyzer"
	"github.com/sony-level/repo-analyzer/internal/prereq"
)

// Document is the output of one analysis. Array fields are never null.
type Document struct {
	Root            string                   `json:"root"`
	HasDockerfile   bool                     `json:"has_dockerfile"`
	Dockerfiles     []string                 `json:"dockerfiles"`
	ComposeFiles    []string                 `json:"compose_files"`
	Languages       []aggregate.Entry        `json:"languages"`
	Frameworks      []aggregate.Entry        `json:"frameworks"`
	BuildTools      []aggregate.Entry        `json:"build_tools"`
	TestTools       []aggregate.Entry        `json:"test_tools"`
	ArtifactTypes   []aggregate.Entry        `json:"artifact_types"`
	RuntimeVersions []aggregate.Entry        `json:"runtime_versions"`
	BuildCommands   []aggregate.Entry        `json:"build_commands"`
	TestCommands    []aggregate.Entry        `json:"test_commands"`
	PackageManagers []aggregate.Entry        `json:"package_managers"`
	Ports           []aggregate.Entry        `json:"ports"`
	Notes           []string                 `json:"notes"`
	Modules         []aggregate.ModuleRecord `json:"modules,omitempty"`
	Toolchains      *prereq.CheckSummary     `json:"toolchains,omitempty"`
}

// Options selects the optional parts of the document
type Options struct {
	IncludeModules bool
	Toolchains     *prereq.CheckSummary
}

// NewDocument builds the document for a finished analysis
func NewDocument(r *analyzer.Report, opts Options) *Document {
	s := r.Summary
	doc := &Document{
		Root:            r.Root,
		HasDockerfile:   r.Containers != nil && r.Containers.HasDockerfile(),
		Dockerfiles:     []string{},
		ComposeFiles:    []string{},
		Languages:       entries(s.Languages),
		Frameworks:      entries(s.Frameworks),
		BuildTools:      entries(s.BuildTools),
		TestTools:       entries(s.TestTools),
		ArtifactTypes:   entries(s.ArtifactTypes),
		RuntimeVersions: entries(s.RuntimeVersions),
		BuildCommands:   entries(s.BuildCommands),
		TestCommands:    entries(s.TestCommands),
		PackageManagers: entries(s.PackageManagers),
		Ports:           entries(s.Ports),
		Notes:           []string{},
		Toolchains:      opts.Toolchains,
	}
	if r.Containers != nil {
		doc.Dockerfiles = append(doc.Dockerfiles, r.Containers.Dockerfiles...)
		doc.ComposeFiles = append(doc.ComposeFiles, r.Containers.ComposeFiles...)
	}
	doc.Notes = append(doc.Notes, s.Notes...)
	if opts.IncludeModules {
		doc.Modules = append([]aggregate.ModuleRecord{}, s.Modules...)
	}
	return doc
}

func entries(in []aggregate.Entry) []aggregate.Entry {
	if in == nil {
		return []aggregate.Entry{}
	}
	return in
}

// WriteJSON writes the document as indented JSON followed by a newline
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
