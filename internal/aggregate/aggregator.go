// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Repository-wide aggregation of module classifications

package aggregate

import (
	"github.com/sony-level/repo-analyzer/internal/stacks"
)

// ModuleRecord is the finalized report entry for one module
type ModuleRecord struct {
	Path           string   `json:"path"`
	Language       string   `json:"language"`
	Framework      string   `json:"framework"`
	BuildTool      string   `json:"build_tool"`
	TestTool       string   `json:"test_tool"`
	ArtifactType   string   `json:"artifact_type"`
	Score          int      `json:"score"`
	RuntimeVersion string   `json:"runtime_version"`
	BuildCommand   string   `json:"build_command"`
	TestCommand    string   `json:"test_command"`
	PackageManager string   `json:"package_manager"`
	Ports          []string `json:"ports"`
	Dockerfiles    []string `json:"dockerfiles"`
	ComposeFiles   []string `json:"compose_files"`
	Notes          []string `json:"notes"`

	RuntimeVersions []stacks.Candidate `json:"runtime_version_candidates"`
	BuildCommands   []stacks.Candidate `json:"build_command_candidates"`
	TestCommands    []stacks.Candidate `json:"test_command_candidates"`
}

// ModuleInput is everything the aggregator needs about one module
type ModuleInput struct {
	Classification stacks.Classification
	Ports          []string
	Dockerfiles    []string
	ComposeFiles   []string
}

// Aggregator folds module classifications into repository tallies
type Aggregator struct {
	languages       Tally
	frameworks      Tally
	buildTools      Tally
	testTools       Tally
	artifactTypes   Tally
	runtimeVersions Tally
	buildCommands   Tally
	testCommands    Tally
	packageManagers Tally
	ports           Tally
	notes           NoteSet
	modules         []ModuleRecord
}

// New creates an empty aggregator
func New() *Aggregator {
	return &Aggregator{}
}

// Add folds one module into the tallies and returns its record. Modules
// must be added in discovery order.
func (a *Aggregator) Add(in ModuleInput) ModuleRecord {
	c := in.Classification
	v := c.Verdict
	weight := floor(v.Score)

	// Primary categories take the winning verdict only
	for _, primary := range []struct {
		tally *Tally
		value string
	}{
		{&a.languages, v.Language},
		{&a.frameworks, v.Framework},
		{&a.buildTools, v.BuildTool},
		{&a.testTools, v.TestTool},
		{&a.artifactTypes, v.ArtifactType},
	} {
		if !stacks.IsPlaceholder(primary.value) {
			primary.tally.Add(primary.value, weight)
		}
	}

	// Secondary categories take every candidate seen for the module
	for _, cand := range c.RuntimeVersions.Items() {
		if AcceptRuntimeVersion(cand.Value) {
			a.runtimeVersions.Add(cand.Value, cand.Score)
		}
	}
	for _, cand := range c.BuildCommands.Items() {
		a.buildCommands.Add(cand.Value, cand.Score)
	}
	for _, cand := range c.TestCommands.Items() {
		a.testCommands.Add(cand.Value, cand.Score)
	}

	pm := PackageManagerFor(v.BuildTool)
	if !stacks.IsPlaceholder(pm) {
		a.packageManagers.Add(pm, weight)
	}

	ports := dedup(in.Ports)
	for _, p := range ports {
		a.ports.Add(p, weight)
	}

	a.notes.Add(c.Notes...)

	record := ModuleRecord{
		Path:            c.Module.RelPath,
		Language:        v.Language,
		Framework:       v.Framework,
		BuildTool:       v.BuildTool,
		TestTool:        v.TestTool,
		ArtifactType:    v.ArtifactType,
		Score:           v.Score,
		RuntimeVersion:  c.RuntimeVersion,
		BuildCommand:    c.BuildCommand,
		TestCommand:     c.TestCommand,
		PackageManager:  pm,
		Ports:           ports,
		Dockerfiles:     nonNil(in.Dockerfiles),
		ComposeFiles:    nonNil(in.ComposeFiles),
		Notes:           nonNil(c.Notes),
		RuntimeVersions: c.RuntimeVersions.Items(),
		BuildCommands:   c.BuildCommands.Items(),
		TestCommands:    c.TestCommands.Items(),
	}
	a.modules = append(a.modules, record)
	return record
}

// Summary is the repository-wide result
type Summary struct {
	Languages       []Entry
	Frameworks      []Entry
	BuildTools      []Entry
	TestTools       []Entry
	ArtifactTypes   []Entry
	RuntimeVersions []Entry
	BuildCommands   []Entry
	TestCommands    []Entry
	PackageManagers []Entry
	Ports           []Entry
	Notes           []string
	Modules         []ModuleRecord
}

// Summary returns every tally sorted by descending score
func (a *Aggregator) Summary() Summary {
	modules := make([]ModuleRecord, len(a.modules))
	copy(modules, a.modules)
	return Summary{
		Languages:       a.languages.Sorted(),
		Frameworks:      a.frameworks.Sorted(),
		BuildTools:      a.buildTools.Sorted(),
		TestTools:       a.testTools.Sorted(),
		ArtifactTypes:   a.artifactTypes.Sorted(),
		RuntimeVersions: a.runtimeVersions.Sorted(),
		BuildCommands:   a.buildCommands.Sorted(),
		TestCommands:    a.testCommands.Sorted(),
		PackageManagers: a.packageManagers.Sorted(),
		Ports:           a.ports.Sorted(),
		Notes:           a.notes.Items(),
		Modules:         modules,
	}
}

func dedup(values []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
