// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Toolchain definitions for detected build tools

package prereq

// Tool is an executable needed to run a detected build tool
type Tool struct {
	Name         string   // Build tool name as reported by the detectors
	Command      string   // Executable looked up in PATH
	Alternatives []string // Alternative executable names
	InstallGuide string   // Short installation hint
}

// DefaultTools returns the toolchain of every build tool the detectors emit
func DefaultTools() map[string]*Tool {
	return map[string]*Tool{
		"go": {
			Name:         "go",
			Command:      "go",
			InstallGuide: "https://go.dev/dl/",
		},
		"bundler": {
			Name:         "bundler",
			Command:      "bundle",
			InstallGuide: "gem install bundler",
		},
		"npm": {
			Name:         "npm",
			Command:      "npm",
			InstallGuide: "npm is included with Node.js: https://nodejs.org/en/download/",
		},
		"yarn": {
			Name:         "yarn",
			Command:      "yarn",
			InstallGuide: "corepack enable yarn",
		},
		"pnpm": {
			Name:         "pnpm",
			Command:      "pnpm",
			InstallGuide: "corepack enable pnpm",
		},
		"pip": {
			Name:         "pip",
			Command:      "pip3",
			Alternatives: []string{"pip"},
			InstallGuide: "python3 -m ensurepip --upgrade",
		},
		"poetry": {
			Name:         "poetry",
			Command:      "poetry",
			InstallGuide: "pipx install poetry",
		},
		"pipenv": {
			Name:         "pipenv",
			Command:      "pipenv",
			InstallGuide: "pip install --user pipenv",
		},
		"uv": {
			Name:         "uv",
			Command:      "uv",
			InstallGuide: "https://docs.astral.sh/uv/getting-started/installation/",
		},
		"maven": {
			Name:         "maven",
			Command:      "mvn",
			InstallGuide: "https://maven.apache.org/install.html",
		},
		"gradle": {
			Name:         "gradle",
			Command:      "gradle",
			InstallGuide: "sdk install gradle",
		},
		"ant": {
			Name:         "ant",
			Command:      "ant",
			InstallGuide: "https://ant.apache.org/manual/install.html",
		},
	}
}

// CheckResult contains the result of checking a tool
type CheckResult struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// CheckSummary contains results for all checks
type CheckSummary struct {
	Results      []CheckResult `json:"results"`
	AllFound     bool          `json:"all_found"`
	MissingTools []string      `json:"missing"`
}

// NewCheckSummary creates a new check summary
func NewCheckSummary() *CheckSummary {
	return &CheckSummary{
		Results:      []CheckResult{},
		AllFound:     true,
		MissingTools: []string{},
	}
}

// AddResult adds a check result to the summary
func (s *CheckSummary) AddResult(result CheckResult) {
	s.Results = append(s.Results, result)
	if !result.Found {
		s.AllFound = false
		s.MissingTools = append(s.MissingTools, result.Name)
	}
}
