// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Ruby stack detector

package stacks

import (
	"regexp"
	"strings"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

// railsMarkers are the structural files of a Rails application
var railsMarkers = []string{
	"bin/rails",
	"config.ru",
	"app/controllers",
	"app/models",
	"config/application.rb",
}

// rubyFrameworks are matched against Gemfile content when no Rails layout exists
var rubyFrameworks = []rule[string]{
	{"sinatra", gemDeclared("sinatra")},
	{"hanami", gemDeclared("hanami")},
}

var gemfileRuby = regexp.MustCompile(`(?m)^\s*ruby\s+['"]([^'"]+)['"]`)

func gemDeclared(gem string) func(string) bool {
	pattern := regexp.MustCompile(`(?m)^\s*gem\s+['"]` + regexp.QuoteMeta(gem) + `['"]`)
	return pattern.MatchString
}

// RubyDetector detects Ruby projects
type RubyDetector struct {
	BaseDetector
}

// NewRubyDetector creates a new Ruby detector
func NewRubyDetector() *RubyDetector {
	return &RubyDetector{
		BaseDetector: NewBaseDetector(StackRuby, BaseScoreRuby),
	}
}

// Detect checks if the module is a Ruby project
func (d *RubyDetector) Detect(t Target) (Result, bool) {
	// Gemfile or its lockfile is required
	hasGemfile := t.exists("Gemfile")
	if !hasGemfile && !t.exists("Gemfile.lock") {
		return Result{}, false
	}

	f := newFinding(d.BaseScore(), Verdict{
		Language:     "ruby",
		Framework:    None,
		BuildTool:    "bundler",
		TestTool:     Unknown,
		ArtifactType: "application",
	})
	if hasGemfile {
		f.note("Ruby: Gemfile present")
	} else {
		f.note("Ruby: Gemfile.lock present")
	}

	gemfile, _ := t.readString("Gemfile")

	if t.existsAny(railsMarkers...) {
		f.verdict.Framework = "rails"
		f.verdict.ArtifactType = "web-app"
		f.add(20, "Ruby: Rails application layout")
	} else if framework, ok := firstMatch(rubyFrameworks, gemfile); ok {
		f.verdict.Framework = framework
		f.add(5, "Ruby: framework %s declared in Gemfile", framework)
	}

	if f.verdict.Framework != "rails" && t.has(1, func(_, name string) bool {
		return strings.HasSuffix(name, ".gemspec")
	}) {
		f.verdict.ArtifactType = "gem"
		f.note("Ruby: gemspec present")
	}

	switch {
	case t.isDir("spec"):
		f.verdict.TestTool = "rspec"
		f.test = "bundle exec rspec"
		f.add(5, "Ruby: spec directory present")
	case t.isDir("test"):
		f.verdict.TestTool = "minitest"
		f.test = "bundle exec rake test"
		f.note("Ruby: test directory present")
	}

	if v, ok := rubyVersion(t, gemfile); ok {
		f.version = VersionPrefixRuby + v
	}

	f.build = "bundle install"

	return f.result(d.Name()), true
}

// rubyVersion reads .ruby-version first and the Gemfile ruby directive second
func rubyVersion(t Target, gemfile string) (string, bool) {
	if line, ok := t.Files.FirstLine(t.path(".ruby-version")); ok {
		if v, ok := evidence.CleanVersion(strings.TrimPrefix(line, "ruby-")); ok {
			return v, true
		}
		t.logger().Debug("ignoring .ruby-version", "module", t.Module.RelPath, "value", line)
	}
	if m := gemfileRuby.FindStringSubmatch(gemfile); m != nil {
		if v, ok := evidence.ExtractVersion(m[1]); ok {
			return v, true
		}
	}
	return "", false
}
