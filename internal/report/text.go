// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Terminal summary rendering

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sony-level/repo-analyzer/internal/aggregate"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleFound   = lipgloss.NewStyle().Foreground(colorGreen)
	styleMissing = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconFound   = "✓"
	iconMissing = "✗"
	iconArrow   = "→"
)

// WriteText renders the document as a human readable summary
func WriteText(w io.Writer, doc *Document) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Repository analysis") + "\n")
	b.WriteString(keyValue("root", doc.Root))
	b.WriteString(keyValue("dockerfile", fmt.Sprint(doc.HasDockerfile)))
	for _, f := range append(append([]string{}, doc.Dockerfiles...), doc.ComposeFiles...) {
		b.WriteString("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(f) + "\n")
	}

	for _, section := range []struct {
		title   string
		entries []aggregate.Entry
	}{
		{"Languages", doc.Languages},
		{"Frameworks", doc.Frameworks},
		{"Build tools", doc.BuildTools},
		{"Test tools", doc.TestTools},
		{"Artifact types", doc.ArtifactTypes},
		{"Runtime versions", doc.RuntimeVersions},
		{"Build commands", doc.BuildCommands},
		{"Test commands", doc.TestCommands},
		{"Package managers", doc.PackageManagers},
		{"Ports", doc.Ports},
	} {
		if len(section.entries) == 0 {
			continue
		}
		b.WriteString("\n" + styleSection.Render(section.title) + "\n")
		for _, e := range section.entries {
			b.WriteString("  " + styleNumber.Render(fmt.Sprintf("%4d", e.Score)) + "  " + styleValue.Render(e.Value) + "\n")
		}
	}

	if len(doc.Modules) > 0 {
		b.WriteString("\n" + styleSection.Render("Modules") + "\n")
		for _, m := range doc.Modules {
			b.WriteString("  " + styleValue.Render(m.Path) + " " + styleDim.Render(fmt.Sprintf(
				"%s/%s · %s · %s · score %d", m.Language, m.Framework, m.BuildTool, m.RuntimeVersion, m.Score,
			)) + "\n")
		}
	}

	if doc.Toolchains != nil && len(doc.Toolchains.Results) > 0 {
		b.WriteString("\n" + styleSection.Render("Toolchains") + "\n")
		for _, r := range doc.Toolchains.Results {
			if r.Found {
				b.WriteString("  " + styleFound.Render(iconFound) + " " + r.Name + " " + styleDim.Render(r.Path) + "\n")
			} else {
				b.WriteString("  " + styleMissing.Render(iconMissing) + " " + r.Name + "\n")
			}
		}
	}

	if len(doc.Notes) > 0 {
		b.WriteString("\n" + styleSection.Render("Notes") + "\n")
		for _, n := range doc.Notes {
			b.WriteString("  " + styleDim.Render(n) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func keyValue(key, value string) string {
	return styleKey.Render(key) + " " + styleValue.Render(value) + "\n"
}

// Write renders doc in the named format
func Write(w io.Writer, doc *Document, format string) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, doc)
	case FormatText:
		return WriteText(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
