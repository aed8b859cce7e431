// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Maven, Gradle and properties file extraction

package evidence

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/magiconair/properties"
)

// POM holds the parts of a Maven descriptor used for detection. Raw keeps
// the full text so that pattern rules still work on malformed XML.
type POM struct {
	Raw        string
	Packaging  string
	HasParent  bool
	Properties map[string]string
}

type pomProject struct {
	Packaging string `xml:"packaging"`
	Parent    *struct {
		ArtifactID string `xml:"artifactId"`
	} `xml:"parent"`
	Properties struct {
		Entries []pomProperty `xml:",any"`
	} `xml:"properties"`
}

type pomProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

var (
	pomPropertiesBlock = regexp.MustCompile(`(?s)<properties>(.*?)</properties>`)
	pomSimpleTag       = regexp.MustCompile(`<([\w.\-]+)>\s*([^<]*?)\s*</([\w.\-]+)>`)
	pomPackaging       = regexp.MustCompile(`<packaging>\s*([^<]+?)\s*</packaging>`)
	placeholder        = regexp.MustCompile(`^\$\{([^}]+)\}$`)
)

// ParsePOM decodes a pom.xml. It never fails: when the XML is malformed
// the structured fields are recovered with tag patterns instead.
func ParsePOM(data []byte) *POM {
	pom := &POM{
		Raw:        string(data),
		Properties: make(map[string]string),
	}

	var project pomProject
	if err := xml.Unmarshal(data, &project); err == nil {
		pom.Packaging = strings.TrimSpace(project.Packaging)
		pom.HasParent = project.Parent != nil
		for _, entry := range project.Properties.Entries {
			pom.Properties[entry.XMLName.Local] = strings.TrimSpace(entry.Value)
		}
		return pom
	}

	if m := pomPropertiesBlock.FindStringSubmatch(pom.Raw); m != nil {
		for _, tag := range pomSimpleTag.FindAllStringSubmatch(m[1], -1) {
			if tag[1] == tag[3] {
				pom.Properties[tag[1]] = tag[2]
			}
		}
	}
	if m := pomPackaging.FindStringSubmatch(pom.Raw); m != nil {
		pom.Packaging = m[1]
	}
	pom.HasParent = strings.Contains(pom.Raw, "<parent>")
	return pom
}

// VersionRule is one step of the in-file Java version fallback chain
type VersionRule struct {
	Name string
	find func(content string, props map[string]string) (string, bool)
}

// Find applies the rule to descriptor content
func (r VersionRule) Find(content string, props map[string]string) (string, bool) {
	return r.find(content, props)
}

// pomVersionTags are checked in order; the first numeric value wins
var pomVersionTags = []string{
	"java.version",
	"maven.compiler.release",
	"maven.compiler.source",
	"maven.compiler.target",
	"release",
	"source",
}

var (
	pomTagPatterns        = compileTagPatterns(pomVersionTags)
	gradleVersionProperty = regexp.MustCompile(`\bjava(?:Version|\.version)\s*=\s*['"]?([^'"\s]+)['"]?`)
	javaVersionEnum       = regexp.MustCompile(`JavaVersion\.VERSION_(\d+(?:_\d+)*)`)
	javaToolchain         = regexp.MustCompile(`JavaLanguageVersion\.of\(\s*['"]?(\d+)['"]?\s*\)`)
	javaCompatibility     = regexp.MustCompile(`\b(?:sourceCompatibility|targetCompatibility|jvmTarget)\s*(?:=|\.set\()?\s*['"]?(\d+(?:\.\d+)*)['"]?`)
)

func compileTagPatterns(tags []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(tags))
	for _, tag := range tags {
		quoted := regexp.QuoteMeta(tag)
		patterns = append(patterns, regexp.MustCompile(`<`+quoted+`>\s*([^<]*?)\s*</`+quoted+`>`))
	}
	return patterns
}

// resolvePlaceholder resolves one level of ${property} indirection
func resolvePlaceholder(value string, props map[string]string) string {
	if m := placeholder.FindStringSubmatch(value); m != nil {
		return props[m[1]]
	}
	return value
}

// JavaVersionRules is the ordered in-file chain: version property, version
// enum, toolchain declaration, compatibility property.
var JavaVersionRules = []VersionRule{
	{
		Name: "version property",
		find: func(content string, props map[string]string) (string, bool) {
			for _, pattern := range pomTagPatterns {
				for _, m := range pattern.FindAllStringSubmatch(content, -1) {
					if v, ok := CleanVersion(resolvePlaceholder(m[1], props)); ok {
						return v, true
					}
				}
			}
			for _, m := range gradleVersionProperty.FindAllStringSubmatch(content, -1) {
				if v, ok := CleanVersion(m[1]); ok {
					return v, true
				}
			}
			return "", false
		},
	},
	{
		Name: "version enum",
		find: func(content string, _ map[string]string) (string, bool) {
			if m := javaVersionEnum.FindStringSubmatch(content); m != nil {
				return CleanVersion(strings.ReplaceAll(m[1], "_", "."))
			}
			return "", false
		},
	},
	{
		Name: "toolchain",
		find: func(content string, _ map[string]string) (string, bool) {
			if m := javaToolchain.FindStringSubmatch(content); m != nil {
				return CleanVersion(m[1])
			}
			return "", false
		},
	},
	{
		Name: "compatibility property",
		find: func(content string, _ map[string]string) (string, bool) {
			if m := javaCompatibility.FindStringSubmatch(content); m != nil {
				return CleanVersion(m[1])
			}
			return "", false
		},
	},
}

// FindJavaVersion runs JavaVersionRules in order over one descriptor and
// returns the version together with the name of the rule that matched
func FindJavaVersion(content string, props map[string]string) (string, string, bool) {
	for _, rule := range JavaVersionRules {
		if v, ok := rule.Find(content, props); ok {
			return v, rule.Name, true
		}
	}
	return "", "", false
}

// JavaPropertyKeys are looked up, in order, in properties files
var JavaPropertyKeys = []string{
	"java.version",
	"javaVersion",
	"java_version",
	"maven.compiler.release",
	"maven.compiler.source",
	"sourceCompatibility",
	"targetCompatibility",
}

// FindJavaVersionInProperties reads a Java version from properties content
func FindJavaVersionInProperties(data []byte) (string, bool) {
	// Unrelated ${...} references must not fail the whole file
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return "", false
	}
	for _, key := range JavaPropertyKeys {
		if value, ok := p.Get(key); ok {
			if v, ok := CleanVersion(value); ok {
				return v, true
			}
		}
	}
	return "", false
}
