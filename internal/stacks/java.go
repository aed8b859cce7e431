// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Java / Kotlin stack detector

package stacks

import (
	"path/filepath"
	"strings"

	"github.com/sony-level/repo-analyzer/internal/evidence"
)

var (
	mavenDescriptors  = []string{"pom.xml"}
	gradleDescriptors = []string{"build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts"}
	antDescriptors    = []string{"build.xml"}
	gradleSettings    = []string{"settings.gradle", "settings.gradle.kts"}
)

// javaTestTools are matched against descriptor content
var javaTestTools = []rule[string]{
	{"junit", mentions("junit")},
	{"testng", mentions("testng")},
}

const (
	maxJavaSources     = 200
	maxVersionHops     = 3
	maxGrepDescriptors = 500
)

// JavaDetector detects Java and Kotlin projects built with Maven, Gradle or Ant
type JavaDetector struct {
	BaseDetector
}

// NewJavaDetector creates a new Java detector
func NewJavaDetector() *JavaDetector {
	return &JavaDetector{
		BaseDetector: NewBaseDetector(StackJava, BaseScoreJava),
	}
}

// javaDescriptor is the build file the detector reasons about
type javaDescriptor struct {
	path    string
	content string
	pom     *evidence.POM
}

func (d javaDescriptor) properties() map[string]string {
	if d.pom == nil {
		return nil
	}
	return d.pom.Properties
}

// Detect checks if the module is a Java or Kotlin project
func (d *JavaDetector) Detect(t Target) (Result, bool) {
	isMaven := t.existsAny(mavenDescriptors...)
	isGradle := t.existsAny(gradleDescriptors...)
	isAnt := t.existsAny(antDescriptors...)

	var descendant string
	if !isMaven && !isGradle && !isAnt {
		all := append(append(append([]string{}, mavenDescriptors...), gradleDescriptors...), antDescriptors...)
		nested := t.find(2, 1, named(all...))
		if len(nested) == 0 {
			return Result{}, false
		}
		descendant = nested[0]
		name := filepath.Base(descendant)
		isMaven = name == "pom.xml"
		isAnt = name == "build.xml"
		isGradle = !isMaven && !isAnt
	}

	f := newFinding(d.BaseScore(), Verdict{
		Language:     "java",
		Framework:    None,
		TestTool:     Unknown,
		ArtifactType: "jar",
	})

	switch {
	case isGradle:
		f.verdict.BuildTool = "gradle"
	case isMaven:
		f.verdict.BuildTool = "maven"
	default:
		f.verdict.BuildTool = "ant"
	}

	if descendant == "" {
		f.add(5, "Java: %s descriptor at module root", f.verdict.BuildTool)
	} else {
		rel, _ := filepath.Rel(t.Module.Path, descendant)
		f.add(-5, "Java: descriptor only found in %s", filepath.ToSlash(rel))
	}

	descriptors := d.descriptors(t, descendant)
	content := joinContent(descriptors)

	if d.inherits(t, descriptors) {
		f.add(5, "Java: descriptor inherits from a parent build")
	}

	if t.isDir("src", "main", "kotlin") || strings.Contains(content, "kotlin(\"jvm\")") ||
		strings.Contains(content, "org.jetbrains.kotlin") || strings.Contains(content, "kotlin-maven-plugin") {
		f.verdict.Language = "kotlin"
		f.note("Java: Kotlin sources or plugin present")
	}

	if d.springBoot(t, content) {
		f.verdict.Framework = "spring-boot"
		f.add(10, "Java: framework spring-boot")
	}

	if tool, ok := firstMatch(javaTestTools, content); ok {
		f.verdict.TestTool = tool
	}

	if isWar(descriptors, content) {
		f.verdict.ArtifactType = "war"
	}

	f.build, f.test = javaCommands(t, f.verdict.BuildTool)

	if v, source, ok := d.version(t, descriptors); ok {
		f.version = VersionPrefixJava + v
		f.note("Java: version %s from %s", v, source)
	} else {
		t.logger().Debug("no Java version found", "module", t.Module.RelPath)
	}

	return f.result(d.Name()), true
}

// descriptors loads the module's build files, or the single descendant one
func (d *JavaDetector) descriptors(t Target, descendant string) []javaDescriptor {
	paths := []string{descendant}
	if descendant == "" {
		paths = paths[:0]
		for _, group := range [][]string{mavenDescriptors, gradleDescriptors, antDescriptors} {
			for _, name := range group {
				paths = append(paths, t.path(name))
			}
		}
	}

	var out []javaDescriptor
	for _, p := range paths {
		data, ok := t.Files.Read(p)
		if !ok {
			continue
		}
		desc := javaDescriptor{path: p, content: string(data)}
		if filepath.Base(p) == "pom.xml" {
			desc.pom = evidence.ParsePOM(data)
		}
		out = append(out, desc)
	}
	return out
}

// inherits reports a pom <parent> or a Gradle settings file at or above the module
func (d *JavaDetector) inherits(t Target, descriptors []javaDescriptor) bool {
	for _, desc := range descriptors {
		if desc.pom != nil && desc.pom.HasParent {
			return true
		}
	}
	if t.existsAny("build.gradle", "build.gradle.kts") {
		return evidence.WalkUp(t.Module.Path, t.Module.Root, maxVersionHops, func(dir string) bool {
			return existsUnder(dir, gradleSettings...)
		})
	}
	return false
}

func (d *JavaDetector) springBoot(t Target, content string) bool {
	if strings.Contains(content, "spring-boot") {
		return true
	}
	if !t.isDir("src") {
		return false
	}
	sources := evidence.FindFiles(t.path("src"), 6, maxJavaSources, func(_, name string) bool {
		return strings.HasSuffix(name, ".java") || strings.HasSuffix(name, ".kt")
	})
	for _, src := range sources {
		if t.Files.Contains(src, "@SpringBootApplication") {
			return true
		}
	}
	return false
}

// version runs the in-file chain, then the ancestor walk, then the
// repository-wide grep
func (d *JavaDetector) version(t Target, descriptors []javaDescriptor) (string, string, bool) {
	for _, desc := range descriptors {
		if v, rule, ok := evidence.FindJavaVersion(desc.content, desc.properties()); ok {
			return v, filepath.Base(desc.path) + " (" + rule + ")", true
		}
	}

	var version, source string
	found := evidence.WalkUp(t.Module.Path, t.Module.Root, maxVersionHops, func(dir string) bool {
		if data, ok := t.Files.Read(filepath.Join(dir, "gradle.properties")); ok {
			if v, ok := evidence.FindJavaVersionInProperties(data); ok {
				version, source = v, "gradle.properties"
				return true
			}
		}
		if dir == t.Module.Path {
			return false
		}
		for _, name := range append([]string{"pom.xml"}, gradleDescriptors...) {
			data, ok := t.Files.Read(filepath.Join(dir, name))
			if !ok {
				continue
			}
			var props map[string]string
			if name == "pom.xml" {
				props = evidence.ParsePOM(data).Properties
			}
			if v, _, ok := evidence.FindJavaVersion(string(data), props); ok {
				version, source = v, "ancestor "+name
				return true
			}
		}
		return false
	})
	if found {
		return version, source, true
	}

	t.logger().Debug("falling back to repository-wide Java version search", "module", t.Module.RelPath)
	return d.grepVersion(t)
}

// grepVersion searches every descriptor-like file of the repository
func (d *JavaDetector) grepVersion(t Target) (string, string, bool) {
	root := t.Module.Root
	if root == "" {
		root = t.Module.Path
	}
	files := evidence.FindFiles(root, 0, maxGrepDescriptors, func(_, name string) bool {
		return name == "pom.xml" ||
			strings.HasSuffix(name, ".gradle") ||
			strings.HasSuffix(name, ".gradle.kts") ||
			strings.HasSuffix(name, ".properties")
	})
	for _, file := range files {
		data, ok := t.Files.Read(file)
		if !ok {
			continue
		}
		var (
			v     string
			found bool
		)
		switch name := filepath.Base(file); {
		case strings.HasSuffix(name, ".properties"):
			v, found = evidence.FindJavaVersionInProperties(data)
		case name == "pom.xml":
			v, _, found = evidence.FindJavaVersion(string(data), evidence.ParsePOM(data).Properties)
		default:
			v, _, found = evidence.FindJavaVersion(string(data), nil)
		}
		if found {
			rel, _ := filepath.Rel(root, file)
			return v, "repository search in " + filepath.ToSlash(rel), true
		}
	}
	return "", "", false
}

func joinContent(descriptors []javaDescriptor) string {
	var b strings.Builder
	for _, desc := range descriptors {
		b.WriteString(desc.content)
		b.WriteByte('\n')
	}
	return b.String()
}

func isWar(descriptors []javaDescriptor, content string) bool {
	for _, desc := range descriptors {
		if desc.pom != nil && desc.pom.Packaging == "war" {
			return true
		}
	}
	return strings.Contains(content, "id 'war'") ||
		strings.Contains(content, "id \"war\"") ||
		strings.Contains(content, "apply plugin: 'war'") ||
		strings.Contains(content, "`war`")
}

// javaCommands prefers the project wrapper when one is checked in
func javaCommands(t Target, buildTool string) (string, string) {
	switch buildTool {
	case "maven":
		mvn := "mvn"
		if t.exists("mvnw") {
			mvn = "./mvnw"
		}
		return mvn + " -B package", mvn + " -B test"
	case "gradle":
		gradle := "gradle"
		if t.exists("gradlew") {
			gradle = "./gradlew"
		}
		return gradle + " build", gradle + " test"
	default:
		return "ant", "ant test"
	}
}
