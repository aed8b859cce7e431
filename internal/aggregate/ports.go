// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Port discovery in container and environment files

package aggregate

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/scanner"
)

// PortScanDepth bounds how deep below a module port files are searched
const PortScanDepth = 2

var portPattern = regexp.MustCompile(`^\d{2,5}$`)

// IsPort reports whether s is a 2 to 5 digit port string
func IsPort(s string) bool {
	return portPattern.MatchString(s)
}

// composeFile is the subset of a compose file that declares ports
type composeFile struct {
	Services map[string]struct {
		Ports  []any `yaml:"ports"`
		Expose []any `yaml:"expose"`
	} `yaml:"services"`
}

// FindPorts returns the distinct ports declared by container and
// environment files under dir, in discovery order
func FindPorts(files *evidence.Reader, dir string) []string {
	ports := []string{}
	seen := make(map[string]bool)
	add := func(candidates []string) {
		for _, p := range candidates {
			if IsPort(p) && !seen[p] {
				seen[p] = true
				ports = append(ports, p)
			}
		}
	}

	_ = scanner.Walk(dir, PortScanDepth, func(path, _ string, d fs.DirEntry) error {
		name := d.Name()
		var parse func([]byte) ([]string, error)
		switch {
		case scanner.IsDockerfile(name):
			parse = DockerfilePorts
		case scanner.IsComposeFile(name):
			parse = ComposePorts
		case scanner.IsEnvFile(name):
			parse = EnvPorts
		default:
			return nil
		}
		data, ok := files.Read(path)
		if !ok {
			return nil
		}
		found, err := parse(data)
		if err != nil {
			// Malformed files contribute nothing
			return nil
		}
		add(found)
		return nil
	})
	return ports
}

// DockerfilePorts returns the EXPOSE arguments of a Dockerfile
func DockerfilePorts(data []byte) ([]string, error) {
	var ports []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "EXPOSE") {
			continue
		}
		for _, arg := range fields[1:] {
			if strings.HasPrefix(arg, "$") {
				continue
			}
			port, _, _ := strings.Cut(arg, "/")
			ports = append(ports, port)
		}
	}
	return ports, sc.Err()
}

// ComposePorts returns the container side of every ports and expose entry
func ComposePorts(data []byte) ([]string, error) {
	var compose composeFile
	if err := yaml.Unmarshal(data, &compose); err != nil {
		return nil, fmt.Errorf("failed to parse compose file: %w", err)
	}

	names := make([]string, 0, len(compose.Services))
	for name := range compose.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	var ports []string
	for _, name := range names {
		svc := compose.Services[name]
		for _, entry := range append(svc.Ports, svc.Expose...) {
			if port, ok := containerPort(entry); ok {
				ports = append(ports, port)
			}
		}
	}
	return ports, nil
}

// containerPort handles the short "host:container/proto" syntax, bare
// numbers and the long syntax with a target key
func containerPort(entry any) (string, bool) {
	switch v := entry.(type) {
	case int:
		return fmt.Sprint(v), true
	case string:
		mapping, _, _ := strings.Cut(v, "/")
		if i := strings.LastIndex(mapping, ":"); i >= 0 {
			mapping = mapping[i+1:]
		}
		return mapping, mapping != ""
	case map[string]any:
		if target, ok := v["target"]; ok {
			return containerPort(target)
		}
	}
	return "", false
}

// EnvPorts returns the values of keys containing PORT in a dotenv file
func EnvPorts(data []byte) ([]string, error) {
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file: %w", err)
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		if strings.Contains(strings.ToUpper(key), "PORT") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	ports := make([]string, 0, len(keys))
	for _, key := range keys {
		ports = append(ports, strings.TrimSpace(env[key]))
	}
	return ports, nil
}
