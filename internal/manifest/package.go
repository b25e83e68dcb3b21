package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FileName is the manifest file at the root of a project.
const FileName = "package.json"

// Package holds the package.json fields the scaffolder reads.
type Package struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private,omitempty"`
	Type            string            `json:"type,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// HasDependency reports whether name is listed in dependencies or
// devDependencies.
func (p *Package) HasDependency(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// ParsePackage decodes package.json bytes.
func ParsePackage(data []byte) (*Package, error) {
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &p, nil
}

// ParsePackageFile reads and decodes a package.json file.
func ParsePackageFile(path string) (*Package, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePackage(data)
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9-._~]+`)

// PackageName derives an npm package name from a project directory name:
// lower-cased, invalid characters collapsed to "-", leading dots and
// underscores removed.
func PackageName(dirName string) string {
	name := strings.ToLower(strings.TrimSpace(dirName))
	name = invalidNameChars.ReplaceAllString(name, "-")
	name = strings.TrimLeft(name, "._-")
	name = strings.TrimRight(name, "-")
	if len(name) > 214 {
		name = name[:214]
	}
	if name == "" {
		return "app"
	}
	return name
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
