package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// FileName is the package descriptor file name.
const FileName = "package.json"

// DefaultVersion is the version of a freshly scaffolded package.
const DefaultVersion = "0.1.0"

// Kind selects a dependency map.
type Kind string

// Dependency map kinds.
const (
	Runtime Kind = "dependencies"
	Dev     Kind = "devDependencies"
)

// Manifest represents a package.json document. Field order is output order.
type Manifest struct {
	Name            string            `json:"name" yaml:"name"`
	Repository      string            `json:"repository,omitempty" yaml:"repository,omitempty"`
	Version         string            `json:"version" yaml:"version"`
	Description     string            `json:"description" yaml:"description"`
	Main            string            `json:"main" yaml:"main"`
	Scripts         map[string]string `json:"scripts" yaml:"scripts"`
	Keywords        []string          `json:"keywords" yaml:"keywords"`
	Author          string            `json:"author" yaml:"author"`
	License         string            `json:"license" yaml:"license"`
	DevDependencies map[string]string `json:"devDependencies" yaml:"devDependencies"`
	Dependencies    map[string]string `json:"dependencies" yaml:"dependencies"`
}

// New returns a manifest built from the default template. Every call returns
// an independent value.
func New() *Manifest {
	return &Manifest{
		Version: DefaultVersion,
		Main:    "index.js",
		Scripts: map[string]string{
			"test": `echo "Error: no test specified" && exit 1`,
		},
		Keywords:        []string{},
		License:         "Apache-2.0",
		DevDependencies: map[string]string{},
		Dependencies:    map[string]string{},
	}
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	c := *m
	c.Scripts = copyMap(m.Scripts)
	c.Dependencies = copyMap(m.Dependencies)
	c.DevDependencies = copyMap(m.DevDependencies)
	c.Keywords = append([]string{}, m.Keywords...)
	return &c
}

// Deps returns the dependency map for kind, allocating it if needed.
func (m *Manifest) Deps(kind Kind) map[string]string {
	switch kind {
	case Dev:
		if m.DevDependencies == nil {
			m.DevDependencies = map[string]string{}
		}
		return m.DevDependencies
	default:
		if m.Dependencies == nil {
			m.Dependencies = map[string]string{}
		}
		return m.Dependencies
	}
}

// SetDependency records name@version in the kind map. Repeats overwrite.
func (m *Manifest) SetDependency(kind Kind, name, version string) {
	m.Deps(kind)[name] = version
}

// MergeScripts adds every script from src whose key is absent in m.
// Existing scripts are never overwritten.
func (m *Manifest) MergeScripts(src map[string]string) {
	if m.Scripts == nil {
		m.Scripts = map[string]string{}
	}
	for k, v := range src {
		if _, exists := m.Scripts[k]; !exists {
			m.Scripts[k] = v
		}
	}
}

// Encode renders m as indented JSON with a trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	return encodeJSON(m)
}

// Write encodes m to path, overwriting any existing file.
func (m *Manifest) Write(path string) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read parses the package.json at path.
func Read(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
