// Package manifest loads and validates lumen.yaml project manifests. A
// manifest names the project and lists its module files in checking order;
// `lumen check` on a directory is driven by one.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the current manifest schema version.
const SchemaVersion = "lumen.manifest/v1"

// Filename is the manifest file looked up in a project directory.
const Filename = "lumen.yaml"

// Manifest describes a Lumen project.
type Manifest struct {
	Schema  string   `yaml:"schema"`
	Name    string   `yaml:"name"`
	Modules []string `yaml:"modules"`

	// dir is where the manifest was loaded from; module paths resolve
	// relative to it.
	dir string
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// LoadDir loads the manifest from a project directory.
func LoadDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, Filename))
}

// Validate checks the manifest's invariants.
func (m *Manifest) Validate() error {
	if m.Schema != SchemaVersion {
		return fmt.Errorf("unsupported manifest schema %q (want %q)", m.Schema, SchemaVersion)
	}
	if m.Name == "" {
		return fmt.Errorf("manifest needs a project name")
	}
	if len(m.Modules) == 0 {
		return fmt.Errorf("manifest lists no modules")
	}
	seen := map[string]bool{}
	for _, mod := range m.Modules {
		if mod == "" {
			return fmt.Errorf("empty module path")
		}
		if filepath.IsAbs(mod) {
			return fmt.Errorf("module path %q must be relative to the project", mod)
		}
		if seen[mod] {
			return fmt.Errorf("module %q listed twice", mod)
		}
		seen[mod] = true
	}
	return nil
}

// ModulePaths returns the module files resolved against the manifest's
// directory, in checking order.
func (m *Manifest) ModulePaths() []string {
	paths := make([]string, len(m.Modules))
	for i, mod := range m.Modules {
		paths[i] = filepath.Join(m.dir, mod)
	}
	return paths
}
