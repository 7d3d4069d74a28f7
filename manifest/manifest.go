// Package manifest loads the static schema manifest that completes a
// registry at startup: augmentation rows, namespace tables, identity aliases
// and naming exceptions.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	yangwire "github.com/reoring/yangwire"
)

// Manifest is the root of a manifest file.
type Manifest struct {
	Version string `yaml:"version" json:"version"`
	// Modules lists modules the registry must already hold. A listed
	// namespace must match the registered one.
	Modules                []ModuleRef              `yaml:"modules" json:"modules"`
	Augmentations          []AugmentRow             `yaml:"augmentations" json:"augmentations"`
	NamespaceFallback      []yangwire.NamespaceRule `yaml:"namespaceFallback" json:"namespaceFallback"`
	SuppressNamespaceUnder []string                 `yaml:"suppressNamespaceUnder" json:"suppressNamespaceUnder"`
	IdentityAliases        map[string]string        `yaml:"identityAliases" json:"identityAliases"`
	NamingExceptions       []string                 `yaml:"namingExceptions" json:"namingExceptions"`
	ExcludeNullValues      *bool                    `yaml:"excludeNullValues" json:"excludeNullValues"`
}

// ModuleRef names a module expected in the registry.
type ModuleRef struct {
	Name      string `yaml:"name" json:"name"`
	Namespace string `yaml:"namespace" json:"namespace"`
	Revision  string `yaml:"revision" json:"revision"`
}

// AugmentRow binds facets to an owner by symbolic type name.
type AugmentRow struct {
	Owner  string   `yaml:"owner" json:"owner"`
	Facets []string `yaml:"facets" json:"facets"`
}

// LoadFile reads a manifest. Files ending in .json or .jsonc are read as
// JSONC, everything else as YAML.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		m, err = ParseJSONC(data)
	default:
		m, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses YAML data into a Manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	applyDefaults(&m)
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseJSONC strips comments and trailing commas from data and parses the
// rest as JSON.
func ParseJSONC(data []byte) (*Manifest, error) {
	var m Manifest
	if err := j.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}
	applyDefaults(&m)
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal serializes m to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = "1"
	}
	for i := range m.NamespaceFallback {
		r := &m.NamespaceFallback[i]
		if r.Module == "" {
			r.Module = strings.TrimSuffix(r.Prefix, ".")
		}
	}
}

func (m *Manifest) validate() error {
	if m.Version != "1" {
		return fmt.Errorf("unsupported manifest version %q", m.Version)
	}
	for i, r := range m.NamespaceFallback {
		if r.Prefix == "" || r.Namespace == "" {
			return fmt.Errorf("namespaceFallback[%d]: prefix and namespace are required", i)
		}
	}
	for i, a := range m.Augmentations {
		if a.Owner == "" || len(a.Facets) == 0 {
			return fmt.Errorf("augmentations[%d]: owner and facets are required", i)
		}
	}
	for i, mod := range m.Modules {
		if mod.Name == "" {
			return fmt.Errorf("modules[%d]: name is required", i)
		}
	}
	return nil
}

// Apply checks the module table against reg, queues the augmentation rows
// and merges the tables into cfg. It must run before reg is frozen.
func (m *Manifest) Apply(reg *yangwire.Registry, cfg *yangwire.Config) error {
	for _, ref := range m.Modules {
		mod, ok := reg.ModuleByName(ref.Name)
		if !ok {
			return yangwire.NewError(yangwire.CodeClassResolution).Type(ref.Name).Detail("module is not registered").Build()
		}
		if ref.Namespace != "" && ref.Namespace != mod.Namespace {
			return yangwire.NewError(yangwire.CodeRegistration).Type(ref.Name).
				Detail("namespace %q does not match registered %q", ref.Namespace, mod.Namespace).Build()
		}
		if ref.Revision != "" && ref.Revision != mod.Revision {
			return yangwire.NewError(yangwire.CodeRegistration).Type(ref.Name).
				Detail("revision %q does not match registered %q", ref.Revision, mod.Revision).Build()
		}
	}
	for _, a := range m.Augmentations {
		if err := reg.Augment(a.Owner, a.Facets...); err != nil {
			return err
		}
	}
	if cfg == nil {
		return nil
	}
	cfg.NamespaceFallback = append(cfg.NamespaceFallback, m.NamespaceFallback...)
	cfg.SuppressNamespaceUnder = append(cfg.SuppressNamespaceUnder, m.SuppressNamespaceUnder...)
	if len(m.IdentityAliases) > 0 {
		aliases := make(map[string]string, len(cfg.IdentityAliases)+len(m.IdentityAliases))
		for k, v := range cfg.IdentityAliases {
			aliases[k] = v
		}
		for k, v := range m.IdentityAliases {
			aliases[k] = v
		}
		cfg.IdentityAliases = aliases
	}
	if len(m.NamingExceptions) > 0 {
		exceptions := append(cfg.Naming.Exceptions(), m.NamingExceptions...)
		cfg.Naming = yangwire.NewNaming(exceptions...)
	}
	if m.ExcludeNullValues != nil {
		cfg.ExcludeNullValues = *m.ExcludeNullValues
	}
	return nil
}
