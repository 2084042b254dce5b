package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/options"
)

// Manifest is the root of a package declaration file.
type Manifest struct {
	// Packages are the declared packages, in file order.
	Packages []Declaration `yaml:"packages" toml:"packages"`
}

// Declaration describes one package to install from source control.
type Declaration struct {
	Name          string              `yaml:"name"                     toml:"name"`
	Version       string              `yaml:"version,omitempty"        toml:"version,omitempty"`
	Source        string              `yaml:"source"                   toml:"source"`
	SCM           string              `yaml:"scm,omitempty"            toml:"scm,omitempty"`
	Prefix        string              `yaml:"prefix,omitempty"         toml:"prefix,omitempty"`
	Builds        string              `yaml:"builds,omitempty"         toml:"builds,omitempty"`
	Enable        []string            `yaml:"enable,omitempty"         toml:"enable,omitempty"`
	Disable       []string            `yaml:"disable,omitempty"        toml:"disable,omitempty"`
	With          []string            `yaml:"with,omitempty"           toml:"with,omitempty"`
	Without       []string            `yaml:"without,omitempty"        toml:"without,omitempty"`
	CustomInstall string              `yaml:"custom_install,omitempty" toml:"custom_install,omitempty"`
	Pre           map[string][]string `yaml:"pre,omitempty"            toml:"pre,omitempty"`
	Post          map[string][]string `yaml:"post,omitempty"           toml:"post,omitempty"`
	// Options holds any further installer option, set verbatim.
	Options map[string]string `yaml:"options,omitempty" toml:"options,omitempty"`
}

var (
	// ErrInvalidManifest is wrapped by every validation failure.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrPackageNotFound is returned when a requested package is not declared.
	ErrPackageNotFound = errors.New("package not declared")
)

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return Parse(contents, filepath.Ext(path))
}

// Parse decodes manifest data. ext selects the format (".toml" or YAML).
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest

	if strings.EqualFold(ext, ".toml") {
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode toml manifest: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode yaml manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks that every declaration has a unique name and a source.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Packages))

	for i, d := range m.Packages {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: package #%d has no name", ErrInvalidManifest, i+1)
		}

		if strings.TrimSpace(d.Source) == "" {
			return fmt.Errorf("%w: package %q has no source", ErrInvalidManifest, d.Name)
		}

		if _, ok := seen[d.Name]; ok {
			return fmt.Errorf("%w: package %q declared twice", ErrInvalidManifest, d.Name)
		}

		seen[d.Name] = struct{}{}
	}

	return nil
}

// Select returns the named declarations in the requested order,
// or every declaration when no names are given.
func (m *Manifest) Select(names ...string) ([]Declaration, error) {
	if len(names) == 0 {
		return slices.Clone(m.Packages), nil
	}

	selected := make([]Declaration, 0, len(names))

	for _, name := range names {
		idx := slices.IndexFunc(m.Packages, func(d Declaration) bool { return d.Name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
		}

		selected = append(selected, m.Packages[idx])
	}

	return selected, nil
}

// Package returns the package reference of the declaration.
func (d *Declaration) Package() provision.Package {
	return provision.Package{
		Name:    d.Name,
		Version: d.Version,
	}
}

// Builder turns the declaration into installer options.
// Only non-empty fields are set, so deployment defaults can fill the rest.
func (d *Declaration) Builder() *options.Builder {
	b := options.NewBuilder()

	for key, value := range d.Options {
		if value != "" {
			b.Set(key, value)
		}
	}

	for key, value := range map[string]string{
		options.SCM:           d.SCM,
		options.Prefix:        d.Prefix,
		options.Builds:        d.Builds,
		options.CustomInstall: d.CustomInstall,
	} {
		if value != "" {
			b.Set(key, value)
		}
	}

	b.Append(options.Enable, d.Enable...).
		Append(options.Disable, d.Disable...).
		Append(options.With, d.With...).
		Append(options.Without, d.Without...)

	for stage, commands := range d.Pre {
		b.Pre(stage, commands...)
	}

	for stage, commands := range d.Post {
		b.Post(stage, commands...)
	}

	return b
}
