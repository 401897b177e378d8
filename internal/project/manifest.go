package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"glslx/internal/rules"
)

// ManifestNames are looked up in every directory, in this order.
var ManifestNames = []string{"glslx.toml", "glslx.yaml", "glslx.yml"}

var (
	// ErrUnknownOption indicates an [expand] value that does not parse.
	ErrUnknownOption = errors.New("unknown option value")
	// ErrBadManifest indicates a manifest that could not be decoded.
	ErrBadManifest = errors.New("invalid manifest")
)

// Manifest is a loaded glslx.toml or glslx.yaml.
type Manifest struct {
	Path   string
	Dir    string
	Config Config
}

// Config mirrors the manifest file.
type Config struct {
	Package PackageConfig `toml:"package" yaml:"package"`
	Expand  ExpandConfig  `toml:"expand" yaml:"expand"`
}

type PackageConfig struct {
	Name    string   `toml:"name" yaml:"name"`
	Root    string   `toml:"root" yaml:"root"`       // относительно каталога манифеста
	Entries []string `toml:"entries" yaml:"entries"` // относительно Root
}

// ExpandConfig holds policy values; unset keys stay defaults.
type ExpandConfig struct {
	DisplayWarnings  *bool  `toml:"display_warnings" yaml:"display_warnings"`
	SameIncludes     string `toml:"same_includes" yaml:"same_includes"`
	MultipleVersions string `toml:"multiple_versions" yaml:"multiple_versions"`
	VersionPlacement string `toml:"version_placement" yaml:"version_placement"`
}

// FindManifest walks up from startDir to locate a manifest.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ManifestNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest finds and loads the manifest closest to startDir.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifest decodes path as TOML or YAML depending on its extension.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	// #nosec G304 -- manifest path comes from the user or FindManifest
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w: failed to parse YAML: %w", abs, ErrBadManifest, err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w: failed to parse TOML: %w", abs, ErrBadManifest, err)
		}
	}
	return &Manifest{Path: abs, Dir: filepath.Dir(abs), Config: cfg}, nil
}

// Root returns the absolute shader root; the manifest directory by default.
func (m *Manifest) Root() string {
	root := m.Config.Package.Root
	if root == "" {
		return m.Dir
	}
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(m.Dir, root)
}

// Entries returns absolute entry point paths.
func (m *Manifest) Entries() []string {
	root := m.Root()
	out := make([]string, 0, len(m.Config.Package.Entries))
	for _, e := range m.Config.Package.Entries {
		if filepath.IsAbs(e) {
			out = append(out, filepath.Clean(e))
			continue
		}
		out = append(out, filepath.Join(root, e))
	}
	return out
}

// Policy turns the [expand] section into explicit rules. Unset keys keep
// their default values and lose to any later explicit layer.
func (m *Manifest) Policy() (rules.Policy, error) {
	return m.Config.Expand.Policy()
}

// Policy turns the section into explicit rules over rules.Defaults().
func (c ExpandConfig) Policy() (rules.Policy, error) {
	p := rules.Defaults()
	if c.DisplayWarnings != nil {
		p.SetDisplayWarnings(*c.DisplayWarnings)
	}
	if c.SameIncludes != "" {
		v, err := rules.ParseSameIncludes(c.SameIncludes)
		if err != nil {
			return p, fmt.Errorf("same_includes: %w: %w", ErrUnknownOption, err)
		}
		p.SetSameIncludes(v)
	}
	if c.MultipleVersions != "" {
		v, err := rules.ParseMultipleVersions(c.MultipleVersions)
		if err != nil {
			return p, fmt.Errorf("multiple_versions: %w: %w", ErrUnknownOption, err)
		}
		p.SetMultipleVersions(v)
	}
	if c.VersionPlacement != "" {
		v, err := rules.ParseVersionPlacement(c.VersionPlacement)
		if err != nil {
			return p, fmt.Errorf("version_placement: %w: %w", ErrUnknownOption, err)
		}
		p.SetVersionPlacement(v)
	}
	return p, nil
}
