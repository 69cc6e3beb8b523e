// Package project locates and parses keel.toml, the project manifest.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file commands search for when no path is given.
const ManifestName = "keel.toml"

// Config is the parsed manifest content.
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

// PackageConfig names the project.
type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// CheckConfig carries defaults for the check command. Zero values mean
// "use the CLI default".
type CheckConfig struct {
	// Source is the directory holding .kl files, relative to the manifest.
	Source string `toml:"source"`
	// MaxDiagnostics bounds diagnostics per file.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Jobs limits check parallelism.
	Jobs int `toml:"jobs"`
}

// Manifest couples the parsed config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// SourceDir resolves the configured source directory against the project
// root, defaulting to the root itself.
func (m *Manifest) SourceDir() string {
	if m.Config.Check.Source == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Check.Source))
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return cfg, nil
}

// Load finds the manifest upwards from startDir and parses it. ok is false
// when no manifest exists on the path to the filesystem root.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
