// Package project resolves a juno.toml project manifest so the CLI can be
// pointed at a directory instead of a single source file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const NoManifestMessage = "no juno.toml found\nplease specify the entry file explicitly, e.g.:\n  juno run path/to/main.jn"

// Manifest is a parsed juno.toml together with the directory it was found in.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the [package] and [run] tables of a juno.toml file.
type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// Find walks upward from startDir looking for a juno.toml, the way a
// version-control root is discovered: check the directory, then its parent,
// until the filesystem root is reached.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "juno.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the nearest juno.toml above startDir. ok is false
// (with a nil error) when no manifest exists anywhere above startDir.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
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
	if !meta.IsDefined("run") {
		return Config{}, fmt.Errorf("%s: missing [run]", path)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return Config{}, fmt.Errorf("%s: missing [run].main", path)
	}
	return cfg, nil
}

// EntryFile resolves the manifest's [run].main path to an absolute file
// path. Juno has no module system, so unlike the multi-file package
// resolution a directory target would need in a language with imports,
// a directory [run].main is accepted only as a convenience for "the one
// source file in this directory" — it must contain exactly one .jn file,
// which becomes the entry point.
func EntryFile(m *Manifest) (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return soleSourceFile(m.Path, mainPath)
	}
	if filepath.Ext(mainPath) != ".jn" {
		return "", fmt.Errorf("%s: [run].main must be a .jn file or a directory containing exactly one", m.Path)
	}
	return mainPath, nil
}

// soleSourceFile finds the single .jn file directly inside dir. It errors if
// dir holds none or more than one, since there is no import graph to pick an
// entry module out of a package the way a language with modules would.
func soleSourceFile(manifestPath, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read [run].main directory %s: %w", manifestPath, dir, err)
	}
	var found string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jn" {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("%s: [run].main directory %s has more than one .jn file (%s, %s); Juno has no module system, so name the entry file directly", manifestPath, dir, found, entry.Name())
		}
		found = entry.Name()
	}
	if found == "" {
		return "", fmt.Errorf("%s: [run].main directory %s has no .jn file", manifestPath, dir)
	}
	return filepath.Join(dir, found), nil
}
