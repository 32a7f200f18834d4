package main

import (
	"errors"
	"os"

	"juno/internal/project"
)

// resolveEntry turns a CLI path argument into a concrete source file. If the
// argument names a directory (or is empty), it looks for a juno.toml above
// that directory and follows its [run].main entry.
func resolveEntry(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return arg, nil
	}

	manifest, ok, err := project.Load(arg)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New(project.NoManifestMessage)
	}
	return project.EntryFile(manifest)
}
