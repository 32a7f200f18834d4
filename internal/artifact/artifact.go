// Package artifact persists a compiled bytecode.Program to disk: `juno
// build` writes it as a .jnc file and `juno disassemble` can read it back.
// `juno run` does not read artifacts; it always compiles from source.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"juno/internal/bytecode"
)

// schemaVersion is bumped whenever the on-disk payload shape changes, so a
// stale .jnc file from an older build is rejected instead of misread.
const schemaVersion uint16 = 1

// payload is the on-disk shape of a compiled program. It mirrors
// bytecode.Program field for field; keeping it separate from Program itself
// means a future wire-format change doesn't have to touch the compiler.
type payload struct {
	Schema    uint16
	Code      []uint32
	Strings   []string
	Functions map[string]uint8
}

// Write serializes p to path as msgpack, replacing any existing file
// atomically via a temp file in the same directory.
func Write(path string, p *bytecode.Program) error {
	body := payload{
		Schema:    schemaVersion,
		Code:      p.Code,
		Strings:   p.Strings,
		Functions: p.Functions,
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "artifact-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(&body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Read deserializes a bytecode.Program previously written by Write.
func Read(path string) (*bytecode.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body.Schema != schemaVersion {
		return nil, fmt.Errorf("%s: unsupported artifact schema %d (want %d)", path, body.Schema, schemaVersion)
	}
	return &bytecode.Program{
		Code:      body.Code,
		Strings:   body.Strings,
		Functions: body.Functions,
	}, nil
}
