package artifact

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"juno/internal/bytecode"
)

func TestWriteReadRoundTrip(t *testing.T) {
	prog := &bytecode.Program{
		Code:      []uint32{uint32(bytecode.Pack(bytecode.MOV, 0, 5, 0)), uint32(bytecode.Pack(bytecode.HLT, 0, 0, 0))},
		Strings:   []string{"hello"},
		Functions: map[string]uint8{"main": 1},
	}

	path := filepath.Join(t.TempDir(), "out.jnc")
	if err := Write(path, prog); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got.Code, prog.Code) {
		t.Fatalf("Code = %v, want %v", got.Code, prog.Code)
	}
	if !reflect.DeepEqual(got.Strings, prog.Strings) {
		t.Fatalf("Strings = %v, want %v", got.Strings, prog.Strings)
	}
	if !reflect.DeepEqual(got.Functions, prog.Functions) {
		t.Fatalf("Functions = %v, want %v", got.Functions, prog.Functions)
	}
}

func TestReadRejectsMismatchedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jnc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale := payload{Schema: schemaVersion + 1}
	if err := msgpack.NewEncoder(f).Encode(&stale); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Fatalf("expected a schema mismatch error")
	}
}
