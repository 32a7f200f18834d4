package bytecode

// stringTag is bit 31 of a register value: when set, the remaining 31
// bits are a string-pool index instead of a plain integer.
const stringTag uint32 = 0x8000_0000

// IsString reports whether a register value is tagged as a string-pool
// index.
func IsString(v uint32) bool { return v&stringTag != 0 }

// StringIndex extracts the string-pool index from a tagged register
// value. The caller must have already checked IsString.
func StringIndex(v uint32) uint32 { return v &^ stringTag }

// MakeStringValue tags a string-pool index as a register value. LOADS is
// the only opcode that produces a tagged value.
func MakeStringValue(idx uint32) uint32 { return idx | stringTag }
