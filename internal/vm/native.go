package vm

import (
	"fmt"
	"io"
	"strings"

	"juno/internal/bytecode"
)

// NativeFunc is the host-provided ABI for a VM native function: it reads
// its arguments directly out of the register file at
// registers[baseReg:baseReg+argCount] and may write output. A native CALL
// pushes no frame, so nothing restores the register file afterwards; the
// built-in natives only read it.
type NativeFunc func(registers *[RegisterCount]uint32, baseReg uint8, argCount uint8, strings []string)

// newPrintNative returns the built-in 'print' native (id
// bytecode.PrintNativeID): it formats every argument - a tagged register
// resolves through the string pool, anything else prints as an integer -
// joins them with a single space, and writes the result followed by one
// trailing space and a newline (print(5) writes "5 \n").
func newPrintNative(out io.Writer) NativeFunc {
	return func(registers *[RegisterCount]uint32, baseReg uint8, argCount uint8, pool []string) {
		parts := make([]string, 0, argCount)
		for offset := uint8(0); offset < argCount; offset++ {
			value := registers[int(baseReg)+int(offset)]
			if bytecode.IsString(value) {
				idx := bytecode.StringIndex(value)
				if int(idx) < len(pool) {
					parts = append(parts, pool[idx])
				}
			} else {
				parts = append(parts, fmt.Sprintf("%d", value))
			}
		}
		line := strings.Join(parts, " ")
		_, _ = fmt.Fprintf(out, "%s ", line)
		_, _ = fmt.Fprintln(out)
	}
}
