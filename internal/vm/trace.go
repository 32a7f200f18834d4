package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"juno/internal/bytecode"
)

// Tracer writes one line per dispatched instruction to an io.Writer, for
// the --vm-trace CLI flag. Mnemonics are padded to a fixed display width
// with go-runewidth so traced output stays column-aligned in a monospace
// terminal.
type Tracer struct {
	out io.Writer
}

// NewTracer creates a Tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out}
}

const mnemonicColumnWidth = 6

func (t *Tracer) trace(pc int, inst bytecode.Instruction) {
	name := inst.Opcode().String()
	pad := mnemonicColumnWidth - runewidth.StringWidth(name)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(t.out, "%04d: %s%s op1=%-3d op2=%-3d op3=%-3d\n",
		pc, name, strings.Repeat(" ", pad), inst.Op1(), inst.Op2(), inst.Op3())
}
