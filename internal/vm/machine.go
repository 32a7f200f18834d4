// Package vm implements the register-based bytecode machine: the call
// stack, frame management, native dispatch and the instruction dispatch
// loop described in spec.md §4.4.
package vm

import (
	"fmt"
	"os"

	"juno/internal/bytecode"
)

// Machine is a register-based VM instance. It owns its registers, call
// stack, bytecode, string pool and native table; concurrent calls to
// Execute on the same instance are undefined, but independent Machine
// instances never share state and may run on independent goroutines
// without coordination (see RunAll).
type Machine struct {
	registers [RegisterCount]uint32
	code      []uint32
	strings   []string
	pc        int
	fp        uint8
	halted    bool

	callStack []frame
	natives   map[uint8]NativeFunc

	// Debug enables register-file logging: when set, Execute logs the
	// final register file on halt.
	Debug bool
	// Tracer, if non-nil, receives a line for every dispatched
	// instruction.
	Tracer *Tracer

	profile profiler
}

// New creates a Machine with the required native function set already
// registered: id 128 = print, writing to os.Stdout.
func New() *Machine {
	m := &Machine{natives: make(map[uint8]NativeFunc)}
	m.RegisterNative(bytecode.PrintNativeID, newPrintNative(os.Stdout))
	return m
}

// Load installs a new bytecode program, taking an owned copy of it and
// resetting all execution state (registers, pc, fp, call stack, halted
// flag). It does not touch the string pool or the native table.
func (m *Machine) Load(code []uint32) {
	m.code = append([]uint32(nil), code...)
	m.reset()
}

// LoadStrings installs an owned copy of the string pool referenced by
// LOADS instructions.
func (m *Machine) LoadStrings(pool []string) {
	m.strings = append([]string(nil), pool...)
}

// LoadProgram is a convenience wrapper loading both the bytecode and the
// string pool of a compiled artifact in one call. It never touches
// Program.Functions: the VM dispatches purely on the addresses already
// baked into CALL operands by the compiler.
func (m *Machine) LoadProgram(p *bytecode.Program) {
	m.Load(p.Code)
	m.LoadStrings(p.Strings)
}

// RegisterNative installs a native function under id. Natives are
// instance-local: there is no process-wide native table.
func (m *Machine) RegisterNative(id uint8, fn NativeFunc) {
	m.natives[id] = fn
}

func (m *Machine) reset() {
	m.registers = [RegisterCount]uint32{}
	m.pc = 0
	m.fp = 0
	m.halted = false
	m.callStack = m.callStack[:0]
	m.profile.reset()
}

// Execute runs the loaded bytecode to completion and returns the value of
// register 0 at halt, or the first RuntimeError encountered. The Machine
// must be reloaded with Load before it can be executed again.
func (m *Machine) Execute() (uint32, error) {
	if len(m.code) == 0 {
		return 0, trap("no bytecode to execute")
	}

	for m.pc < len(m.code) {
		if err := m.executeOne(); err != nil {
			return 0, err
		}
		if m.halted {
			if m.Debug {
				fmt.Fprintf(os.Stderr, "registers: %v\n", m.registers)
			}
			return m.registers[0], nil
		}
	}

	return 0, trap("program was aborted without a HLT instruction, please check your compiler")
}
