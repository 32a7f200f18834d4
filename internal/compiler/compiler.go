// Package compiler lowers a Juno AST into a packed bytecode.Program: a
// two-pass pipeline over the top-level statement list with a register
// allocator, a lexical-scope variable table, a string constant pool, and
// two-pass function-address resolution.
package compiler

import (
	"fortio.org/safecast"

	"juno/internal/ast"
	"juno/internal/bytecode"
)

// Compiler holds all mutable state for one compilation. It is not safe
// for concurrent use, and every field is instance-local: nothing here is
// process-wide.
type Compiler struct {
	code        []uint32
	strings     []string
	stringIndex map[string]uint8
	functions   map[string]uint8
	natives     map[string]uint8
	regs        registerAllocator
	scopes      []*scope
}

// New creates a Compiler with the fixed native function table required by
// this implementation (print = 128).
func New() *Compiler {
	return &Compiler{
		stringIndex: make(map[string]uint8),
		functions:   make(map[string]uint8),
		natives:     map[string]uint8{"print": bytecode.PrintNativeID},
	}
}

// Compile lowers stmts into a runnable bytecode.Program, or returns the
// first CompileError encountered.
func Compile(stmts []ast.Stmt) (*bytecode.Program, error) {
	c := New()
	return c.compile(stmts)
}

func (c *Compiler) compile(stmts []ast.Stmt) (*bytecode.Program, error) {
	c.enterScope()

	// Prologue: a placeholder JMP that skips over the function bodies
	// emitted in pass 1. Its target is patched once pass 1 finishes.
	prologueAddr := len(c.code)
	c.emit(bytecode.PackJump(bytecode.JMP, 0))

	for _, s := range stmts {
		proto, ok := s.(*ast.FnProto)
		if !ok || proto.Name == "" {
			continue
		}
		if err := c.compilePrototype(proto); err != nil {
			return nil, err
		}
	}

	entryAddr, err := safecast.Conv[uint16](len(c.code))
	if err != nil {
		return nil, errorf("bytecode too large to address with a 16-bit jump target")
	}
	c.patchJump(prologueAddr, entryAddr)

	for _, s := range stmts {
		if proto, ok := s.(*ast.FnProto); ok && proto.Name != "" {
			continue
		}
		if err := c.compileStatement(s); err != nil {
			return nil, err
		}
	}

	c.emit(bytecode.Pack(bytecode.HLT, 0, 0, 0))

	if err := c.exitScope(); err != nil {
		return nil, err
	}

	return &bytecode.Program{
		Code:      c.code,
		Strings:   c.strings,
		Functions: c.functions,
	}, nil
}

// emit appends a packed instruction to the bytecode stream and returns
// the address it was written at.
func (c *Compiler) emit(inst bytecode.Instruction) int {
	addr := len(c.code)
	c.code = append(c.code, inst.Data())
	return addr
}

// here returns the address the next emitted instruction will occupy.
func (c *Compiler) here() (uint16, error) {
	addr, err := safecast.Conv[uint16](len(c.code))
	if err != nil {
		return 0, errorf("bytecode too large to address with a 16-bit jump target")
	}
	return addr, nil
}

// patchJump overwrites an already-emitted JMP's 16-bit target field.
func (c *Compiler) patchJump(addr int, target uint16) {
	c.patchTarget(addr, target)
}

// patchCondJump overwrites an already-emitted JZ/JNZ's 16-bit target
// field, preserving its opcode and condition-register operand.
func (c *Compiler) patchCondJump(addr int, target uint16) {
	c.patchTarget(addr, target)
}

func (c *Compiler) patchTarget(addr int, target uint16) {
	existing := bytecode.Decode(c.code[addr])
	patched := bytecode.Pack(existing.Opcode(), existing.Op1(), byte(target>>8), byte(target))
	c.code[addr] = patched.Data()
}

// internString interns s into the string pool, returning its index. The
// pool holds at most bytecode.MaxStrings entries; interning a novel
// string past that limit is a CompileError. Interning an already-present
// string is idempotent and never fails.
func (c *Compiler) internString(s string) (uint8, error) {
	if idx, ok := c.stringIndex[s]; ok {
		return idx, nil
	}
	if len(c.strings) >= bytecode.MaxStrings {
		return 0, errorf("string pool exhausted (max %d entries)", bytecode.MaxStrings)
	}
	idx := uint8(len(c.strings))
	c.strings = append(c.strings, s)
	c.stringIndex[s] = idx
	return idx, nil
}

// compilePrototype emits a named function's body at the current bytecode
// address, recording that address in the function table. Register
// allocation and scoping are reset for the duration of the body and
// restored afterwards, per the calling convention: parameters are bound
// to registers 0, 1, 2, ... positionally.
func (c *Compiler) compilePrototype(proto *ast.FnProto) error {
	addr, err := safecast.Conv[uint8](len(c.code))
	if err != nil || addr > bytecode.MaxFunctionAddr {
		return errorf("function %q address exceeds the %d-word user function range", proto.Name, bytecode.MaxFunctionAddr+1)
	}
	c.functions[proto.Name] = addr

	savedCursor := c.regs.save()
	c.regs.restore(0)
	c.enterScope()

	for _, param := range proto.Params {
		reg, err := c.regs.alloc()
		if err != nil {
			return err
		}
		if err := c.declare(param.Name, reg); err != nil {
			return err
		}
	}

	if err := c.compileStatement(proto.Body); err != nil {
		return err
	}

	if len(c.code) == 0 || bytecode.Decode(c.code[len(c.code)-1]).Opcode() != bytecode.RET {
		c.emit(bytecode.Pack(bytecode.RET, 0, 0, 0))
	}

	if err := c.exitScope(); err != nil {
		return err
	}
	c.regs.restore(savedCursor)
	return nil
}

// resolveCallee resolves a call target to its function-address operand,
// distinguishing user functions (address < bytecode.NativeBase) from
// natives (address >= bytecode.NativeBase).
func (c *Compiler) resolveCallee(name string) (uint8, error) {
	if addr, ok := c.functions[name]; ok {
		return addr, nil
	}
	if id, ok := c.natives[name]; ok {
		return id, nil
	}
	return 0, errorf("unknown function %q", name)
}
