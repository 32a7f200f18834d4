package compiler

import (
	"strings"
	"testing"

	"juno/internal/ast"
	"juno/internal/bytecode"
	"juno/internal/lexer"
	"juno/internal/parser"
)

func compileSource(t *testing.T, src string) (*bytecode.Program, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Compile(stmts)
}

func TestCompileEmitsExactlyOneHLTAtTheEnd(t *testing.T) {
	program, err := compileSource(t, `let x = 1; print(x);`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	hltCount := 0
	for i, word := range program.Code {
		if bytecode.Decode(word).Opcode() == bytecode.HLT {
			hltCount++
			if i != len(program.Code)-1 {
				t.Fatalf("HLT found at %d, not the last instruction (%d)", i, len(program.Code)-1)
			}
		}
	}
	if hltCount != 1 {
		t.Fatalf("HLT count = %d, want 1", hltCount)
	}
}

func TestCompileFunctionAddressResolution(t *testing.T) {
	program, err := compileSource(t, `fn id(a: int) -> int { return a; } print(id(1));`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if addr, ok := program.Functions["id"]; !ok || addr > bytecode.MaxFunctionAddr {
		t.Fatalf("Functions[%q] = (%d, %v), want a valid user-function address", "id", addr, ok)
	}
}

func TestCompileRegisterExhaustionIsCompileError(t *testing.T) {
	c := New()
	c.enterScope()
	for i := 0; i < 256; i++ {
		if _, err := c.regs.alloc(); err != nil {
			t.Fatalf("alloc %d: unexpected error %v", i, err)
		}
	}
	if _, err := c.regs.alloc(); err == nil {
		t.Fatalf("expected a CompileError once all 256 registers are allocated")
	}
}

func TestCompileStringPoolExhaustionIsCompileError(t *testing.T) {
	c := New()
	for i := 0; i < bytecode.MaxStrings; i++ {
		if _, err := c.internString(strings.Repeat("s", i+1)); err != nil {
			t.Fatalf("internString %d: unexpected error %v", i, err)
		}
	}
	if _, err := c.internString("one string too many"); err == nil {
		t.Fatalf("expected a CompileError once the string pool holds %d entries", bytecode.MaxStrings)
	}
}

func TestCompileStringPoolInterningIsIdempotent(t *testing.T) {
	c := New()
	first, err := c.internString("hi")
	if err != nil {
		t.Fatalf("internString: %v", err)
	}
	second, err := c.internString("hi")
	if err != nil {
		t.Fatalf("internString: %v", err)
	}
	if first != second {
		t.Fatalf("interning the same string twice returned different indices: %d, %d", first, second)
	}
}

func TestCompileUndefinedVariableIsCompileError(t *testing.T) {
	if _, err := compileSource(t, `print(missing);`); err == nil {
		t.Fatalf("expected a CompileError for an undefined variable")
	}
}

func TestCompileUnknownFunctionIsCompileError(t *testing.T) {
	if _, err := compileSource(t, `print(mystery(1));`); err == nil {
		t.Fatalf("expected a CompileError for an unresolved call target")
	}
}

func TestCompileLambdaCannotBeLoweredToValue(t *testing.T) {
	c := New()
	_, err := c.compileExpression(&ast.FuncExpr{Proto: &ast.FnProto{}})
	if err == nil {
		t.Fatalf("expected a CompileError lowering a lambda expression")
	}
}

func TestCompileComptimeFoldEmitsFoldedImmediate(t *testing.T) {
	folded, err := compileSource(t, `@comptime let y = 2 * 3 + 4; print(y);`)
	if err != nil {
		t.Fatalf("Compile (folded): %v", err)
	}
	unfolded, err := compileSource(t, `let y = 2 * 3 + 4; print(y);`)
	if err != nil {
		t.Fatalf("Compile (unfolded): %v", err)
	}

	foldedImm := -1
	for _, word := range folded.Code {
		inst := bytecode.Decode(word)
		if inst.Opcode() == bytecode.MOV {
			foldedImm = int(inst.Op2())
		}
	}
	if foldedImm != 10 {
		t.Fatalf("folded MOV immediate = %d, want 10", foldedImm)
	}
	_ = unfolded // compiles to the same runtime value via ADD/MUL instead of a single MOV
}
