package vm

import (
	"bytes"
	"strings"
	"testing"

	"juno/internal/bytecode"
	"juno/internal/compiler"
	"juno/internal/lexer"
	"juno/internal/parser"
)

// runSource lexes, parses and compiles src, runs it with print wired to a
// buffer instead of stdout, and returns the captured stdout plus any
// RuntimeError Execute produced.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	program, err := compiler.Compile(stmts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	m := New()
	var out bytes.Buffer
	m.RegisterNative(bytecode.PrintNativeID, newPrintNative(&out))
	m.LoadProgram(program)

	_, execErr := m.Execute()
	return out.String(), execErr
}

func TestScenarioAddAndPrint(t *testing.T) {
	out, err := runSource(t, `let x = 2 + 3; print(x);`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "5 \n" {
		t.Fatalf("stdout = %q, want %q", out, "5 \n")
	}
}

func TestScenarioComptimeFold(t *testing.T) {
	src := `@comptime let y = 2 * 3 + 4; print(y);`
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	program, err := compiler.Compile(stmts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	movCount := 0
	for _, word := range program.Code {
		if bytecode.Decode(word).Opcode() == bytecode.MOV {
			movCount++
		}
	}
	if movCount != 1 {
		t.Fatalf("MOV count = %d, want 1 (fold should collapse 2*3+4 into one literal)", movCount)
	}

	m := New()
	var out bytes.Buffer
	m.RegisterNative(bytecode.PrintNativeID, newPrintNative(&out))
	m.LoadProgram(program)
	if _, err := m.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "10 \n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "10 \n")
	}
}

func TestScenarioFunctionCall(t *testing.T) {
	out, err := runSource(t, `fn add(a: int, b: int) -> int { return a + b; } print(add(7, 8));`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "15 \n" {
		t.Fatalf("stdout = %q, want %q", out, "15 \n")
	}
}

func TestScenarioIfElse(t *testing.T) {
	out, err := runSource(t, `let x = 5; if (x < 10) { print(1); } else { print(2); }`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "1 \n" {
		t.Fatalf("stdout = %q, want %q", out, "1 \n")
	}
}

func TestScenarioStringPrint(t *testing.T) {
	out, err := runSource(t, `let s = "hi"; print(s);`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "hi \n" {
		t.Fatalf("stdout = %q, want %q", out, "hi \n")
	}
}

func TestScenarioDivisionByZeroTraps(t *testing.T) {
	_, err := runSource(t, `let x = 6 / 0;`)
	if err == nil {
		t.Fatalf("expected a RuntimeError for division by zero")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("error = %q, want it to mention division by zero", err.Error())
	}
}

func TestCallRestoresCallerRegistersExceptResultReg(t *testing.T) {
	// f() always returns 99 via register 0 regardless of what it does to
	// its own registers; the caller's registers beyond the result slot
	// must come back untouched after RET.
	out, err := runSource(t, `
fn f() -> int { return 99; }
let a = 1;
let b = 2;
let c = f();
print(a);
print(b);
print(c);
`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "1 \n2 \n99 \n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestExecuteEmptyProgramTraps(t *testing.T) {
	m := New()
	if _, err := m.Execute(); err == nil {
		t.Fatalf("expected a RuntimeError when no bytecode is loaded")
	}
}

func TestExecuteUnboundedLoopHitsCallStackOverflow(t *testing.T) {
	// A recursive function with no base case should trap with a call
	// stack overflow rather than looping forever.
	out, err := runSource(t, `fn loop() -> int { return loop(); } print(loop());`)
	if err == nil {
		t.Fatalf("expected a RuntimeError; stdout was %q", out)
	}
	if !strings.Contains(err.Error(), "call stack overflow") {
		t.Fatalf("error = %q, want it to mention call stack overflow", err.Error())
	}
}
