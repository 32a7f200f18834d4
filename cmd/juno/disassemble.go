package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"juno/internal/artifact"
	"juno/internal/bytecode"
	"juno/internal/compiler"
	"juno/internal/diagfmt"
	"juno/internal/lexer"
	"juno/internal/parser"
)

var disassembleCmd = &cobra.Command{
	Use:     "disassemble [flags] [file.jn|file.jnc]",
	Aliases: []string{"disasm"},
	Short:   "Print a compiled program's instructions with mnemonics",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runDisassemble,
}

func runDisassemble(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 1 {
		arg = args[0]
	}

	var program *bytecode.Program
	if strings.HasSuffix(arg, ".jnc") {
		p, err := artifact.Read(arg)
		if err != nil {
			return err
		}
		program = p
	} else {
		filePath, err := resolveEntry(arg)
		if err != nil {
			return err
		}
		p, err := compileForDisassembly(cmd, filePath)
		if err != nil {
			return err
		}
		program = p
	}

	printFunctionTable(program)
	printInstructions(program)
	return nil
}

func compileForDisassembly(cmd *cobra.Command, filePath string) (*bytecode.Program, error) {
	printer := diagfmt.New(os.Stderr, colorEnabled(cmd, os.Stderr))

	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Tokenize(string(src))
	if err != nil {
		printer.Report(diagfmt.StageLex, err)
		os.Exit(1)
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		printer.Report(diagfmt.StageParse, err)
		os.Exit(1)
	}

	program, err := compiler.Compile(stmts)
	if err != nil {
		printer.Report(diagfmt.StageCompile, err)
		os.Exit(1)
	}
	return program, nil
}

func printFunctionTable(program *bytecode.Program) {
	if len(program.Functions) == 0 {
		return
	}
	fmt.Println("functions:")
	for name, addr := range program.Functions {
		fmt.Printf("  %-16s @%d\n", name, addr)
	}
}

func printInstructions(program *bytecode.Program) {
	for pc, word := range program.Code {
		inst := bytecode.Decode(word)
		op := inst.Opcode()
		fmt.Printf("%04d: %-5s %s\n", pc, op, operandString(program, inst))
	}
}

func operandString(program *bytecode.Program, inst bytecode.Instruction) string {
	switch inst.Opcode() {
	case bytecode.JMP:
		return fmt.Sprintf("-> %04d", inst.JumpTarget())
	case bytecode.JZ, bytecode.JNZ:
		return fmt.Sprintf("r%d, -> %04d", inst.Op1(), inst.JumpTarget())
	case bytecode.CALL:
		return fmt.Sprintf("@%d, result=r%d, argc=%d", inst.Op1(), inst.Op2(), inst.Op3())
	case bytecode.LOADS:
		idx := inst.Op2()
		if int(idx) < len(program.Strings) {
			return fmt.Sprintf("r%d, %q", inst.Op1(), program.Strings[idx])
		}
		return fmt.Sprintf("r%d, str#%d", inst.Op1(), idx)
	case bytecode.HLT, bytecode.RET:
		return ""
	default:
		return fmt.Sprintf("r%d, op2=%d, op3=%d", inst.Op1(), inst.Op2(), inst.Op3())
	}
}
