package main

import (
	"os"

	"github.com/spf13/cobra"

	"juno/internal/compiler"
	"juno/internal/diagfmt"
	"juno/internal/lexer"
	"juno/internal/parser"
	"juno/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.jn]",
	Short: "Compile and execute a Juno program",
	Long:  `Tokenizes, parses and compiles a Juno source file, then executes it on the register VM.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().Bool("vm-trace", false, "log every dispatched instruction to stderr")
	runCmd.Flags().Bool("debug", false, "dump the register file to stderr at halt")
}

func runExecution(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	filePath, err := resolveEntry(arg)
	if err != nil {
		return err
	}

	printer := diagfmt.New(os.Stderr, colorEnabled(cmd, os.Stderr))

	src, err := os.ReadFile(filePath)
	if err != nil {
		return err
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

	machine := vm.New()
	machine.LoadProgram(program)

	debug, _ := cmd.Flags().GetBool("debug")
	machine.Debug = debug

	trace, _ := cmd.Flags().GetBool("vm-trace")
	if trace {
		machine.Tracer = vm.NewTracer(os.Stderr)
	}

	if _, err := machine.Execute(); err != nil {
		printer.Report(diagfmt.StageRuntime, err)
		os.Exit(1)
	}
	return nil
}
