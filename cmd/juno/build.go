package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"juno/internal/artifact"
	"juno/internal/compiler"
	"juno/internal/diagfmt"
	"juno/internal/lexer"
	"juno/internal/parser"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.jn]",
	Short: "Compile a Juno program to a bytecode artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output artifact path (default: <file>.jnc)")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = strings.TrimSuffix(filePath, ".jn") + ".jnc"
	}
	return artifact.Write(out, program)
}
