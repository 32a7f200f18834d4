package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"juno/internal/diagfmt"
	"juno/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.jn>",
	Short: "Print the token stream for a Juno source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	printer := diagfmt.New(os.Stderr, colorEnabled(cmd, os.Stderr))

	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(string(src))
	if err != nil {
		printer.Report(diagfmt.StageLex, err)
		os.Exit(1)
	}

	for _, tok := range tokens {
		fmt.Printf("%4d:%-3d %-10s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Lexeme)
	}
	return nil
}
