package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/greennom/calc"
	"github.com/dhamidi/greennom/ebnflex"
)

func newLexCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:          "lex <file>",
		Short:        "Tokenize a file (or - for stdin) and print one token per line",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := readSource(filename)
			if err != nil {
				return err
			}

			var grammar ebnf.Grammar
			if grammarFile != "" {
				grammar, err = ebnflex.LoadGrammar(grammarFile)
			} else {
				grammar, err = calc.Grammar()
			}
			if err != nil {
				return err
			}

			tokens, err := ebnflex.NewLexer(grammar, src, filename).Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF token grammar (default: the calc grammar)")

	return cmd
}
