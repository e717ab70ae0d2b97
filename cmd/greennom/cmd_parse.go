package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/greennom/calc"
	"github.com/dhamidi/greennom/format"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "parse <file>",
		Short:        "Parse a calc file (or - for stdin) and dump its syntax tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := readSource(filename)
			if err != nil {
				return err
			}

			opts := []calc.Option{calc.WithFile(filename)}
			if cfg.Trace {
				opts = append(opts, calc.WithTrace())
			}
			root, diags, err := calc.Parse(src, opts...)
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch cfg.Format {
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			case "text":
				encoder = format.NewTextEncoder(cmd.OutOrStdout(), cfg.Positions)
			case "lines":
				encoder = format.NewLineEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", cfg.Format)
			}

			tree := &format.Tree{Root: root, Diagnostics: diags, KindName: calc.KindName}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if cfg.Format == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}

			if len(diags) > 0 {
				return fmt.Errorf("%s: %d syntax errors", filename, len(diags))
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, json, lines)")
	cmd.Flags().Bool("positions", false, "include text ranges in text output")
	cmd.Flags().Bool("trace", false, "log every grammar rule attempt (needs -v 4)")

	return cmd
}
