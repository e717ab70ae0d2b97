package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/greennom/calc"
	"github.com/dhamidi/greennom/lsp"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server for calc files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []calc.Option
			if cfg.Trace {
				opts = append(opts, calc.WithTrace())
			}
			server := lsp.NewServer(version, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().Bool("trace", false, "log every grammar rule attempt (needs -v 4)")

	return cmd
}
