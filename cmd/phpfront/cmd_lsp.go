package main

import (
	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infof("phpfront %s language server starting", version)
			return codebase.NewLSPServer(version).RunStdio()
		},
	}
}
