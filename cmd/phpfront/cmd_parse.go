package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/phpfront/format"
	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeTrivia bool
	var check bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a PHP file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readInput(filename)
			if err != nil {
				return err
			}

			f := codebase.ParseFile(filename, data)
			if f.Err != nil {
				return fmt.Errorf("parse %s: %w", filename, f.Err)
			}

			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			if j, ok := enc.(*format.ASTJSONEncoder); ok {
				j.IncludeTrivia = includeTrivia
			}
			if err := enc.Encode(f.Tree); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}

			for _, d := range f.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s:%s\n", filename, d)
			}
			if check && len(f.Diagnostics) > 0 {
				return fmt.Errorf("%s: %d syntax errors", filename, len(f.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments in json output")
	cmd.Flags().BoolVar(&check, "check", false, "exit with an error if the file has syntax errors")

	return cmd
}

// readInput reads a file, or standard input when name is "-".
func readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read php file: %w", err)
	}
	return data, nil
}
