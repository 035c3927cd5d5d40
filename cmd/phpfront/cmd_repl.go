package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phpfront/format"
	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/dhamidi/phpfront/php/parser"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	replPrompt      = "php> "
	replContinue    = "...> "
	replHistoryFile = ".phpfront_history"
)

const replHelp = `Enter PHP code to see how it parses. "<?php " is added unless the input
starts with "<?". Input with unclosed constructs continues on the next line;
an empty line submits it anyway.

  :format NAME   switch output format (` + "%s" + `)
  :help          show this help
  :quit          leave
`

func newReplCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse PHP snippets interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := format.New(outputFormat, io.Discard); err != nil {
				return err
			}
			r := &repl{format: outputFormat, out: os.Stdout}
			return r.run()
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dump", "output format ("+strings.Join(format.Names(), ", ")+")")

	return cmd
}

type repl struct {
	format string
	out    io.Writer
}

func (r *repl) run() error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		input, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.out)
			break
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				break
			}
			continue
		}
		r.show(input)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	} else {
		log.Debugf("write history: %v", err)
	}
	return nil
}

// read collects lines until the snippet parses without running off the end
// of the input. It returns false on end of input.
func (r *repl) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := replPrompt
		if b.Len() > 0 {
			prompt = replContinue
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !incomplete(parser.Parse(wrapSnippet(src))) {
			return src, true
		}
	}
}

func (r *repl) command(line string) (exit bool) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintf(r.out, replHelp, strings.Join(format.Names(), ", "))
	case ":format":
		if len(fields) < 2 {
			fmt.Fprintf(r.out, "format: %s\n", r.format)
			return false
		}
		if _, err := format.New(fields[1], io.Discard); err != nil {
			fmt.Fprintln(r.out, err)
			return false
		}
		r.format = fields[1]
	default:
		fmt.Fprintln(r.out, "unknown command, type :help for help")
	}
	return false
}

func (r *repl) show(input string) {
	f := codebase.ParseFile("<repl>", wrapSnippet(input))
	if f.Err != nil {
		fmt.Fprintln(r.out, f.Err)
		return
	}
	enc, err := format.New(r.format, r.out)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	if err := enc.Encode(f.Tree); err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	for _, d := range f.Diagnostics {
		fmt.Fprintf(r.out, "%s\n", d)
	}
}

func wrapSnippet(src string) []byte {
	if strings.HasPrefix(strings.TrimLeft(src, " \t\r\n"), "<?") {
		return []byte(src)
	}
	return []byte("<?php " + src)
}

// incomplete reports whether the parse ran out of input: some error sits at
// the end of file and skipped nothing but the end of file itself.
func incomplete(tree *parser.Tree) bool {
	children := tree.Root.Children
	if len(children) == 0 {
		return false
	}
	eof, ok := children[len(children)-1].(*parser.Token)
	if !ok || eof.Kind != parser.TokenEndOfFile {
		return false
	}
	for _, e := range parser.Errors(tree.Root) {
		if e.Offset != eof.Offset {
			continue
		}
		if u := e.Unexpected(); u == nil || u.Kind == parser.TokenEndOfFile {
			return true
		}
	}
	return false
}
