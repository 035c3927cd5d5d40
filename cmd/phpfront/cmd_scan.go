package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/dhamidi/phpfront/project"
	"github.com/spf13/cobra"
)

func newScanCmd(g *globals) *cobra.Command {
	var timeout time.Duration
	var strict bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Parse every PHP file under a directory and report syntax errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			s := newScanner(g.project, cmd.OutOrStdout())
			s.quiet = quiet
			if cmd.Flags().Changed("timeout") {
				s.timeout = timeout
			}
			summary, err := s.run(path)
			if err != nil {
				return err
			}
			summary.print(s.out)
			return summary.check(strict)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "timeout per file, overrides scan.timeout")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error if any file has syntax errors")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print files with problems")

	return cmd
}

type scanner struct {
	// project is used for single files; directories load their own.
	project *project.Project
	// timeout overrides the project setting when non-zero.
	timeout time.Duration
	quiet   bool
	out     io.Writer
	parse   func(path string, content []byte) *codebase.File
}

func newScanner(p *project.Project, out io.Writer) *scanner {
	return &scanner{project: p, out: out, parse: codebase.ParseFile}
}

type scanSummary struct {
	files           int
	filesWithErrors int
	syntaxErrors    int
	problems        []string
}

func (s *scanSummary) print(w io.Writer) {
	fmt.Fprintf(w, "\n=== SCAN COMPLETE ===\n")
	fmt.Fprintf(w, "Files: %d\n", s.files)
	fmt.Fprintf(w, "Files with syntax errors: %d\n", s.filesWithErrors)
	fmt.Fprintf(w, "Syntax errors: %d\n", s.syntaxErrors)
	if len(s.problems) > 0 {
		fmt.Fprintf(w, "Problems: %d\n", len(s.problems))
		for _, p := range s.problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}
}

// check fails a strict scan when any file had syntax errors or could not be
// parsed at all.
func (s *scanSummary) check(strict bool) error {
	if !strict {
		return nil
	}
	if bad := s.filesWithErrors + len(s.problems); bad > 0 {
		return fmt.Errorf("%d of %d files have syntax errors", bad, s.files)
	}
	return nil
}

// timeoutFor resolves the per-file timeout: the flag when given, otherwise
// scan.timeout from the project.
func (s *scanner) timeoutFor(p *project.Project) time.Duration {
	if s.timeout > 0 {
		return s.timeout
	}
	return p.Config.Scan.Timeout.Duration
}

func (s *scanner) run(path string) (*scanSummary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	p := s.project
	if info.IsDir() || p == nil {
		dir := path
		if !info.IsDir() {
			dir = filepath.Dir(path)
		}
		if p, err = project.LoadFrom(dir); err != nil {
			return nil, err
		}
	}
	timeout := s.timeoutFor(p)

	var files []string
	if info.IsDir() {
		files, err = p.SourceFilesIn(path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(s.out, "Found %d files to scan\n", len(files))
	} else {
		files = []string{path}
	}

	summary := &scanSummary{}
	for i, file := range files {
		summary.files++
		f, problem := s.scanFile(file, timeout)
		if problem != "" {
			summary.problems = append(summary.problems, problem)
			fmt.Fprintf(s.out, "[%d/%d] [FAIL] %s\n", i+1, len(files), problem)
			continue
		}
		if n := len(f.Diagnostics); n > 0 {
			summary.filesWithErrors++
			summary.syntaxErrors += n
			fmt.Fprintf(s.out, "[%d/%d] [ERR] %s (%d syntax errors)\n", i+1, len(files), file, n)
			for _, d := range f.Diagnostics {
				fmt.Fprintf(s.out, "    %s:%s\n", file, d)
			}
		} else if !s.quiet {
			fmt.Fprintf(s.out, "[%d/%d] [OK] %s\n", i+1, len(files), file)
		}
	}
	return summary, nil
}

// scanFile parses one file on its own goroutine. When the deadline passes
// first the parse is abandoned and its result discarded.
func (s *scanner) scanFile(path string, timeout time.Duration) (*codebase.File, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Sprintf("read %s: %v", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan *codebase.File, 1)
	go func() {
		done <- s.parse(path, data)
	}()

	select {
	case f := <-done:
		if f.Err != nil {
			return nil, fmt.Sprintf("parse %s: %v", path, f.Err)
		}
		return f, ""
	case <-ctx.Done():
		return nil, fmt.Sprintf("timeout parsing %s", path)
	}
}
