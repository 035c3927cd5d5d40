package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/dhamidi/phpfront/project"
	"github.com/dhamidi/phpfront/ui"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Browse the syntax trees and errors of a project in a web browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := project.LoadFrom(dir)
			if err != nil {
				return err
			}

			c := codebase.New(p)
			if err := c.ScanAll(); err != nil {
				return err
			}
			log.Infof("parsed %d files under %s", len(c.Paths()), p.RootDir)

			if watch || p.Config.LSP.Watch {
				w := codebase.NewFileWatcher(c, p.Config.LSP.PollInterval.Duration)
				w.Start()
				defer w.Stop()
			}

			server, err := ui.NewServer(c)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Serving %s at http://%s\n", p.RootDir, displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reparse files when they change on disk")

	return cmd
}
