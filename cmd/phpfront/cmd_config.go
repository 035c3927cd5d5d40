package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.project.ConfigPath != "" {
				fmt.Printf("# %s\n", g.project.ConfigPath)
			} else {
				fmt.Printf("# no phpfront.toml found, using defaults (root %s)\n", g.project.RootDir)
			}
			data, err := g.project.Config.Marshal()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}
