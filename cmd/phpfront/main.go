package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/phpfront/project"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("phpfront")

// globals holds the persistent flags and the project found in the working
// directory.
type globals struct {
	verbose int
	logFile string
	project *project.Project
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "phpfront",
		Short:        "An error tolerant PHP 7 parser",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd(g))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads phpfront.toml and configures logging. Flags given on the
// command line win over the file.
func (g *globals) setup(cmd *cobra.Command) error {
	p, err := project.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	g.project = p

	verbosity := p.Config.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = g.verbose
	}
	logFile := p.Config.Log.File
	if cmd.Flags().Changed("log-file") {
		logFile = g.logFile
	}
	if logFile == "" {
		commonlog.Configure(verbosity, nil)
	} else {
		commonlog.Configure(verbosity, &logFile)
	}

	if p.ConfigPath != "" {
		log.Debugf("using %s", p.ConfigPath)
	}
	return nil
}
