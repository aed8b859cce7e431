/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// ErrUsage reports invalid or conflicting command line input
var ErrUsage = errors.New("usage error")

// NewRootCmd builds the rda command tree. stdout receives the report and
// stderr receives logs.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configFile string
	v := newConfig()

	root := &cobra.Command{
		Use:   "rda",
		Short: "Detect the technology stack of a repository",
		Long: `rda (repo-analyzer) inspects a local directory or a git repository URL
and reports languages, frameworks, build and test tools, runtime versions,
build and test commands, package managers and exposed ports, aggregated
over every module of the repository.

Examples:
  rda analyze --path .
  rda analyze --url https://github.com/user/repo
  rda analyze --path . --format text --modules
  rda analyze --url https://gitlab.com/user/repo --keep --verbose`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(v, configFile); err != nil {
				return err
			}
			level := log.InfoLevel
			if v.GetBool(keyVerbose) {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("Loaded config", "file", used)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolP(keyVerbose, "v", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./.rda.yaml or $XDG_CONFIG_HOME/rda/config.yaml)")
	_ = bindFlags(v, root, keyVerbose)

	root.AddCommand(newAnalyzeCmd(v))
	return root
}

// Run executes the command tree with the given arguments
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). Any error exits with status 1.
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
