/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sony-level/repo-analyzer/internal/analyzer"
	"github.com/sony-level/repo-analyzer/internal/fetcher"
	"github.com/sony-level/repo-analyzer/internal/prereq"
	"github.com/sony-level/repo-analyzer/internal/report"
	"github.com/sony-level/repo-analyzer/internal/workspace"
)

// analyzeOptions holds the resolved settings of one analyze run
type analyzeOptions struct {
	URL        string
	Path       string
	Keep       bool
	Format     string
	Modules    bool
	CheckTools bool
	PruneStale time.Duration
}

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var url, path string

	cmd := &cobra.Command{
		Use:   "analyze (--url URL | --path DIR)",
		Short: "Analyze a repository and print its stack report",
		Long: `Partition a repository into modules, classify each module with the
Go, Ruby, Node/TypeScript, Python and Java/Kotlin detectors, and print
one report aggregated over all modules.

A URL is shallow-cloned into a temporary directory that is removed when
the run ends, unless --keep is given. A path is analyzed in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyzeOptions{
				URL:        url,
				Path:       path,
				Keep:       v.GetBool(keyKeep),
				Format:     v.GetString(keyFormat),
				Modules:    v.GetBool(keyModules),
				CheckTools: v.GetBool(keyCheckTools),
				PruneStale: v.GetDuration(keyPruneStale),
			}
			if err := opts.validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAnalyze(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Git repository URL to clone and analyze")
	cmd.Flags().StringVar(&path, "path", "", "Local directory to analyze in place")
	cmd.Flags().Bool(keyKeep, false, "Keep the temporary clone (.rda-temp/<run-id>)")
	cmd.Flags().String(keyFormat, report.FormatJSON, "Output format: json or text")
	cmd.Flags().Bool(keyModules, false, "Include per-module records in the report")
	cmd.Flags().Bool(keyCheckTools, false, "Check that the detected build tools are installed")
	cmd.Flags().Duration(keyPruneStale, 0, "Remove clones older than this duration before cloning (0 disables)")
	_ = bindFlags(v, cmd, keyKeep, keyFormat, keyModules, keyCheckTools, keyPruneStale)

	return cmd
}

func (o analyzeOptions) validate() error {
	switch {
	case o.URL != "" && o.Path != "":
		return fmt.Errorf("%w: --url and --path are mutually exclusive", ErrUsage)
	case o.URL == "" && o.Path == "":
		return fmt.Errorf("%w: one of --url or --path is required", ErrUsage)
	}
	if o.Format != report.FormatJSON && o.Format != report.FormatText {
		return fmt.Errorf("%w: --format must be %q or %q, got %q", ErrUsage, report.FormatJSON, report.FormatText, o.Format)
	}
	return nil
}

func runAnalyze(ctx context.Context, opts analyzeOptions, out io.Writer) error {
	logger := loggerFromContext(ctx)

	root := opts.Path
	if opts.URL != "" {
		ws, err := cloneRepository(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer func() {
			if ws.ShouldKeep() {
				logger.Info("Clone kept", "path", ws.RepoPath())
				return
			}
			if err := ws.Cleanup(); err != nil {
				logger.Warn("Cleanup failed", "err", err)
			}
		}()
		root = ws.RepoPath()
	} else {
		abs, err := fetcher.ValidateLocalPath(root)
		if err != nil {
			return err
		}
		root = abs
	}

	result, err := analyzer.Analyze(ctx, root, analyzer.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	docOpts := report.Options{IncludeModules: opts.Modules}
	if opts.CheckTools {
		tools := make([]string, 0, len(result.Summary.BuildTools))
		for _, e := range result.Summary.BuildTools {
			tools = append(tools, e.Value)
		}
		checker := prereq.NewChecker()
		docOpts.Toolchains = checker.CheckMultiple(tools)
		for _, missing := range docOpts.Toolchains.MissingTools {
			logger.Warn("Build tool not installed", "tool", missing, "install", checker.GetInstallGuide(missing))
		}
	}

	return report.Write(out, report.NewDocument(result, docOpts), opts.Format)
}

// cloneRepository creates the run workspace and shallow-clones the URL into it.
// The workspace is removed again when the clone fails.
func cloneRepository(ctx context.Context, opts analyzeOptions, logger *log.Logger) (*workspace.Workspace, error) {
	if opts.PruneStale > 0 {
		removed, err := workspace.CleanupStale(os.TempDir(), opts.PruneStale)
		if err != nil {
			logger.Warn("Pruning stale clones failed", "err", err)
		} else if removed > 0 {
			logger.Info("Pruned stale clones", "count", removed)
		}
	}

	ws, err := workspace.New(&workspace.WorkspaceConfig{Keep: opts.Keep})
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	logger.Debug("Workspace created", "run_id", ws.RunID, "path", ws.Path)

	_, err = fetcher.Fetch(ctx, &fetcher.FetchConfig{
		Source:       opts.URL,
		Destination:  ws.RepoPath(),
		Logger:       logger,
		ShallowClone: true,
	})
	if err != nil {
		ws.SetKeep(false)
		_ = ws.Cleanup()
		return nil, err
	}
	return ws, nil
}
