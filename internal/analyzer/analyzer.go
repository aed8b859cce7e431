// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Repository analysis pipeline

package analyzer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sony-level/repo-analyzer/internal/aggregate"
	"github.com/sony-level/repo-analyzer/internal/evidence"
	"github.com/sony-level/repo-analyzer/internal/scanner"
	"github.com/sony-level/repo-analyzer/internal/stacks"
)

// Options configures an analysis run
type Options struct {
	// CacheSize bounds the shared file-content cache (0 = default)
	CacheSize int
	Logger    *log.Logger
	// Detectors overrides the built-in detector set when non-empty
	Detectors []stacks.Detector
}

// Report is the outcome of analyzing one repository
type Report struct {
	Root       string
	Containers *scanner.ContainerFiles
	Summary    aggregate.Summary
}

// Analyze partitions root into modules, classifies each one in discovery
// order and aggregates the results. Nothing is returned until every module
// has been processed.
func Analyze(ctx context.Context, root string, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	modules, err := scanner.Partition(root)
	if err != nil {
		return nil, err
	}
	absRoot := modules[0].Root
	logger.Info("Repository partitioned", "root", absRoot, "modules", len(modules))

	containers, err := scanner.FindContainerFiles(absRoot, 0)
	if err != nil {
		return nil, err
	}

	files := evidence.NewReader(opts.CacheSize)
	arbitrator := stacks.NewArbitrator(files, logger)
	if len(opts.Detectors) > 0 {
		arbitrator = stacks.NewArbitratorWithDetectors(files, logger, opts.Detectors...)
	}
	agg := aggregate.New()

	for _, module := range modules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis interrupted: %w", err)
		}

		c := arbitrator.Classify(module)
		local, err := scanner.FindContainerFiles(module.Path, aggregate.PortScanDepth)
		if err != nil {
			logger.Warn("Container scan failed", "module", module.RelPath, "err", err)
			local = &scanner.ContainerFiles{}
		}

		record := agg.Add(aggregate.ModuleInput{
			Classification: c,
			Ports:          aggregate.FindPorts(files, module.Path),
			Dockerfiles:    local.Dockerfiles,
			ComposeFiles:   local.ComposeFiles,
		})
		logger.Debug("Module classified",
			"module", record.Path,
			"language", record.Language,
			"framework", record.Framework,
			"score", record.Score,
		)
	}

	return &Report{
		Root:       absRoot,
		Containers: containers,
		Summary:    agg.Summary(),
	}, nil
}
