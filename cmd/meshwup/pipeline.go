package main

import (
	"context"
	"log/slog"

	"github.com/meshwup/meshwup/internal/mesh"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/meshwup/meshwup/internal/treenum"
)

// mustBuildTaxonomy loads the configured dump and builds the taxonomy, exits on error.
// A taxonomy without a root is fatal; other build anomalies are only logged.
func mustBuildTaxonomy(ctx context.Context) (*taxonomy.Taxonomy, *taxonomy.Report) {
	vocab, err := mesh.LoadFile(ctx, cfg.Source, logger)
	if err != nil {
		exitWithError(exitCodeFor(err), "loading %s: %v", cfg.Source, err)
	}

	tax, report := taxonomy.Build(
		taxonomy.Input{Terms: vocab.TreeNumberTerms(), Resolver: vocab},
		taxonomy.WithHierarchy(treenum.New(cfg.Root)),
		taxonomy.WithRootFallback(cfg.RootFallbackRef, cfg.RootFallbackTerm),
		taxonomy.WithLogger(logger),
	)
	if err := tax.CheckRoot(); err != nil {
		exitWithError(ExitDataError, "building taxonomy from %s: %v", cfg.Source, err)
	}

	stats := tax.Stats()
	logger.Info("taxonomy ready",
		slog.String("source", cfg.Source),
		slog.Int("unique_terms", stats.UniqueTerms),
		slog.Int64("max_pairs", stats.MaxPairs),
		slog.Int("unlinked", len(report.Unlinked())))
	return tax, report
}

// mustValidateTreeNumber rejects malformed tree number arguments, exits on error.
func mustValidateTreeNumber(id string) {
	if err := treenum.Validate(id); err != nil {
		exitWithError(exitCodeFor(err), "%q: %v", id, err)
	}
}
