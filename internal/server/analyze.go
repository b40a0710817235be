package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/ingest"
	"github.com/olehluchkiv/artistpairs/internal/resolver"
)

// AnalysisConfig holds parameters for the analysis pipeline.
type AnalysisConfig struct {
	Input   string
	Options cooccur.Options
}

// RunAnalysis executes the full resolve → ingest → count → select pipeline.
// Options are validated before the input is touched.
func RunAnalysis(ctx context.Context, cfg AnalysisConfig, logger *slog.Logger) (*cooccur.Result, ingest.Stats, error) {
	logger = logger.With("component", "analysis")

	if err := cfg.Options.Validate(); err != nil {
		return nil, ingest.Stats{}, err
	}

	// Step 1: Resolve input to a local file.
	logger.Info("resolving input", "input", cfg.Input)
	path, cleanup, err := resolver.Resolve(ctx, cfg.Input, logger)
	if err != nil {
		return nil, ingest.Stats{}, fmt.Errorf("resolve: %w", err)
	}
	defer cleanup()

	// Step 2: Load every playlist before counting starts.
	store, stats, err := ingest.ReadFile(ctx, path, logger)
	if err != nil {
		return nil, ingest.Stats{}, fmt.Errorf("ingest: %w", err)
	}

	// Step 3: Count and select.
	result, err := cooccur.Analyze(ctx, store, cfg.Options, logger)
	if err != nil {
		return nil, stats, fmt.Errorf("analyze: %w", err)
	}

	return result, stats, nil
}
