package cooccur

import (
	"context"
	"log/slog"
	"time"
)

// Analyze runs the full counting pipeline over store: frequencies, candidate
// filtering, pair counting and selection. Options are validated before any
// work starts. An empty store or an empty candidate set yields an empty
// Result, not an error.
func Analyze(ctx context.Context, store *Store, opts Options, logger *slog.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With("component", "cooccur")

	result := &Result{Threshold: opts.Threshold, Groups: store.Len()}
	timed := func(stage string, start time.Time) {
		d := time.Since(start)
		result.Timings = append(result.Timings, StageTiming{Stage: stage, Duration: d})
		logger.Debug("stage complete", "stage", stage, "duration", d)
	}

	// Phase 1: per-artist frequencies.
	start := time.Now()
	freq, err := CountFrequencies(ctx, store, opts.Workers)
	if err != nil {
		return nil, err
	}
	timed("frequency", start)
	result.DistinctArtists = freq.Len()

	// Phase 2: prune to candidates.
	start = time.Now()
	cs, err := NewCandidateSet(freq, opts.Threshold)
	if err != nil {
		return nil, err
	}
	result.Artists, err = SelectArtists(freq, opts.Threshold)
	if err != nil {
		return nil, err
	}
	timed("candidates", start)
	result.Candidates = cs.Len()
	result.MergedVariants = cs.MergesVariants()

	logger.Info("candidates selected",
		"groups", result.Groups,
		"distinct_artists", result.DistinctArtists,
		"candidates", result.Candidates,
		"threshold", opts.Threshold)

	// Phase 3: pair counting over candidates only.
	start = time.Now()
	pairs, err := CountPairs(ctx, store, cs, opts.Workers)
	if err != nil {
		return nil, err
	}
	timed("pairs", start)
	result.PairsFound = pairs.Len()

	// Phase 4: threshold and order.
	start = time.Now()
	result.Pairs, err = SelectPairs(pairs, opts.Threshold)
	if err != nil {
		return nil, err
	}
	timed("select", start)

	logger.Info("analysis complete",
		"pairs_found", result.PairsFound,
		"pairs_reported", len(result.Pairs))

	return result, nil
}
