package cooccur

import "time"

// ArtistCount is an identifier with the number of groups containing it.
type ArtistCount struct {
	Name  string
	Count int
}

// PairCount is a pair with the number of groups containing both members.
type PairCount struct {
	Pair  Pair
	Count int
}

// Options controls a counting run.
type Options struct {
	Threshold int // support threshold C, shared by the candidate filter and the pair selector
	Workers   int // 0 or 1 counts in a single pass
}

// Validate rejects options that must not reach the pipeline.
func (o Options) Validate() error {
	if err := validateThreshold(o.Threshold); err != nil {
		return err
	}
	if o.Workers < 0 {
		return &ConfigurationError{Field: "workers", Value: o.Workers, Reason: "must not be negative"}
	}
	return nil
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result holds the complete output of a run.
type Result struct {
	Threshold       int
	Groups          int
	DistinctArtists int
	Candidates      int
	PairsFound      int
	MergedVariants  bool          // pair counts combine case variants of a name
	Artists         []ArtistCount // frequency >= Threshold, sorted by name
	Pairs           []PairCount   // count >= Threshold, sorted by first then second
	Timings         []StageTiming
}
