package cooccur

import (
	"fmt"
	"sort"
)

// SelectPairs returns every pair counted at least threshold times, sorted by
// first member then second using exact string order. threshold must be the
// one the table's candidate set was built with.
func SelectPairs(table *PairTable, threshold int) ([]PairCount, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	if threshold != table.Threshold() {
		return nil, &ConfigurationError{
			Field:  "threshold",
			Value:  threshold,
			Reason: fmt.Sprintf("candidate set was built with threshold %d", table.Threshold()),
		}
	}

	var out []PairCount
	table.Each(func(p Pair, n int) {
		if n >= threshold {
			out = append(out, PairCount{Pair: p, Count: n})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pair.Compare(out[j].Pair) < 0
	})
	return out, nil
}

// SelectArtists returns every identifier whose frequency is at least
// threshold, sorted by name.
func SelectArtists(freq *FrequencyTable, threshold int) ([]ArtistCount, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	var out []ArtistCount
	for _, e := range freq.Entries() {
		if e.Count >= threshold {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}
