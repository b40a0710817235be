package cooccur

import (
	"context"
	"fmt"
)

// FrequencyTable maps each identifier to the number of groups containing it.
type FrequencyTable struct {
	catalog *Catalog
	counts  []int
	groups  int
}

// CountFrequencies counts, for every identifier in the store, how many groups
// contain it. With more than one worker the groups are split into chunks that
// are counted into private tables and summed afterwards; the result is the
// same for any worker count and any group order.
func CountFrequencies(ctx context.Context, store *Store, workers int) (*FrequencyTable, error) {
	catalog := store.Catalog()
	chunks := partition(store.Groups(), workers)
	partials := make([][]int, len(chunks))

	err := forEachChunk(ctx, chunks, func(ctx context.Context, idx int, chunk []*Group) error {
		counts := make([]int, catalog.Len())
		for _, g := range chunk {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, id := range g.IDs() {
				counts[id]++
			}
		}
		partials[idx] = counts
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("counting frequencies: %w", err)
	}

	total := make([]int, catalog.Len())
	for _, p := range partials {
		for id, n := range p {
			total[id] += n
		}
	}
	return &FrequencyTable{catalog: catalog, counts: total, groups: store.Len()}, nil
}

// Count returns the number of groups containing name, or 0 if it was never seen.
func (f *FrequencyTable) Count(name string) int {
	id, ok := f.catalog.Lookup(name)
	if !ok {
		return 0
	}
	return f.counts[id]
}

// Len is the number of distinct identifiers in the table.
func (f *FrequencyTable) Len() int {
	return len(f.counts)
}

// Groups is the number of groups the table was counted over.
func (f *FrequencyTable) Groups() int {
	return f.groups
}

// Entries returns every identifier with its count, in catalog order.
func (f *FrequencyTable) Entries() []ArtistCount {
	out := make([]ArtistCount, len(f.counts))
	for id, n := range f.counts {
		out[id] = ArtistCount{Name: f.catalog.Name(id), Count: n}
	}
	return out
}
