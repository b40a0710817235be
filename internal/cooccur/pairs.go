package cooccur

import (
	"context"
	"fmt"
)

// classPair indexes a pair by candidate class, with lo < hi.
type classPair struct {
	lo, hi int
}

// PairTable holds the number of groups in which each candidate pair occurs.
// It is read-only once CountPairs returns.
type PairTable struct {
	cs     *CandidateSet
	counts map[classPair]int
}

// CountPairs counts candidate pairs across every group in the store. Each
// group adds at most one to any given pair. Workers count into private tables
// that are summed afterwards, so the result does not depend on the worker
// count or on group order.
func CountPairs(ctx context.Context, store *Store, cs *CandidateSet, workers int) (*PairTable, error) {
	table := &PairTable{cs: cs, counts: make(map[classPair]int)}
	if cs.Empty() {
		return table, nil
	}

	chunks := partition(store.Groups(), workers)
	partials := make([]map[classPair]int, len(chunks))

	err := forEachChunk(ctx, chunks, func(ctx context.Context, idx int, chunk []*Group) error {
		counts := make(map[classPair]int)
		e := &enumerator{cs: cs}
		for _, g := range chunk {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.each(g, func(i, j int) {
				counts[classPair{lo: i, hi: j}]++
			})
		}
		partials[idx] = counts
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("counting pairs: %w", err)
	}

	for _, p := range partials {
		for k, n := range p {
			table.counts[k] += n
		}
	}
	return table, nil
}

// Len is the number of distinct pairs seen at least once.
func (t *PairTable) Len() int {
	return len(t.counts)
}

// Threshold is the support threshold of the candidate set the table was
// counted against.
func (t *PairTable) Threshold() int {
	return t.cs.Threshold()
}

// Each calls fn for every pair in the table in unspecified order.
func (t *PairTable) Each(fn func(p Pair, count int)) {
	for k, n := range t.counts {
		fn(t.cs.pair(k.lo, k.hi), n)
	}
}
