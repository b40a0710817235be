package cooccur

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func buildStore(t *testing.T, records ...[]string) *Store {
	t.Helper()
	s := NewStore()
	for _, r := range records {
		s.Add(r)
	}
	return s
}

func frequencies(t *testing.T, s *Store, workers int) *FrequencyTable {
	t.Helper()
	freq, err := CountFrequencies(context.Background(), s, workers)
	require.NoError(t, err)
	return freq
}

func pairTable(t *testing.T, s *Store, threshold, workers int) *PairTable {
	t.Helper()
	cs, err := NewCandidateSet(frequencies(t, s, workers), threshold)
	require.NoError(t, err)
	table, err := CountPairs(context.Background(), s, cs, workers)
	require.NoError(t, err)
	return table
}

// pairCounts flattens a table into "first|second" -> count for comparisons.
func pairCounts(table *PairTable) map[string]int {
	out := make(map[string]int)
	table.Each(func(p Pair, n int) {
		out[p.First()+"|"+p.Second()] = n
	})
	return out
}

// enumeratePairs calls fn once for every unordered pair of candidates found
// together in g.
func enumeratePairs(g *Group, cs *CandidateSet, fn func(Pair)) {
	e := &enumerator{cs: cs}
	e.each(g, func(i, j int) {
		fn(cs.pair(i, j))
	})
}

// isCandidate reports whether name is a candidate.
func (cs *CandidateSet) isCandidate(name string) bool {
	id, ok := cs.catalog.Lookup(name)
	return ok && cs.classOf[id] >= 0
}

// classFor resolves name to its class, matching case-insensitively.
func (cs *CandidateSet) classFor(name string) (int, bool) {
	if id, ok := cs.catalog.Lookup(name); ok && cs.classOf[id] >= 0 {
		return cs.classOf[id], true
	}
	f := fold(name)
	i := sort.SearchStrings(cs.folded, f)
	if i < len(cs.folded) && cs.folded[i] == f {
		return i, true
	}
	return 0, false
}

// count returns how many groups contain both a and b. Names are matched
// case-insensitively; non-candidates and self-pairs count zero.
func (t *PairTable) count(a, b string) int {
	i, ok := t.cs.classFor(a)
	if !ok {
		return 0
	}
	j, ok := t.cs.classFor(b)
	if !ok || i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return t.counts[classPair{lo: i, hi: j}]
}

// members returns the identifiers of g sorted by exact string order.
func (s *Store) members(g *Group) []string {
	ids := g.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = s.catalog.Name(id)
	}
	sort.Strings(names)
	return names
}
