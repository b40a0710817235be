package cooccur

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPairs_Scenario(t *testing.T) {
	s := buildStore(t,
		[]string{"A", "B", "C"},
		[]string{"A", "B"},
		[]string{"A", "C"},
		[]string{"B", "C"},
	)
	table := pairTable(t, s, 2, 1)

	assert.Equal(t, map[string]int{"A|B": 2, "A|C": 2, "B|C": 2}, pairCounts(table))
	assert.Equal(t, 2, table.count("B", "A"))
	assert.Equal(t, 2, table.count("c", "a"), "lookups ignore case")
	assert.Equal(t, 0, table.count("A", "A"))
	assert.Equal(t, 0, table.count("A", "Z"))
}

func TestCountPairs_EmptyCandidateSet(t *testing.T) {
	s := buildStore(t, []string{"A", "B"})
	table := pairTable(t, s, 2, 1)

	assert.Equal(t, 0, table.Len())
}

func TestCountPairs_OnlyCandidatesArePaired(t *testing.T) {
	s := buildStore(t,
		[]string{"A", "B", "X"},
		[]string{"A", "B", "Y"},
	)
	table := pairTable(t, s, 2, 1)

	assert.Equal(t, map[string]int{"A|B": 2}, pairCounts(table))
}

func TestCountPairs_CaseVariantsCountOncePerGroup(t *testing.T) {
	s := buildStore(t,
		[]string{"Beck", "beck", "Cher"},
		[]string{"BECK", "Cher"},
	)
	table := pairTable(t, s, 1, 1)

	assert.Equal(t, map[string]int{"BECK|Cher": 2}, pairCounts(table))
}

func TestCountPairs_MatchesBruteForce(t *testing.T) {
	records := randomRecords(11, 250, 25, 9)
	s := buildStore(t, records...)
	freq := frequencies(t, s, 1)
	table := pairTable(t, s, 3, 4)

	table.Each(func(p Pair, n int) {
		want := 0
		for _, g := range s.Groups() {
			if hasFolded(s.members(g), p.First()) && hasFolded(s.members(g), p.Second()) {
				want++
			}
		}
		assert.Equal(t, want, n, "pair %s", p)
		assert.LessOrEqual(t, n, foldedFrequency(freq, p.First()))
		assert.LessOrEqual(t, n, foldedFrequency(freq, p.Second()))
	})
}

func TestCountPairs_IndependentOfOrderAndWorkers(t *testing.T) {
	records := randomRecords(5, 300, 20, 10)
	base := pairCounts(pairTable(t, buildStore(t, records...), 4, 1))
	require.NotEmpty(t, base)

	rng := rand.New(rand.NewSource(1))
	for _, workers := range []int{1, 2, 5, 16} {
		shuffled := append([][]string(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := pairCounts(pairTable(t, buildStore(t, shuffled...), 4, workers))
		assert.Equal(t, base, got, "workers=%d", workers)
	}
}

func TestCountPairs_CancelledContext(t *testing.T) {
	s := buildStore(t, []string{"A", "B"}, []string{"A", "B"})
	cs, err := NewCandidateSet(frequencies(t, s, 1), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CountPairs(ctx, s, cs, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnumerate_VisitsEachPairOnce(t *testing.T) {
	s := buildStore(t, []string{"A", "B", "C", "D", "E"})
	cs, err := NewCandidateSet(frequencies(t, s, 1), 1)
	require.NoError(t, err)

	seen := make(map[PairKey]int)
	enumeratePairs(s.Groups()[0], cs, func(p Pair) {
		assert.NotEqual(t, p.Key().A, p.Key().B)
		seen[p.Key()]++
	})

	assert.Len(t, seen, 5*4/2)
	for k, n := range seen {
		assert.Equal(t, 1, n, "pair %v", k)
	}
}

// hasFolded reports whether names holds name under case folding.
func hasFolded(names []string, name string) bool {
	for _, n := range names {
		if fold(n) == fold(name) {
			return true
		}
	}
	return false
}

// foldedFrequency sums the frequencies of every case variant of name.
func foldedFrequency(freq *FrequencyTable, name string) int {
	total := 0
	for _, e := range freq.Entries() {
		if fold(e.Name) == fold(name) {
			total += e.Count
		}
	}
	return total
}
