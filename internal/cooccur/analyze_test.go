package cooccur

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Scenario(t *testing.T) {
	s := buildStore(t,
		[]string{"A", "B", "C"},
		[]string{"A", "B"},
		[]string{"A", "C"},
		[]string{"B", "C"},
	)
	result, err := Analyze(context.Background(), s, Options{Threshold: 2, Workers: 2}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Threshold)
	assert.Equal(t, 4, result.Groups)
	assert.Equal(t, 3, result.DistinctArtists)
	assert.Equal(t, 3, result.Candidates)
	assert.Equal(t, 3, result.PairsFound)
	assert.False(t, result.MergedVariants)
	assert.Equal(t, []ArtistCount{{"A", 3}, {"B", 3}, {"C", 3}}, result.Artists)

	require.Len(t, result.Pairs, 3)
	for i, want := range []string{"(A|B)", "(A|C)", "(B|C)"} {
		assert.Equal(t, want, result.Pairs[i].Pair.String())
		assert.Equal(t, 2, result.Pairs[i].Count)
	}

	var stages []string
	for _, st := range result.Timings {
		stages = append(stages, st.Stage)
	}
	assert.Equal(t, []string{"frequency", "candidates", "pairs", "select"}, stages)
}

func TestAnalyze_EmptyInputIsNotAnError(t *testing.T) {
	result, err := Analyze(context.Background(), NewStore(), Options{Threshold: 1}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Groups)
	assert.Empty(t, result.Artists)
	assert.Empty(t, result.Pairs)
}

func TestAnalyze_NoCandidates(t *testing.T) {
	s := buildStore(t, []string{"A", "B"})
	result, err := Analyze(context.Background(), s, Options{Threshold: 2}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Candidates)
	assert.Empty(t, result.Pairs)
}

func TestAnalyze_FailsFastOnBadOptions(t *testing.T) {
	s := buildStore(t, []string{"A", "B"})

	_, err := Analyze(context.Background(), s, Options{Threshold: 0}, testLogger())
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = Analyze(context.Background(), s, Options{Threshold: 1, Workers: -1}, testLogger())
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "workers", cfgErr.Field)
	assert.NotErrorIs(t, err, ErrInvalidThreshold)
}

func TestAnalyze_SequentialAndParallelAgree(t *testing.T) {
	s := buildStore(t, randomRecords(13, 500, 30, 12)...)

	seq, err := Analyze(context.Background(), s, Options{Threshold: 5, Workers: 1}, testLogger())
	require.NoError(t, err)
	par, err := Analyze(context.Background(), s, Options{Threshold: 5, Workers: 8}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, seq.Artists, par.Artists)
	assert.Equal(t, seq.Pairs, par.Pairs)
	assert.Equal(t, seq.PairsFound, par.PairsFound)
}
