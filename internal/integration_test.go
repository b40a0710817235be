package internal_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/ingest"
	"github.com/olehluchkiv/artistpairs/internal/report"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// runFixture loads testdata/<name>/lists.txt and renders the text report.
func runFixture(t *testing.T, name string, threshold, workers int) string {
	t.Helper()
	path := filepath.Join("..", "testdata", name, "lists.txt")

	store, _, err := ingest.ReadFile(context.Background(), path, testLogger())
	require.NoError(t, err)

	result, err := cooccur.Analyze(context.Background(), store, cooccur.Options{Threshold: threshold, Workers: workers}, testLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, result))
	return buf.String()
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
	}{
		{"01_basic", 2},
		{"02_below_threshold", 2},
		{"03_duplicate_tokens", 1},
		{"04_single_entry", 1},
		{"05_mixed_case", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("..", "testdata", tt.name, "expected.txt"))
			require.NoError(t, err)

			for _, workers := range []int{1, 4} {
				got := runFixture(t, tt.name, tt.threshold, workers)
				assert.Equal(t, string(want), got, "workers=%d", workers)
			}
		})
	}
}

func TestFixture_JSONMatchesText(t *testing.T) {
	path := filepath.Join("..", "testdata", "small_lists.txt")
	store, _, err := ingest.ReadFile(context.Background(), path, testLogger())
	require.NoError(t, err)

	result, err := cooccur.Analyze(context.Background(), store, cooccur.Options{Threshold: 2}, testLogger())
	require.NoError(t, err)

	doc := report.NewDocument(result)
	require.Len(t, doc.Pairs, len(result.Pairs))
	for i, p := range result.Pairs {
		assert.Equal(t, p.Pair.First(), doc.Pairs[i].First)
		assert.Equal(t, p.Pair.Second(), doc.Pairs[i].Second)
		assert.Equal(t, p.Count, doc.Pairs[i].Count)
	}
}
