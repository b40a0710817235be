package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
)

var wordChar = regexp.MustCompile(`\w`)

// Stats summarizes one ingestion pass.
type Stats struct {
	Lines       int // lines read
	Kept        int // lines stored as groups
	Blank       int // lines with no word character
	SingleEntry int // lines with fewer than two distinct artists
}

// Read parses one playlist per line from r. Artists are comma separated and
// trimmed; empty tokens are dropped. Lines without any word character and
// lines with fewer than two distinct artists are skipped. On error no store
// is returned, so callers never see a partially loaded input.
func Read(ctx context.Context, r io.Reader, logger *slog.Logger) (*cooccur.Store, Stats, error) {
	logger = logger.With("component", "ingest")

	store := cooccur.NewStore()
	var stats Stats

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		if stats.Lines%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, Stats{}, err
			}
		}

		// Lines have no length limit.
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, Stats{}, fmt.Errorf("reading line %d: %w", stats.Lines+1, err)
		}
		if line == "" && err == io.EOF {
			break
		}
		stats.Lines++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if !wordChar.MatchString(line) {
			stats.Blank++
			continue
		}
		if !store.Add(Tokens(line)) {
			stats.SingleEntry++
			logger.Debug("skipping line with fewer than two artists", "line", stats.Lines)
			continue
		}
		stats.Kept++
	}

	logger.Info("input loaded",
		"lines", stats.Lines,
		"groups", stats.Kept,
		"blank", stats.Blank,
		"single_entry", stats.SingleEntry,
		"distinct_artists", store.Catalog().Len())

	return store, stats, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(ctx context.Context, path string, logger *slog.Logger) (*cooccur.Store, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	store, stats, err := Read(ctx, f, logger)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return store, stats, nil
}

// Tokens splits a playlist line into trimmed, non-empty artist names.
func Tokens(line string) []string {
	parts := strings.Split(line, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
