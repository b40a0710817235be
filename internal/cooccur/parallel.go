package cooccur

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// partition splits groups into at most workers contiguous chunks of
// near-equal size. It never returns empty chunks.
func partition(groups []*Group, workers int) [][]*Group {
	if workers < 1 {
		workers = 1
	}
	if workers > len(groups) {
		workers = len(groups)
	}
	if workers == 0 {
		return nil
	}
	chunks := make([][]*Group, 0, workers)
	size := len(groups) / workers
	extra := len(groups) % workers
	start := 0
	for i := 0; i < workers; i++ {
		end := start + size
		if i < extra {
			end++
		}
		chunks = append(chunks, groups[start:end])
		start = end
	}
	return chunks
}

// forEachChunk runs fn once per chunk, concurrently when there is more than
// one. fn receives the chunk index so it can write into a private slot.
func forEachChunk(ctx context.Context, chunks [][]*Group, fn func(ctx context.Context, idx int, chunk []*Group) error) error {
	if len(chunks) == 1 {
		return fn(ctx, 0, chunks[0])
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			return fn(gctx, i, chunk)
		})
	}
	return g.Wait()
}
