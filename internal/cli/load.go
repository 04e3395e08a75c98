package cli

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/harscope/pkg/har"
)

// loadArchives parses every path concurrently, at most workers at a time.
// Archives come back in argument order. The first failure cancels the
// remaining loads and nothing is returned, so a bad file never produces
// partial output.
func loadArchives(ctx context.Context, paths []string, workers int) ([]*har.Archive, error) {
	if workers <= 0 {
		workers = 1
	}
	archives := make([]*har.Archive, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			a, err := har.Load(path)
			if err != nil {
				return err
			}
			slog.Debug("archive loaded",
				"path", path,
				"entries", len(a.Entries),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			archives[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return archives, nil
}
