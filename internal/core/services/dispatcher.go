package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// DefaultConcurrency bounds lookups in flight when none is configured.
const DefaultConcurrency = 8

// dispatchLookups looks up every candidate concurrently and waits for all of
// them. Results are in candidate order. A term whose lookup fails, panics or
// is not OK yields no entries; only a failure of the batch itself is returned.
func dispatchLookups(
	ctx context.Context,
	dict driven.Dictionary,
	candidates []string,
	limit int,
) ([]domain.TermResults, error) {
	defer logger.Timed("lookup batch")()

	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]domain.TermResults, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, term := range candidates {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("Lookup %q panicked: %v", term, r)
					results[i] = domain.TermResults{Term: term, Items: []domain.NormalizedEntry{}}
				}
			}()
			results[i] = domain.TermResults{Term: term, Items: lookupTerm(gctx, dict, term)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancelled lookups look like empty terms; the batch as a whole failed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// lookupTerm performs one lookup, degrading every failure to no entries.
func lookupTerm(ctx context.Context, dict driven.Dictionary, term string) []domain.NormalizedEntry {
	resp, err := dict.Lookup(ctx, term)
	if err != nil {
		logger.Warn("Lookup %q failed: %v", term, err)
		return []domain.NormalizedEntry{}
	}
	if !resp.OK {
		logger.Debug("Lookup %q: no entries", term)
		return []domain.NormalizedEntry{}
	}

	items := normalizeAll(resp.Records())
	logger.Debug("Lookup %q: %d entries", term, len(items))
	return items
}
