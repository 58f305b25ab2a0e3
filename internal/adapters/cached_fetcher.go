// Package adapters composes infrastructure pieces behind the fec ports so
// HTTP handlers and services stay unchanged regardless of backend wiring.
package adapters

import (
	"context"
	"log/slog"
	"time"

	"scorecard/internal/core"
	"scorecard/internal/fec"
	"scorecard/internal/storage"
)

// CachedReceiptFetcher decorates a live ReceiptFetcher with the SQLite
// receipt cache. Fresh cached sets are served without touching the upstream
// API; cache failures degrade to a live fetch, never to a request failure.
type CachedReceiptFetcher struct {
	fetcher fec.ReceiptFetcher
	cache   *storage.ReceiptCache
	maxAge  time.Duration
}

var _ fec.ReceiptFetcher = (*CachedReceiptFetcher)(nil)

func NewCachedReceiptFetcher(fetcher fec.ReceiptFetcher, cache *storage.ReceiptCache, maxAge time.Duration) *CachedReceiptFetcher {
	return &CachedReceiptFetcher{
		fetcher: fetcher,
		cache:   cache,
		maxAge:  maxAge,
	}
}

// FetchReceipts implements fec.ReceiptFetcher. The cache only answers when
// the stored set was fetched under a page cap covering maxPages, so a
// truncated fetch is never served to a request that asked for more pages.
func (f *CachedReceiptFetcher) FetchReceipts(ctx context.Context, committeeID string, cycle int, maxPages int) ([]core.ContributionRecord, error) {
	if recs, hit, err := f.cache.LoadReceipts(ctx, committeeID, cycle, maxPages, f.maxAge); err != nil {
		slog.WarnContext(ctx, "Receipt cache read failed, fetching live",
			"committee_id", committeeID, "cycle", cycle, "error", err)
	} else if hit {
		slog.DebugContext(ctx, "Receipt cache hit",
			"committee_id", committeeID, "cycle", cycle, "count", len(recs))
		return recs, nil
	}

	recs, err := f.fetcher.FetchReceipts(ctx, committeeID, cycle, maxPages)
	if err != nil {
		return nil, err
	}

	if len(recs) > 0 {
		if err := f.cache.SaveReceipts(ctx, committeeID, cycle, maxPages, recs); err != nil {
			slog.WarnContext(ctx, "Receipt cache write failed",
				"committee_id", committeeID, "cycle", cycle, "error", err)
		}
	}
	return recs, nil
}
