// Package storage provides an on-disk SQLite cache of fetched receipt pages,
// keyed by committee and cycle. It caches raw upstream data to stay inside
// the external API quota; analysis results themselves are never persisted.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"scorecard/internal/core"
)

// receiptsPerPage matches the upstream page size; a cached set holding fewer
// than page_cap full pages ended because the upstream ran out of records.
const receiptsPerPage = 100

type ReceiptCache struct {
	db *sql.DB
}

func NewReceiptCache(dbPath string) (*ReceiptCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ReceiptCache{db: db}, nil
}

func (c *ReceiptCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveReceipts replaces any cached rows for (committeeID, cycle) with recs.
// pageCap records the page limit the fetch ran under (0 = uncapped) so a
// later load can tell a truncated set from a complete one.
func (c *ReceiptCache) SaveReceipts(ctx context.Context, committeeID string, cycle int, pageCap int, recs []core.ContributionRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM receipt_cache WHERE committee_id = ? AND cycle = ?`,
		committeeID, cycle); err != nil {
		return fmt.Errorf("clear cached receipts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO receipt_cache (committee_id, cycle, position, amount, entity_type, contributor_name, page_cap, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			committeeID, cycle, i, rec.Amount.String(), rec.EntityType, rec.ContributorName, pageCap, now); err != nil {
			return fmt.Errorf("insert receipt %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Receipts cached",
		"committee_id", committeeID,
		"cycle", cycle,
		"page_cap", pageCap,
		"count", len(recs))
	return nil
}

// LoadReceipts returns the cached rows for (committeeID, cycle) when they
// are younger than maxAge and were fetched under a page cap that satisfies
// maxPages (0 = uncapped). A set fetched with a smaller cap misses unless it
// ended before hitting that cap, which means the upstream was exhausted and
// no larger cap could have returned more. The second return reports a usable
// cache hit.
func (c *ReceiptCache) LoadReceipts(ctx context.Context, committeeID string, cycle int, maxPages int, maxAge time.Duration) ([]core.ContributionRecord, bool, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	rows, err := c.db.QueryContext(ctx,
		`SELECT amount, entity_type, contributor_name, page_cap, fetched_at
		 FROM receipt_cache
		 WHERE committee_id = ? AND cycle = ?
		 ORDER BY position`,
		committeeID, cycle)
	if err != nil {
		return nil, false, fmt.Errorf("query cached receipts: %w", err)
	}
	defer rows.Close()

	var recs []core.ContributionRecord
	var pageCap int
	for rows.Next() {
		var amountStr string
		var rec core.ContributionRecord
		var fetchedAt time.Time
		if err := rows.Scan(&amountStr, &rec.EntityType, &rec.ContributorName, &pageCap, &fetchedAt); err != nil {
			return nil, false, fmt.Errorf("scan cached receipt: %w", err)
		}
		if fetchedAt.Before(cutoff) {
			// The whole set shares one fetched_at; a stale row means a stale set.
			return nil, false, nil
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, false, fmt.Errorf("parse cached amount %q: %w", amountStr, err)
		}
		rec.Amount = amount
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate cached receipts: %w", err)
	}

	if len(recs) == 0 {
		return nil, false, nil
	}
	if !capSatisfies(pageCap, len(recs), maxPages) {
		return nil, false, nil
	}
	return recs, true, nil
}

// capSatisfies reports whether a set fetched under storedCap can answer a
// request for maxPages pages. A set smaller than storedCap full pages ended
// because the upstream ran out, so it is complete and satisfies any request.
func capSatisfies(storedCap, storedCount, maxPages int) bool {
	if storedCap <= 0 {
		return true
	}
	if storedCount < storedCap*receiptsPerPage {
		return true
	}
	return maxPages > 0 && maxPages <= storedCap
}

// PruneExpired deletes cached rows older than maxAge and returns the count.
func (c *ReceiptCache) PruneExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := c.db.ExecContext(ctx, `DELETE FROM receipt_cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cached receipts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
