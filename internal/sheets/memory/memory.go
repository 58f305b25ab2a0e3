package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"scorecard/internal/sheets"
)

// Store is an in-memory ReportWriter used by tests and local development.
// It mirrors the spreadsheet upsert semantics: one row per candidate.
type Store struct {
	mu   sync.Mutex
	rows []sheets.ReportRow
}

func New() *Store {
	return &Store{}
}

var _ sheets.ReportWriter = (*Store)(nil)

// AppendReport upserts the row keyed by candidate ID and returns a
// synthetic row reference.
func (s *Store) AppendReport(_ context.Context, row sheets.ReportRow) (string, error) {
	if strings.TrimSpace(row.CandidateID) == "" {
		return "", errors.New("report row missing candidate ID")
	}
	if row.ExportedAt.IsZero() {
		row.ExportedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.rows {
		if strings.EqualFold(existing.CandidateID, row.CandidateID) {
			s.rows[i] = row
			return fmt.Sprintf("mem:%d", i+1), nil
		}
	}
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of the stored rows in insertion order.
func (s *Store) Rows() []sheets.ReportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.ReportRow(nil), s.rows...)
}
