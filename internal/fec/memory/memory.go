// Package memory provides a fixture-backed implementation of the fec ports,
// used as the development backend and by handler tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"scorecard/internal/core"
)

type Store struct {
	mu         sync.Mutex
	candidates []core.Candidate
	committees map[string][]core.Committee
	receipts   map[string][]core.ContributionRecord
	summaries  map[string]core.FinancialSummary
}

func New() *Store {
	return &Store{
		committees: make(map[string][]core.Committee),
		receipts:   make(map[string][]core.ContributionRecord),
		summaries:  make(map[string]core.FinancialSummary),
	}
}

// AddCandidate registers a candidate fixture.
func (s *Store) AddCandidate(c core.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, c)
}

// AddCommittee associates a committee fixture with a candidate.
func (s *Store) AddCommittee(candidateID string, c core.Committee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees[candidateID] = append(s.committees[candidateID], c)
}

// AddReceipts appends receipt fixtures for a committee.
func (s *Store) AddReceipts(committeeID string, recs ...core.ContributionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[committeeID] = append(s.receipts[committeeID], recs...)
}

// SetSummary registers a financial summary fixture for a candidate.
func (s *Store) SetSummary(candidateID string, sum core.FinancialSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[candidateID] = sum
}

// SearchCandidates matches candidate names case-insensitively by substring.
func (s *Store) SearchCandidates(_ context.Context, name string, _ int, office string) ([]core.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToUpper(name)
	var out []core.Candidate
	for _, c := range s.candidates {
		if !strings.Contains(strings.ToUpper(c.Name), needle) {
			continue
		}
		if office != "" && c.Office != office {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// ListCommittees returns the committee fixtures for a candidate.
func (s *Store) ListCommittees(_ context.Context, candidateID string, _ int) ([]core.Committee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Committee(nil), s.committees[candidateID]...)
	return out, nil
}

// FetchReceipts returns receipt fixtures, honoring the page cap at 100
// records per page like the live source.
func (s *Store) FetchReceipts(_ context.Context, committeeID string, _ int, maxPages int) ([]core.ContributionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.receipts[committeeID]
	if maxPages > 0 && len(recs) > maxPages*100 {
		recs = recs[:maxPages*100]
	}
	return append([]core.ContributionRecord(nil), recs...), nil
}

// ReadSummary returns the summary fixture, or a zero-valued summary when
// none was registered.
func (s *Store) ReadSummary(_ context.Context, candidateID string, cycle int) (core.FinancialSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sum, ok := s.summaries[candidateID]; ok {
		return sum, nil
	}
	return core.FinancialSummary{CandidateID: candidateID, Cycle: cycle}, nil
}
