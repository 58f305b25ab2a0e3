package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"scorecard/internal/core"
)

func TestSearchCandidatesByNameAndOffice(t *testing.T) {
	s := New()
	s.AddCandidate(core.Candidate{CandidateID: "S1", Name: "WARREN, ELIZABETH", Office: "S"})
	s.AddCandidate(core.Candidate{CandidateID: "H1", Name: "WARREN, JOHN", Office: "H"})
	s.AddCandidate(core.Candidate{CandidateID: "S2", Name: "SMITH, ALEX", Office: "S"})

	got, err := s.SearchCandidates(context.Background(), "warren", 2026, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}

	got, err = s.SearchCandidates(context.Background(), "warren", 2026, "S")
	if err != nil {
		t.Fatalf("search with office: %v", err)
	}
	if len(got) != 1 || got[0].CandidateID != "S1" {
		t.Fatalf("got %+v, want only S1", got)
	}
}

func TestFetchReceiptsPageCap(t *testing.T) {
	s := New()
	recs := make([]core.ContributionRecord, 250)
	for i := range recs {
		recs[i] = core.ContributionRecord{Amount: decimal.NewFromInt(1), EntityType: core.EntityInd}
	}
	s.AddReceipts("C1", recs...)

	got, err := s.FetchReceipts(context.Background(), "C1", 2026, 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 200 {
		t.Fatalf("got %d receipts, want 200 with a 2-page cap", len(got))
	}

	got, err = s.FetchReceipts(context.Background(), "C1", 2026, 0)
	if err != nil {
		t.Fatalf("fetch uncapped: %v", err)
	}
	if len(got) != 250 {
		t.Fatalf("got %d receipts, want all 250", len(got))
	}
}

func TestListCommitteesEmptyForUnknownCandidate(t *testing.T) {
	s := New()
	got, err := s.ListCommittees(context.Background(), "NOBODY", 2026)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d committees, want 0", len(got))
	}
}
