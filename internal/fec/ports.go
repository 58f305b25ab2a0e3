package fec

import (
	"context"

	"scorecard/internal/core"
)

// Ports for the upstream campaign-finance data source.
type (
	// CandidateSearcher finds candidates by (partial) name for a cycle.
	CandidateSearcher interface {
		// SearchCandidates returns at most one page of matches. office is
		// optional ("H", "S", or "P"); empty means all offices.
		SearchCandidates(ctx context.Context, name string, cycle int, office string) ([]core.Candidate, error)
	}

	// CommitteeLister returns the committees associated with a candidate.
	CommitteeLister interface {
		// ListCommittees returns an empty slice when the candidate has no
		// committees for the cycle; that is not an error.
		ListCommittees(ctx context.Context, candidateID string, cycle int) ([]core.Committee, error)
	}

	// ReceiptFetcher retrieves itemized contribution records for a committee.
	ReceiptFetcher interface {
		// FetchReceipts pages through itemized receipts, newest first, until
		// the source reports no further pages or maxPages is reached
		// (maxPages <= 0 means no cap). A page failure after retries stops
		// paging and returns whatever was accumulated so far.
		FetchReceipts(ctx context.Context, committeeID string, cycle int, maxPages int) ([]core.ContributionRecord, error)
	}

	// SummaryReader returns cycle-level financial totals for a candidate.
	SummaryReader interface {
		ReadSummary(ctx context.Context, candidateID string, cycle int) (core.FinancialSummary, error)
	}
)
