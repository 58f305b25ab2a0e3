package sheets

import (
	"context"
	"time"
)

// ReportRow is one exported analysis in the scorecard spreadsheet.
type ReportRow struct {
	CandidateID        string
	CandidateName      string
	CommitteeID        string
	Cycle              int
	TotalReceipts      int
	TotalRaised        float64
	BigMoneyTotal      float64
	GrassrootsTotal    float64
	BigMoneyPercentage float64
	ExportedAt         time.Time
}

// Ports for outbound adapters.
type (
	// ReportWriter upserts a report row keyed by candidate. Re-exporting the
	// same candidate replaces the earlier row instead of duplicating it.
	ReportWriter interface {
		AppendReport(ctx context.Context, row ReportRow) (rowRef string, err error)
	}
)
