package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scorecard/internal/amqp"
	"scorecard/internal/core"
	"scorecard/internal/fec"
)

// ErrNoCommittees means the candidate has no committees registered for the
// requested cycle.
var ErrNoCommittees = errors.New("no committees found for candidate")

// NoReceiptsError means the principal committee exists but has no itemized
// receipts yet for the cycle.
type NoReceiptsError struct {
	Committee core.Committee
}

func (e *NoReceiptsError) Error() string {
	return fmt.Sprintf("no contribution records found for committee %s", e.Committee.CommitteeID)
}

// ReportPublisher pushes finished analyses onto the export queue.
type ReportPublisher interface {
	PublishReportExport(ctx context.Context, msg *amqp.ReportExportMessage) error
}

type (
	// AnalyzeParams identifies the candidate and scopes the fetch.
	AnalyzeParams struct {
		CandidateID   string
		CandidateName string
		Party         string
		State         string
		Cycle         int
		MaxPages      int
	}

	// CandidateAnalysis is the assembled outcome of one analysis.
	CandidateAnalysis struct {
		Candidate core.Candidate      `json:"candidate"`
		Committee core.Committee      `json:"committee"`
		Analysis  core.AnalysisResult `json:"analysis"`
		Note      string              `json:"note"`
	}
)

// Analyzer orchestrates one candidate analysis: committee lookup, receipt
// fetch, classification, and optional export publishing.
type Analyzer struct {
	committees fec.CommitteeLister
	receipts   fec.ReceiptFetcher
	publisher  ReportPublisher
}

func NewAnalyzer(committees fec.CommitteeLister, receipts fec.ReceiptFetcher, publisher ReportPublisher) *Analyzer {
	return &Analyzer{
		committees: committees,
		receipts:   receipts,
		publisher:  publisher,
	}
}

// AnalyzeCandidate runs the full pipeline against the candidate's principal
// committee. The classification itself never fails; errors come from the
// upstream fetches or from a candidate with nothing to analyze.
func (a *Analyzer) AnalyzeCandidate(ctx context.Context, p AnalyzeParams) (*CandidateAnalysis, error) {
	committees, err := a.committees.ListCommittees(ctx, p.CandidateID, p.Cycle)
	if err != nil {
		return nil, fmt.Errorf("list committees: %w", err)
	}
	if len(committees) == 0 {
		return nil, ErrNoCommittees
	}

	// The principal campaign committee is listed first by the upstream sort.
	principal := committees[0]

	records, err := a.receipts.FetchReceipts(ctx, principal.CommitteeID, p.Cycle, p.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("fetch receipts: %w", err)
	}
	if len(records) == 0 {
		return nil, &NoReceiptsError{Committee: principal}
	}

	result := core.Analyze(records, p.CandidateName)

	analysis := &CandidateAnalysis{
		Candidate: core.Candidate{
			CandidateID: p.CandidateID,
			Name:        p.CandidateName,
			Party:       p.Party,
			State:       p.State,
		},
		Committee: principal,
		Analysis:  result,
		Note:      fmt.Sprintf("Analysis based on %d contribution records", len(records)),
	}

	a.publishReportExport(ctx, analysis, p.Cycle)

	return analysis, nil
}

// publishReportExport is fire-and-forget: the analysis already succeeded, so
// a broker outage only costs the spreadsheet row.
func (a *Analyzer) publishReportExport(ctx context.Context, analysis *CandidateAnalysis, cycle int) {
	if a.publisher == nil {
		return
	}

	msg := amqp.NewReportExportMessage(
		analysis.Candidate.CandidateID,
		analysis.Candidate.Name,
		analysis.Committee.CommitteeID,
		cycle,
	)
	msg.TotalReceipts = analysis.Analysis.TotalReceipts
	msg.TotalRaised = analysis.Analysis.TotalRaised
	msg.BigMoneyTotal = analysis.Analysis.BigMoneyTotal
	msg.GrassrootsTotal = analysis.Analysis.GrassrootsTotal
	msg.BigMoneyPercentage = analysis.Analysis.BigMoneyPercentage

	if err := a.publisher.PublishReportExport(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report export message",
			"candidate_id", analysis.Candidate.CandidateID,
			"error", err)
	}
}
