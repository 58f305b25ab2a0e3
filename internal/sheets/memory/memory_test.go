package memory

import (
	"context"
	"testing"

	"scorecard/internal/sheets"
)

func TestStoreAppendAndUpsert(t *testing.T) {
	s := New()

	ref, err := s.AppendReport(context.Background(), sheets.ReportRow{
		CandidateID:        "H0CA01234",
		CandidateName:      "Jane Doe",
		Cycle:              2026,
		BigMoneyPercentage: 42.0,
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	ref, err = s.AppendReport(context.Background(), sheets.ReportRow{
		CandidateID:   "S4TX00456",
		CandidateName: "John Smith",
		Cycle:         2026,
	})
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected second append: ref=%q err=%v", ref, err)
	}

	// Same candidate again replaces the first row.
	ref, err = s.AppendReport(context.Background(), sheets.ReportRow{
		CandidateID:        "h0ca01234",
		CandidateName:      "Jane Doe",
		Cycle:              2026,
		BigMoneyPercentage: 58.3,
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected upsert: ref=%q err=%v", ref, err)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].BigMoneyPercentage != 58.3 {
		t.Errorf("upsert should replace the row, got percentage %v", rows[0].BigMoneyPercentage)
	}
	if rows[0].ExportedAt.IsZero() {
		t.Error("AppendReport should stamp ExportedAt when zero")
	}
}

func TestStoreRejectsMissingCandidateID(t *testing.T) {
	s := New()
	if _, err := s.AppendReport(context.Background(), sheets.ReportRow{}); err == nil {
		t.Fatal("AppendReport should reject rows without a candidate ID")
	}
}
