package google

import (
	"testing"
	"time"

	ports "scorecard/internal/sheets"
)

func TestCyclePrefixedName(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		cycle    int
		expected string
	}{
		{"plain base", "Scorecard", 2026, "2026 Scorecard"},
		{"already prefixed", "2024 Scorecard", 2026, "2024 Scorecard"},
		{"empty base", "", 2026, ""},
		{"whitespace base", "  Scorecard  ", 2026, "2026 Scorecard"},
		{"short base", "SC", 2026, "2026 SC"},
		{"number-ish but not a year", "12 Monkeys", 2026, "2026 12 Monkeys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cyclePrefixedName(tt.base, tt.cycle); got != tt.expected {
				t.Errorf("cyclePrefixedName(%q, %d) = %q, want %q", tt.base, tt.cycle, got, tt.expected)
			}
		})
	}
}

func TestRowIndexOf(t *testing.T) {
	values := [][]interface{}{
		{"candidate_id", "candidate_name"},
		{"H0CA01234", "Jane Doe"},
		{"S4TX00456", "John Smith"},
		{},
		{"h2ny09876", "Pat Jones"},
	}

	if got := rowIndexOf(values, "S4TX00456"); got != 3 {
		t.Errorf("rowIndexOf existing = %d, want 3", got)
	}
	if got := rowIndexOf(values, "H2NY09876"); got != 5 {
		t.Errorf("rowIndexOf case-insensitive = %d, want 5", got)
	}
	if got := rowIndexOf(values, "H9ZZ00000"); got != -1 {
		t.Errorf("rowIndexOf missing = %d, want -1", got)
	}
	if got := rowIndexOf(nil, "H0CA01234"); got != -1 {
		t.Errorf("rowIndexOf empty matrix = %d, want -1", got)
	}
}

func TestReportRowValues(t *testing.T) {
	exported := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := ports.ReportRow{
		CandidateID:        "H0CA01234",
		CandidateName:      "Jane Doe",
		CommitteeID:        "C00123456",
		Cycle:              2026,
		TotalReceipts:      350,
		TotalRaised:        120000.25,
		BigMoneyTotal:      80000,
		GrassrootsTotal:    30000,
		BigMoneyPercentage: 66.7,
		ExportedAt:         exported,
	}

	vals := reportRowValues(row)
	if len(vals) != 10 {
		t.Fatalf("reportRowValues length = %d, want 10", len(vals))
	}
	if vals[0] != "H0CA01234" {
		t.Errorf("column A = %v, want candidate ID", vals[0])
	}
	if vals[3] != 2026 {
		t.Errorf("column D = %v, want cycle", vals[3])
	}
	if vals[8] != 66.7 {
		t.Errorf("column I = %v, want big-money percentage", vals[8])
	}
	if vals[9] != "2026-03-01T12:00:00Z" {
		t.Errorf("column J = %v, want RFC3339 timestamp", vals[9])
	}
}
