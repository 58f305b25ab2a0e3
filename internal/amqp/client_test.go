package amqp

import (
	"testing"
	"time"
)

func TestNewReportExportMessage(t *testing.T) {
	msg := NewReportExportMessage("H0CA01234", "Jane Doe", "C00123456", 2026)

	if msg.CandidateID != "H0CA01234" {
		t.Errorf("CandidateID = %v, want H0CA01234", msg.CandidateID)
	}
	if msg.CandidateName != "Jane Doe" {
		t.Errorf("CandidateName = %v, want Jane Doe", msg.CandidateName)
	}
	if msg.CommitteeID != "C00123456" {
		t.Errorf("CommitteeID = %v, want C00123456", msg.CommitteeID)
	}
	if msg.Cycle != 2026 {
		t.Errorf("Cycle = %v, want 2026", msg.Cycle)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestReportExportMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &ReportExportMessage{
		CandidateID:        "S4TX00456",
		CandidateName:      "John Smith",
		CommitteeID:        "C00987654",
		Cycle:              2026,
		TotalReceipts:      1200,
		TotalRaised:        845000.50,
		BigMoneyTotal:      500000,
		GrassrootsTotal:    300000,
		BigMoneyPercentage: 59.2,
		Timestamp:          timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReportExportMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ReportExportMessageFromJSON() error = %v", err)
	}

	if parsed.CandidateID != msg.CandidateID {
		t.Errorf("Parsed CandidateID = %v, want %v", parsed.CandidateID, msg.CandidateID)
	}
	if parsed.CommitteeID != msg.CommitteeID {
		t.Errorf("Parsed CommitteeID = %v, want %v", parsed.CommitteeID, msg.CommitteeID)
	}
	if parsed.TotalReceipts != msg.TotalReceipts {
		t.Errorf("Parsed TotalReceipts = %v, want %v", parsed.TotalReceipts, msg.TotalReceipts)
	}
	if parsed.BigMoneyPercentage != msg.BigMoneyPercentage {
		t.Errorf("Parsed BigMoneyPercentage = %v, want %v", parsed.BigMoneyPercentage, msg.BigMoneyPercentage)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestReportExportMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"cycle": "not_a_number"}`)

	if _, err := ReportExportMessageFromJSON(invalidJSON); err == nil {
		t.Error("ReportExportMessageFromJSON() should fail with invalid JSON")
	}
}

func TestReportExportMessage_MissingCandidateID(t *testing.T) {
	if _, err := ReportExportMessageFromJSON([]byte(`{"cycle": 2026}`)); err == nil {
		t.Error("ReportExportMessageFromJSON() should reject messages without candidate_id")
	}
}
