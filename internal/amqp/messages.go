package amqp

import (
	"encoding/json"
	"time"
)

// ReportExportMessage asks the worker to append one analysis row to the
// report spreadsheet. It carries the headline numbers so the worker does
// not have to re-run the analysis.
type ReportExportMessage struct {
	CandidateID        string    `json:"candidate_id"`
	CandidateName      string    `json:"candidate_name"`
	CommitteeID        string    `json:"committee_id"`
	Cycle              int       `json:"cycle"`
	TotalReceipts      int       `json:"total_receipts"`
	TotalRaised        float64   `json:"total_raised"`
	BigMoneyTotal      float64   `json:"big_money_total"`
	GrassrootsTotal    float64   `json:"grassroots_total"`
	BigMoneyPercentage float64   `json:"big_money_percentage"`
	Timestamp          time.Time `json:"timestamp"`
}

// NewReportExportMessage stamps the message with the current time.
func NewReportExportMessage(candidateID, candidateName, committeeID string, cycle int) *ReportExportMessage {
	return &ReportExportMessage{
		CandidateID:   candidateID,
		CandidateName: candidateName,
		CommitteeID:   committeeID,
		Cycle:         cycle,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportExportMessageFromJSON creates a message from JSON bytes
func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.CandidateID == "" {
		return nil, errEmptyCandidateID
	}
	return &msg, nil
}
