package openfec

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shopspring/decimal"

	"scorecard/internal/core"
)

// decodeReceipt maps one raw schedule A result onto a ContributionRecord.
// Malformed or partial rows degrade to zero/empty fields instead of failing;
// the engine absorbs them into its exclusion and unknown handling.
func decodeReceipt(ctx context.Context, raw json.RawMessage) core.ContributionRecord {
	var rr receiptResult
	if err := json.Unmarshal(raw, &rr); err != nil {
		slog.WarnContext(ctx, "Malformed receipt row, keeping zero values", "error", err)
	}
	return core.ContributionRecord{
		Amount:          decimal.NewFromFloat(rr.Amount),
		EntityType:      rr.EntityType,
		ContributorName: rr.ContributorName,
	}
}
