package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ports "scorecard/internal/sheets"
)

// reportRowValues lays out a report row in the spreadsheet column order:
// A candidate ID, B candidate name, C committee ID, D cycle,
// E receipt count, F total raised, G big-money total, H grassroots total,
// I big-money percentage, J exported-at timestamp.
func reportRowValues(row ports.ReportRow) []any {
	return []any{
		row.CandidateID,
		row.CandidateName,
		row.CommitteeID,
		row.Cycle,
		row.TotalReceipts,
		row.TotalRaised,
		row.BigMoneyTotal,
		row.GrassrootsTotal,
		row.BigMoneyPercentage,
		row.ExportedAt.Format(time.RFC3339),
	}
}

// rowIndexOf returns the 1-based sheet row whose first cell matches the
// candidate ID, or -1 when absent.
func rowIndexOf(values [][]interface{}, candidateID string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(row[0]))
		if strings.EqualFold(v, strings.TrimSpace(candidateID)) {
			return i + 1
		}
	}
	return -1
}

// cyclePrefixedName returns "<cycle> <base>" unless base already starts with
// a 4-digit year.
func cyclePrefixedName(base string, cycle int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", cycle, base)
}
