package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FEC entity type codes as they appear on itemized receipts.
const (
	EntityPAC       = "PAC"
	EntityParty     = "PTY"
	EntityCommittee = "CCM"
	EntityOrg       = "ORG"
	EntityInd       = "IND"
	EntityCandidate = "CAN"
)

// Category identifies one of the nine fixed contribution buckets.
type Category string

const (
	CategorySmallIndividual Category = "small_individual_donors"
	CategoryLargeIndividual Category = "large_individual_donors"
	CategoryPACs            Category = "pacs"
	CategoryPartyCommittees Category = "party_committees"
	CategoryOtherCandidates Category = "other_candidates"
	CategoryOrganizations   Category = "organizations"
	CategorySelfFunding     Category = "self_funding"
	CategoryConduits        Category = "conduits"
	CategoryUnknown         Category = "unknown"
)

type (
	// ContributionRecord is a single itemized receipt as supplied by the
	// upstream data source. The engine treats it as read-only.
	ContributionRecord struct {
		Amount          decimal.Decimal
		EntityType      string
		ContributorName string
	}

	// Candidate is a candidate summary from a search result.
	Candidate struct {
		CandidateID string `json:"candidate_id"`
		Name        string `json:"name"`
		Party       string `json:"party"`
		State       string `json:"state"`
		District    string `json:"district"`
		Office      string `json:"office"`
		OfficeFull  string `json:"office_full"`
	}

	// Committee is a committee associated with a candidate for a cycle.
	Committee struct {
		CommitteeID string `json:"committee_id"`
		Name        string `json:"name"`
		Designation string `json:"designation"`
	}

	// FinancialSummary holds cycle-level totals for a candidate as reported
	// by the upstream totals endpoint.
	FinancialSummary struct {
		CandidateID   string  `json:"candidate_id"`
		Cycle         int     `json:"cycle"`
		Receipts      float64 `json:"receipts"`
		Disbursements float64 `json:"disbursements"`
		CashOnHand    float64 `json:"cash_on_hand"`
	}
)

// conduitNames are payment processors whose receipts aggregate small donor
// money. Matching is a case-insensitive substring heuristic, not exact: a
// contributor literally named "Winredge LLC" would match "WINRED".
var conduitNames = []string{"ACTBLUE", "WINRED", "ACT BLUE", "WIN RED"}

// largeDonorThreshold splits individual contributions into small and large.
var largeDonorThreshold = decimal.NewFromInt(200)

// lastNameToken returns the uppercased last whitespace-delimited token of a
// candidate display name, or "" when the name carries no tokens.
func lastNameToken(candidateName string) string {
	fields := strings.Fields(candidateName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[len(fields)-1])
}
