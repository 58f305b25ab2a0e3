package core

import "github.com/shopspring/decimal"

type (
	// CategorySummary is the reported amount and share for one category.
	CategorySummary struct {
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// CategoryBreakdown holds one summary per category. The category set is
	// fixed and closed; the sum of the nine amounts equals TotalRaised.
	CategoryBreakdown struct {
		SmallIndividualDonors CategorySummary `json:"small_individual_donors"`
		LargeIndividualDonors CategorySummary `json:"large_individual_donors"`
		PACs                  CategorySummary `json:"pacs"`
		PartyCommittees       CategorySummary `json:"party_committees"`
		OtherCandidates       CategorySummary `json:"other_candidates"`
		Organizations         CategorySummary `json:"organizations"`
		SelfFunding           CategorySummary `json:"self_funding"`
		Conduits              CategorySummary `json:"conduits"`
		Unknown               CategorySummary `json:"unknown"`
	}

	// AnalysisResult is the immutable outcome of one analysis call. Amounts
	// are rounded to 2 decimal places, percentages to 1, both half-up.
	AnalysisResult struct {
		TotalRaised        float64           `json:"total_raised"`
		TotalReceipts      int               `json:"total_receipts"`
		SelfFundingTotal   float64           `json:"self_funding_total"`
		BigMoneyTotal      float64           `json:"big_money_total"`
		GrassrootsTotal    float64           `json:"grassroots_total"`
		CountableTotal     float64           `json:"countable_total"`
		BigMoneyPercentage float64           `json:"big_money_percentage"`
		Categories         CategoryBreakdown `json:"categories"`
	}
)

// accumulator collects exact per-category totals during classification.
// Constructed fresh per Analyze call; never shared.
type accumulator struct {
	small, large, pacs, party, other, orgs, self, conduits, unknown decimal.Decimal
}

func (a *accumulator) add(cat Category, amount decimal.Decimal) {
	switch cat {
	case CategorySmallIndividual:
		a.small = a.small.Add(amount)
	case CategoryLargeIndividual:
		a.large = a.large.Add(amount)
	case CategoryPACs:
		a.pacs = a.pacs.Add(amount)
	case CategoryPartyCommittees:
		a.party = a.party.Add(amount)
	case CategoryOtherCandidates:
		a.other = a.other.Add(amount)
	case CategoryOrganizations:
		a.orgs = a.orgs.Add(amount)
	case CategorySelfFunding:
		a.self = a.self.Add(amount)
	case CategoryConduits:
		a.conduits = a.conduits.Add(amount)
	case CategoryUnknown:
		a.unknown = a.unknown.Add(amount)
	}
}

func (a *accumulator) totalRaised() decimal.Decimal {
	return a.small.Add(a.large).Add(a.pacs).Add(a.party).
		Add(a.other).Add(a.orgs).Add(a.self).Add(a.conduits).Add(a.unknown)
}

// Analyze classifies every record and derives the aggregate breakdown. It is
// pure: no I/O, no mutation of the input slice, deterministic for equal
// inputs, and safe to call from concurrent goroutines.
func Analyze(records []ContributionRecord, candidateName string) AnalysisResult {
	var acc accumulator
	for _, rec := range records {
		if cat, ok := Classify(rec, candidateName); ok {
			acc.add(cat, rec.Amount)
		}
	}

	totalRaised := acc.totalRaised()
	bigMoney := acc.pacs.Add(acc.party).Add(acc.other).Add(acc.orgs).Add(acc.large)
	grassroots := acc.small.Add(acc.conduits)
	countable := totalRaised.Sub(acc.self)

	return AnalysisResult{
		TotalRaised:        money(totalRaised),
		TotalReceipts:      len(records),
		SelfFundingTotal:   money(acc.self),
		BigMoneyTotal:      money(bigMoney),
		GrassrootsTotal:    money(grassroots),
		CountableTotal:     money(countable),
		BigMoneyPercentage: percentage(bigMoney, countable),
		Categories: CategoryBreakdown{
			SmallIndividualDonors: summarize(acc.small, totalRaised),
			LargeIndividualDonors: summarize(acc.large, totalRaised),
			PACs:                  summarize(acc.pacs, totalRaised),
			PartyCommittees:       summarize(acc.party, totalRaised),
			OtherCandidates:       summarize(acc.other, totalRaised),
			Organizations:         summarize(acc.orgs, totalRaised),
			SelfFunding:           summarize(acc.self, totalRaised),
			Conduits:              summarize(acc.conduits, totalRaised),
			Unknown:               summarize(acc.unknown, totalRaised),
		},
	}
}

func summarize(amount, totalRaised decimal.Decimal) CategorySummary {
	return CategorySummary{
		Amount:     money(amount),
		Percentage: percentage(amount, totalRaised),
	}
}
