package core

import "strings"

// Classify assigns a contribution to exactly one category. The second return
// is false when the record is excluded from aggregation entirely (refunds and
// zero amounts).
//
// Rules apply in strict priority order, first match wins:
//  1. non-positive amounts are excluded
//  2. conduit name match (ActBlue/WinRed)
//  3. self-funding: candidate last name in contributor name, or a CAN entity
//     type; both checks require a candidate name to be supplied, so CAN-typed
//     records with no known candidate land in the unknown bucket
//  4. dispatch on entity type, with individuals split at $200
func Classify(rec ContributionRecord, candidateName string) (Category, bool) {
	if !rec.Amount.IsPositive() {
		return "", false
	}

	contributor := strings.ToUpper(rec.ContributorName)

	for _, conduit := range conduitNames {
		if strings.Contains(contributor, conduit) {
			return CategoryConduits, true
		}
	}

	if lastName := lastNameToken(candidateName); lastName != "" {
		if strings.Contains(contributor, lastName) || rec.EntityType == EntityCandidate {
			return CategorySelfFunding, true
		}
	}

	switch rec.EntityType {
	case EntityPAC:
		return CategoryPACs, true
	case EntityParty:
		return CategoryPartyCommittees, true
	case EntityCommittee:
		return CategoryOtherCandidates, true
	case EntityOrg:
		return CategoryOrganizations, true
	case EntityInd:
		if rec.Amount.GreaterThanOrEqual(largeDonorThreshold) {
			return CategoryLargeIndividual, true
		}
		return CategorySmallIndividual, true
	default:
		return CategoryUnknown, true
	}
}
