package assign

import (
	"fmt"
	"sort"

	"refseq-assign/feature/refseq/models"
)

// TaxonomyPolicy picks one successor of a secondary match with several candidates.
// Verdicts with a single candidate never reach the policy.
type TaxonomyPolicy interface {
	Name() string
	// Resolve returns the chosen accession or an error describing the ambiguity.
	Resolve(verdict models.MatchVerdict, taxonomyIDs []int) (string, error)
}

// SingletonTaxonomyPolicy resolves a secondary match only when the entity has exactly
// one distinct taxonomy id and exactly one candidate carries it.
type SingletonTaxonomyPolicy struct{}

// Name returns the policy name.
func (SingletonTaxonomyPolicy) Name() string {
	return "singleton-taxonomy"
}

// Resolve applies the singleton taxonomy rule.
func (SingletonTaxonomyPolicy) Resolve(verdict models.MatchVerdict, taxonomyIDs []int) (string, error) {
	switch len(taxonomyIDs) {
	case 0:
		return "", fmt.Errorf("no taxonomy ids for %d secondary candidates", len(verdict.MatchedIDs))
	case 1:
	default:
		return "", fmt.Errorf("taxonomy ids %v are not a singleton", taxonomyIDs)
	}

	var matched []string
	for id, candidate := range verdict.MatchedIDs {
		if candidate.TaxonomyID == taxonomyIDs[0] {
			matched = append(matched, id)
		}
	}
	sort.Strings(matched)

	if len(matched) != 1 {
		return "", fmt.Errorf("%d of %d secondary candidates share taxonomy id %d", len(matched), len(verdict.MatchedIDs), taxonomyIDs[0])
	}
	return matched[0], nil
}

// StrictTaxonomyPolicy never resolves a secondary match with more than one candidate.
type StrictTaxonomyPolicy struct{}

// Name returns the policy name.
func (StrictTaxonomyPolicy) Name() string {
	return "strict"
}

// Resolve always reports the verdict as ambiguous.
func (StrictTaxonomyPolicy) Resolve(verdict models.MatchVerdict, _ []int) (string, error) {
	return "", fmt.Errorf("%d secondary candidates and strict taxonomy policy", len(verdict.MatchedIDs))
}

// PolicyByName returns the taxonomy policy registered under name.
func PolicyByName(name string) (TaxonomyPolicy, error) {
	switch name {
	case "", SingletonTaxonomyPolicy{}.Name():
		return SingletonTaxonomyPolicy{}, nil
	case StrictTaxonomyPolicy{}.Name():
		return StrictTaxonomyPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown taxonomy policy %q", name)
	}
}
