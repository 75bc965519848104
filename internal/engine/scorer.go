package engine

import (
	"strings"

	"github.com/vapex/aromasearch/internal/models"
)

// Scorer computes the relevance score of an item against a normalized query
// from field-weighted exact, prefix, substring, and fuzzy matches.
type Scorer struct {
	weights        ScoreConfig
	fuzzyThreshold float64
}

// NewScorer creates a Scorer with the given weights and fuzzy threshold.
// Zero weights and a non-positive threshold fall back to defaults.
func NewScorer(weights ScoreConfig, fuzzyThreshold float64) *Scorer {
	weights.ApplyDefaults()
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	return &Scorer{
		weights:        weights,
		fuzzyThreshold: fuzzyThreshold,
	}
}

// Score returns the non-negative relevance score of item for the normalized
// query. All field rules are additive; a missing field contributes 0. Each
// search term entry contributes only its strongest applicable tier.
func (s *Scorer) Score(item *models.SearchableItem, query string) int {
	if item == nil || query == "" {
		return 0
	}

	score := 0

	if strings.Contains(Normalize(item.Name), query) {
		score += s.weights.NameContains
	}
	if item.Brand != "" && strings.Contains(Normalize(item.Brand), query) {
		score += s.weights.BrandContains
	}
	if item.Category != "" && strings.Contains(Normalize(item.Category), query) {
		score += s.weights.CategoryContains
	}
	if item.Author != "" && strings.Contains(Normalize(item.Author), query) {
		score += s.weights.AuthorContains
	}

	for _, term := range item.SearchTerms {
		score += s.termScore(Normalize(term), query)
	}

	for _, related := range item.RelatedNames {
		if strings.Contains(Normalize(related), query) {
			score += s.weights.RelatedNameContains
		}
	}

	return score
}

// termScore returns the strongest single tier a normalized search term entry
// satisfies: exact > prefix > substring > fuzzy. A term never contributes at
// two tiers.
func (s *Scorer) termScore(term, query string) int {
	switch {
	case term == "":
		return 0
	case term == query:
		return s.weights.TermExact
	case strings.HasPrefix(term, query):
		return s.weights.TermPrefix
	case strings.Contains(term, query):
		return s.weights.TermSubstring
	case FuzzyMatch(term, query, s.fuzzyThreshold):
		return s.weights.TermFuzzy
	default:
		return 0
	}
}

// MatchedTerms collects, de-duplicated and in field order, every name and
// search term value whose normalized form contains the normalized query.
// Fuzzy-only matches are not literal substrings and are never included.
func (s *Scorer) MatchedTerms(item *models.SearchableItem, query string) []string {
	if item == nil || query == "" {
		return nil
	}

	var matches []string
	seen := make(map[string]struct{})

	add := func(value string) {
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		matches = append(matches, value)
	}

	if strings.Contains(Normalize(item.Name), query) {
		add(item.Name)
	}
	for _, term := range item.SearchTerms {
		if strings.Contains(Normalize(term), query) {
			add(term)
		}
	}

	return matches
}
