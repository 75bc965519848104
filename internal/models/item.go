// Package models defines core data structures for catalog records, searchable
// items, and search results.
package models

// ItemType identifies which catalog collection a searchable item came from.
type ItemType string

const (
	// ItemTypeAroma is a flavor concentrate entry.
	ItemTypeAroma ItemType = "aroma"
	// ItemTypeRecipe is a mix recipe entry.
	ItemTypeRecipe ItemType = "recipe"
)

// String returns the string form of the item type.
func (t ItemType) String() string {
	return string(t)
}

// SearchableItem is a flattened, type-tagged catalog entry held by the search
// index. Items are immutable once indexed; a reload replaces the whole set.
type SearchableItem struct {
	// ID is unique within the index, formed as "{type}_{sourceID}".
	ID   string   `json:"id"`
	Type ItemType `json:"type"`

	// Name is the primary matchable field and is never empty.
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	Author   string `json:"author,omitempty"`

	// SearchTerms are additional matchable tokens (synonyms, tags). Duplicates
	// are allowed; insertion order does not affect matching.
	SearchTerms []string `json:"search_terms,omitempty"`

	// RelatedNames holds, for recipes, the names of the aromas used.
	RelatedNames []string `json:"related_names,omitempty"`

	// Display-only fields, carried through but never scored.
	Percentage  float64  `json:"percentage,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ScoredResult is a search hit: the item plus its relevance score and the
// original-case terms that matched (for UI highlighting). Values are created
// fresh per search call.
type ScoredResult struct {
	SearchableItem
	Score        int      `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}
