package models

// Catalog is the input record shape provided by the catalog collaborator.
// Missing optional fields default to empty and must not break indexing.
type Catalog struct {
	Aromas  []*AromaRecord  `json:"aromas"`
	Recipes []*RecipeRecord `json:"recipes"`
}

// AromaRecord is a flavor concentrate as delivered by the catalog source.
type AromaRecord struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Percentage  float64  `json:"percentage,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SearchTerms []string `json:"searchTerms,omitempty"`
}

// RecipeRecord is a mix recipe as delivered by the catalog source. Aromas
// lists the names of the aromas the recipe uses.
type RecipeRecord struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author,omitempty"`
	Category    string   `json:"category,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Aromas      []string `json:"aromas,omitempty"`
	SearchTerms []string `json:"searchTerms,omitempty"`
}

// Size returns the total number of records in the catalog.
func (c *Catalog) Size() int {
	if c == nil {
		return 0
	}
	return len(c.Aromas) + len(c.Recipes)
}
