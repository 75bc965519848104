package models

// SearchResponse is the response for a search request. Total is the number of
// results returned after the cap is applied.
type SearchResponse struct {
	Results    []*ScoredResult `json:"results"`
	Total      int             `json:"total"`
	Query      string          `json:"query"`
	QueryTime  int64           `json:"query_time_ms"`
	Generation string          `json:"generation,omitempty"`
	// Fallback signals that the query could not be evaluated and the caller
	// should render the unfiltered item list instead of an empty state.
	Fallback bool `json:"fallback,omitempty"`
}

// SuggestResponse is the response for an autocomplete request.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
	Partial     string   `json:"partial"`
}
