// Package cli provides CLI output formatting for aromasearch.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vapex/aromasearch/internal/models"
)

// OutputFormat is the format for CLI result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	if response.Fallback {
		fmt.Fprintf(w, "\nSearch for %q could not be evaluated; showing nothing filtered.\n", response.Query)
		return
	}
	fmt.Fprintf(w, "\nFound %d results for %q in %dms\n\n", response.Total, response.Query, response.QueryTime)
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.ScoredResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %d | Type: %s\n", rank, result.Score, result.Type)
	fmt.Fprintf(w, "ID: %s\n", result.ID)
	fmt.Fprintf(w, "Name: %s\n", result.Name)
	if result.Brand != "" {
		fmt.Fprintf(w, "Brand: %s\n", result.Brand)
	}
	if result.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", result.Category)
	}
	if result.Author != "" {
		fmt.Fprintf(w, "Author: %s\n", result.Author)
	}
	if len(result.MatchedTerms) > 0 {
		fmt.Fprintf(w, "Matched: %s\n", strings.Join(result.MatchedTerms, ", "))
	}
	if result.Description != "" {
		fmt.Fprintf(w, "\n%s\n", Truncate(result.Description, 200))
	}
	fmt.Fprintln(w)
}

// WriteSuggestions writes autocomplete suggestions to w in the given format.
func WriteSuggestions(w io.Writer, response *models.SuggestResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		if len(response.Suggestions) == 0 {
			fmt.Fprintf(w, "No suggestions for %q\n", response.Partial)
			return nil
		}
		for _, s := range response.Suggestions {
			fmt.Fprintln(w, s)
		}
		return nil
	}
}

// Truncate truncates s to at most maxLen bytes and appends "..." if
// truncated. The cut never splits a multi-byte rune.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
