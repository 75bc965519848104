package engine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/vapex/aromasearch/internal/models"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Aromas: []*models.AromaRecord{
			{
				ID: 1, Name: "Strawberry", Brand: "Capella", Category: "Fruit",
				Percentage: 4.5, Rating: 4.2,
				SearchTerms: []string{"sweet", "berry"},
			},
			{
				ID: 2, Name: "Vanilla Custard", Brand: "Capella", Category: "Dessert",
				Tags: []string{"creamy"},
			},
			{ID: 3, Name: "Menthol", Brand: "FlavourArt", Category: "Fresh"},
		},
		Recipes: []*models.RecipeRecord{
			{
				ID: 1, Name: "Strawberry Dream", Author: "MixMaster", Category: "Fruit",
				Aromas: []string{"Strawberry", "Vanilla Custard"},
			},
		},
	}
}

func loadedIndex(t *testing.T) *Index {
	t.Helper()
	ix := NewIndex(nil, nil)
	if err := ix.Load(testCatalog()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return ix
}

func TestIndex_Load(t *testing.T) {
	ix := loadedIndex(t)

	if !ix.Ready() {
		t.Error("index not ready after load")
	}
	if ix.Size() != 4 {
		t.Errorf("Size() = %d, want 4", ix.Size())
	}
	if ix.Generation() == "" {
		t.Error("expected a generation id after load")
	}

	results, err := ix.Search("strawberry", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected aroma and recipe hit, got %d results", len(results))
	}
	// Recipe: name contains (100) + derived term prefix (70) + related
	// aroma contains (45). Aroma: name contains (100) + derived term
	// exact (90).
	if results[0].ID != "recipe_1" || results[0].Score != 215 {
		t.Errorf("top result = %s score %d, want recipe_1 score 215", results[0].ID, results[0].Score)
	}
	if results[1].ID != "aroma_1" || results[1].Score != 190 {
		t.Errorf("second result = %s score %d, want aroma_1 score 190", results[1].ID, results[1].Score)
	}
}

func TestIndex_LoadSkipsUnnamedRecords(t *testing.T) {
	ix := NewIndex(nil, nil)
	catalog := &models.Catalog{
		Aromas: []*models.AromaRecord{
			{ID: 1, Name: "Strawberry"},
			{ID: 2}, // no name
			nil,
		},
		Recipes: []*models.RecipeRecord{
			{ID: 1}, // no name
		},
	}
	if err := ix.Load(catalog); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ix.Size() != 1 {
		t.Errorf("Size() = %d, want 1", ix.Size())
	}
}

func TestIndex_LoadNilCatalog(t *testing.T) {
	ix := NewIndex(nil, nil)
	if err := ix.Load(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if ix.Ready() {
		t.Error("index must not become ready from a failed load")
	}
}

func TestIndex_LoadReplacesItems(t *testing.T) {
	ix := loadedIndex(t)
	firstGen := ix.Generation()

	replacement := &models.Catalog{
		Aromas: []*models.AromaRecord{{ID: 9, Name: "Koolada"}},
	}
	if err := ix.Load(replacement); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if ix.Size() != 1 {
		t.Errorf("Size() = %d after replace, want 1", ix.Size())
	}
	if ix.Generation() == firstGen {
		t.Error("generation did not change on reload")
	}
	results, err := ix.Search("strawberry", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("old items still searchable after replace: %d results", len(results))
	}
}

func TestIndex_SearchBeforeLoad(t *testing.T) {
	ix := NewIndex(nil, nil)

	results, err := ix.Search("strawberry", nil)
	if err != nil {
		t.Fatalf("Search() before load must not error, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results before load, got %d", len(results))
	}
	if suggestions := ix.Suggest("straw", 0); len(suggestions) != 0 {
		t.Errorf("expected empty suggestions before load, got %v", suggestions)
	}
}

func TestIndex_SearchMinLength(t *testing.T) {
	ix := loadedIndex(t)

	tests := []struct {
		name      string
		query     string
		wantEmpty bool
	}{
		{"empty query", "", true},
		{"one char", "s", true},
		{"two chars", "ab", true},
		{"two chars after normalization", "s!t", true},
		{"three chars", "van", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ix.Search(tt.query, nil)
			if err != nil {
				t.Fatalf("Search(%q) error: %v", tt.query, err)
			}
			if tt.wantEmpty && len(results) != 0 {
				t.Errorf("Search(%q) = %d results, want none", tt.query, len(results))
			}
			if !tt.wantEmpty && len(results) == 0 {
				t.Errorf("Search(%q) returned nothing", tt.query)
			}
		})
	}
}

func TestIndex_SearchDeterministic(t *testing.T) {
	ix := loadedIndex(t)

	first, err := ix.Search("berry", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	second, err := ix.Search("berry", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical queries returned different results with no load in between")
	}
}

func TestIndex_SearchContextFilter(t *testing.T) {
	ix := loadedIndex(t)

	for _, context := range []string{"aroma", "aromas"} {
		results, err := ix.Search("strawberry", &SearchOptions{Context: context})
		if err != nil {
			t.Fatalf("Search(context=%q) error: %v", context, err)
		}
		for _, r := range results {
			if r.Type != models.ItemTypeAroma {
				t.Errorf("context %q leaked %s item %s", context, r.Type, r.ID)
			}
		}
		if len(results) != 1 {
			t.Errorf("context %q: got %d results, want 1", context, len(results))
		}
	}

	results, err := ix.Search("strawberry", &SearchOptions{Context: "recipes"})
	if err != nil {
		t.Fatalf("Search(context=recipes) error: %v", err)
	}
	if len(results) != 1 || results[0].Type != models.ItemTypeRecipe {
		t.Errorf("recipes context: got %v", results)
	}
}

func TestIndex_SearchUnknownContext(t *testing.T) {
	ix := loadedIndex(t)

	// A typo'd context must be rejected, not silently ignored.
	_, err := ix.Search("strawberry", &SearchOptions{Context: "aormas"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIndex_SearchNegativeLimit(t *testing.T) {
	ix := loadedIndex(t)

	_, err := ix.Search("strawberry", &SearchOptions{MaxResults: -5})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIndex_SearchMaxResultsCap(t *testing.T) {
	catalog := &models.Catalog{}
	for i := 0; i < 80; i++ {
		catalog.Aromas = append(catalog.Aromas, &models.AromaRecord{
			ID:   int64(i),
			Name: fmt.Sprintf("Strawberry %d", i),
		})
	}
	ix := NewIndex(nil, nil)
	if err := ix.Load(catalog); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	results, err := ix.Search("strawberry", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 50 {
		t.Errorf("default cap: got %d results, want 50", len(results))
	}

	results, err = ix.Search("strawberry", &SearchOptions{MaxResults: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("override cap: got %d results, want 10", len(results))
	}
}

func TestIndex_SearchScoresAndMatchedTerms(t *testing.T) {
	ix := loadedIndex(t)

	results, err := ix.Search("straw", &SearchOptions{Context: "aromas"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	hit := results[0]
	// name contains (100) + derived term "strawberry" prefix (70)
	if hit.Score != 170 {
		t.Errorf("score = %d, want 170", hit.Score)
	}
	found := false
	for _, term := range hit.MatchedTerms {
		if term == "Strawberry" {
			found = true
		}
	}
	if !found {
		t.Errorf("MatchedTerms %v missing original-case name", hit.MatchedTerms)
	}
}

func TestIndex_Suggest(t *testing.T) {
	ix := loadedIndex(t)

	t.Run("prefix matches in index order", func(t *testing.T) {
		got := ix.Suggest("str", 0)
		// Aroma name, its derived lowercase term, then the recipe name
		// and its derived term.
		want := []string{"Strawberry", "strawberry", "Strawberry Dream", "strawberry dream"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest(str) = %v, want %v", got, want)
		}
	})

	t.Run("two characters is enough", func(t *testing.T) {
		if got := ix.Suggest("va", 0); len(got) == 0 {
			t.Error("expected suggestions for a 2-char partial")
		}
	})

	t.Run("one character is not", func(t *testing.T) {
		if got := ix.Suggest("v", 0); len(got) != 0 {
			t.Errorf("expected no suggestions for a 1-char partial, got %v", got)
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		got := ix.Suggest("str", 2)
		if len(got) != 2 {
			t.Errorf("Suggest with limit 2 returned %d entries", len(got))
		}
	})

	t.Run("non-prefix substring does not suggest", func(t *testing.T) {
		for _, s := range ix.Suggest("berry", 0) {
			if s == "Strawberry" {
				t.Error("substring-only match surfaced as suggestion")
			}
		}
	})
}

func TestIndex_Highlight(t *testing.T) {
	ix := loadedIndex(t)

	got := ix.Highlight("Fresh Strawberry Cheesecake", "strawberry")
	want := `Fresh <span class="search-highlight">Strawberry</span> Cheesecake`
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}

	// Queries below the search minimum are left alone.
	if got := ix.Highlight("Strawberry", "st"); got != "Strawberry" {
		t.Errorf("short query changed text: %q", got)
	}
}

func TestHighlightWith(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		expected string
	}{
		{"single occurrence", "Vanilla Custard", "custard", "Vanilla [Custard]"},
		{"multiple occurrences", "berry berry", "berry", "[berry] [berry]"},
		{"case insensitive", "MENTHOL mix", "menthol", "[MENTHOL] mix"},
		{"no occurrence", "Koolada", "berry", "Koolada"},
		{"empty query", "Koolada", "", "Koolada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HighlightWith(tt.text, tt.query, "[", "]")
			if got != tt.expected {
				t.Errorf("HighlightWith(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.expected)
			}
		})
	}
}
