package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vapex/aromasearch/internal/models"
)

// Index holds the flat collection of searchable items and answers ranked
// queries over it. The collection is read-only between loads; Load atomically
// swaps in a full replacement under a single-writer lock, so searches never
// observe a partially built index.
type Index struct {
	mu         sync.RWMutex
	items      []*models.SearchableItem
	ready      bool
	generation string
	loadedAt   time.Time

	config *Config
	scorer *Scorer
	logger *zap.Logger
}

// SearchOptions restricts or extends a single search call.
type SearchOptions struct {
	// Context restricts results to one item type. Accepted values are
	// "aroma"/"aromas" and "recipe"/"recipes"; empty means all types.
	Context string
	// MaxResults overrides the configured result cap when > 0.
	MaxResults int
}

// NewIndex creates an empty, not-yet-ready index with the given configuration.
func NewIndex(config *Config, logger *zap.Logger) *Index {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		config: config,
		scorer: NewScorer(config.Scores, config.FuzzyThreshold),
		logger: logger,
	}
}

// Load replaces the indexed item collection with a flattened view of the
// catalog. Records without a name are skipped with a warning rather than
// failing the whole load. After the first successful Load the index is ready.
func (ix *Index) Load(catalog *models.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidInput)
	}

	items := make([]*models.SearchableItem, 0, catalog.Size())
	skipped := 0

	for _, aroma := range catalog.Aromas {
		if aroma == nil || aroma.Name == "" {
			skipped++
			continue
		}
		items = append(items, flattenAroma(aroma))
	}
	for _, recipe := range catalog.Recipes {
		if recipe == nil || recipe.Name == "" {
			skipped++
			continue
		}
		items = append(items, flattenRecipe(recipe))
	}

	generation := uuid.NewString()

	ix.mu.Lock()
	ix.items = items
	ix.ready = true
	ix.generation = generation
	ix.loadedAt = time.Now()
	ix.mu.Unlock()

	if skipped > 0 {
		ix.logger.Warn("skipped catalog records without a name", zap.Int("skipped", skipped))
	}
	ix.logger.Info("search index loaded",
		zap.Int("items", len(items)),
		zap.String("generation", generation),
	)
	return nil
}

func flattenAroma(rec *models.AromaRecord) *models.SearchableItem {
	terms := make([]string, 0, 3+len(rec.SearchTerms)+len(rec.Tags))
	terms = append(terms, strings.ToLower(rec.Name))
	if rec.Brand != "" {
		terms = append(terms, strings.ToLower(rec.Brand))
	}
	if rec.Category != "" {
		terms = append(terms, strings.ToLower(rec.Category))
	}
	terms = append(terms, rec.SearchTerms...)
	terms = append(terms, rec.Tags...)

	return &models.SearchableItem{
		ID:          "aroma_" + strconv.FormatInt(rec.ID, 10),
		Type:        models.ItemTypeAroma,
		Name:        rec.Name,
		Brand:       rec.Brand,
		Category:    rec.Category,
		SearchTerms: terms,
		Percentage:  rec.Percentage,
		Rating:      rec.Rating,
		Reviews:     rec.Reviews,
		Description: rec.Description,
		Tags:        rec.Tags,
	}
}

func flattenRecipe(rec *models.RecipeRecord) *models.SearchableItem {
	terms := make([]string, 0, 3+len(rec.SearchTerms))
	terms = append(terms, strings.ToLower(rec.Name))
	if rec.Author != "" {
		terms = append(terms, strings.ToLower(rec.Author))
	}
	if rec.Category != "" {
		terms = append(terms, strings.ToLower(rec.Category))
	}
	terms = append(terms, rec.SearchTerms...)

	return &models.SearchableItem{
		ID:           "recipe_" + strconv.FormatInt(rec.ID, 10),
		Type:         models.ItemTypeRecipe,
		Name:         rec.Name,
		Author:       rec.Author,
		Category:     rec.Category,
		SearchTerms:  terms,
		RelatedNames: rec.Aromas,
		Rating:       rec.Rating,
	}
}

// Search scores every indexed item against the query and returns the ranked
// results. Queries shorter than the configured minimum (after normalization)
// return an empty slice, as does a search before the first Load. Unknown
// context values and negative caps are rejected with ErrInvalidArgument.
func (ix *Index) Search(query string, opts *SearchOptions) ([]*models.ScoredResult, error) {
	typeFilter, maxResults, err := ix.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.ready {
		return []*models.ScoredResult{}, nil
	}

	normalized := Normalize(query)
	if utf8.RuneCountInString(normalized) < ix.config.MinLength {
		return []*models.ScoredResult{}, nil
	}

	results := make([]*models.ScoredResult, 0)
	for _, item := range ix.items {
		if typeFilter != "" && item.Type != typeFilter {
			continue
		}
		score := ix.scorer.Score(item, normalized)
		if score <= 0 {
			continue
		}
		results = append(results, &models.ScoredResult{
			SearchableItem: *item,
			Score:          score,
			MatchedTerms:   ix.scorer.MatchedTerms(item, normalized),
		})
	}

	return Rank(results, maxResults)
}

// resolveOptions validates options and resolves the type filter and cap.
func (ix *Index) resolveOptions(opts *SearchOptions) (models.ItemType, int, error) {
	maxResults := ix.config.MaxResults
	if opts == nil {
		return "", maxResults, nil
	}
	if opts.MaxResults < 0 {
		return "", 0, fmt.Errorf("%w: maxResults must be >= 0, got %d", ErrInvalidArgument, opts.MaxResults)
	}
	if opts.MaxResults > 0 {
		maxResults = opts.MaxResults
	}

	switch opts.Context {
	case "":
		return "", maxResults, nil
	case "aroma", "aromas":
		return models.ItemTypeAroma, maxResults, nil
	case "recipe", "recipes":
		return models.ItemTypeRecipe, maxResults, nil
	default:
		return "", 0, fmt.Errorf("%w: unknown context %q", ErrInvalidArgument, opts.Context)
	}
}

// Suggest returns autocomplete candidates: every name and search term whose
// normalized form starts with the normalized partial, de-duplicated, in index
// iteration order (first seen, not relevance ranked), truncated to limit.
// A non-positive limit falls back to the configured suggest limit.
func (ix *Index) Suggest(partial string, limit int) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.ready {
		return []string{}
	}
	normalized := Normalize(partial)
	if utf8.RuneCountInString(normalized) < ix.config.SuggestMinLength {
		return []string{}
	}
	if limit <= 0 {
		limit = ix.config.SuggestLimit
	}

	suggestions := make([]string, 0, limit)
	seen := make(map[string]struct{})

	add := func(value string) bool {
		if !strings.HasPrefix(Normalize(value), normalized) {
			return false
		}
		if _, ok := seen[value]; ok {
			return false
		}
		seen[value] = struct{}{}
		suggestions = append(suggestions, value)
		return len(suggestions) >= limit
	}

	for _, item := range ix.items {
		if add(item.Name) {
			return suggestions
		}
		for _, term := range item.SearchTerms {
			if add(term) {
				return suggestions
			}
		}
	}
	return suggestions
}

// Highlight wraps literal occurrences of the query in the configured marker.
func (ix *Index) Highlight(text, query string) string {
	if utf8.RuneCountInString(Normalize(query)) < ix.config.MinLength {
		return text
	}
	open := `<span class="` + ix.config.HighlightClass + `">`
	return HighlightWith(text, query, open, "</span>")
}

// Ready reports whether the index has completed at least one load.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.ready
}

// Generation returns the id assigned to the current loaded item set.
func (ix *Index) Generation() string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.generation
}

// Size returns the number of indexed items.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

// LoadedAt returns the time of the last successful load.
func (ix *Index) LoadedAt() time.Time {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.loadedAt
}
