package engine

// ScoreConfig holds the relevance weights for each match rule. Contributions
// are additive across rules and across search term entries; each search term
// entry contributes only its single strongest tier
// (exact > prefix > substring > fuzzy).
type ScoreConfig struct {
	NameContains        int `yaml:"name_contains"`         // default: 100
	TermExact           int `yaml:"term_exact"`            // default: 90
	BrandContains       int `yaml:"brand_contains"`        // default: 80
	TermPrefix          int `yaml:"term_prefix"`           // default: 70
	CategoryContains    int `yaml:"category_contains"`     // default: 60
	TermSubstring       int `yaml:"term_substring"`        // default: 50
	RelatedNameContains int `yaml:"related_name_contains"` // default: 45
	AuthorContains      int `yaml:"author_contains"`       // default: 40
	TermFuzzy           int `yaml:"term_fuzzy"`            // default: 30
}

// DefaultScoreConfig returns the default relevance weights.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		NameContains:        100,
		TermExact:           90,
		BrandContains:       80,
		TermPrefix:          70,
		CategoryContains:    60,
		TermSubstring:       50,
		RelatedNameContains: 45,
		AuthorContains:      40,
		TermFuzzy:           30,
	}
}

// ApplyDefaults fills in zero weights with defaults.
func (c *ScoreConfig) ApplyDefaults() {
	defaults := DefaultScoreConfig()

	if c.NameContains == 0 {
		c.NameContains = defaults.NameContains
	}
	if c.TermExact == 0 {
		c.TermExact = defaults.TermExact
	}
	if c.BrandContains == 0 {
		c.BrandContains = defaults.BrandContains
	}
	if c.TermPrefix == 0 {
		c.TermPrefix = defaults.TermPrefix
	}
	if c.CategoryContains == 0 {
		c.CategoryContains = defaults.CategoryContains
	}
	if c.TermSubstring == 0 {
		c.TermSubstring = defaults.TermSubstring
	}
	if c.RelatedNameContains == 0 {
		c.RelatedNameContains = defaults.RelatedNameContains
	}
	if c.AuthorContains == 0 {
		c.AuthorContains = defaults.AuthorContains
	}
	if c.TermFuzzy == 0 {
		c.TermFuzzy = defaults.TermFuzzy
	}
}

// Config holds all tunables for the search engine.
type Config struct {
	// MinLength is the minimum normalized query length for full search.
	MinLength int `yaml:"min_length"` // default: 3
	// SuggestMinLength is the minimum normalized partial length for
	// autocomplete; lower than MinLength by design.
	SuggestMinLength int `yaml:"suggest_min_length"` // default: 2
	// MaxResults caps the number of ranked results returned.
	MaxResults int `yaml:"max_results"` // default: 50
	// SuggestLimit caps the number of autocomplete suggestions.
	SuggestLimit int `yaml:"suggest_limit"` // default: 10
	// FuzzyThreshold is the minimum similarity for the fuzzy term rule.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"` // default: 0.6
	// HighlightClass is the CSS class of the default highlight marker.
	HighlightClass string `yaml:"highlight_class"` // default: search-highlight

	Scores ScoreConfig `yaml:"scores"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinLength:        3,
		SuggestMinLength: 2,
		MaxResults:       50,
		SuggestLimit:     10,
		FuzzyThreshold:   DefaultFuzzyThreshold,
		HighlightClass:   "search-highlight",
		Scores:           DefaultScoreConfig(),
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.MinLength == 0 {
		c.MinLength = defaults.MinLength
	}
	if c.SuggestMinLength == 0 {
		c.SuggestMinLength = defaults.SuggestMinLength
	}
	if c.MaxResults == 0 {
		c.MaxResults = defaults.MaxResults
	}
	if c.SuggestLimit == 0 {
		c.SuggestLimit = defaults.SuggestLimit
	}
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if c.HighlightClass == "" {
		c.HighlightClass = defaults.HighlightClass
	}
	c.Scores.ApplyDefaults()
}
