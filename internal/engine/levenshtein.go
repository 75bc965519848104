package engine

// DefaultFuzzyThreshold is the minimum similarity for a fuzzy match.
const DefaultFuzzyThreshold = 0.6

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string into
// another. Comparison is case-sensitive; callers pass pre-normalized text.
// This is a pure function with no side effects.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len([]rune(b))
	}
	if len(b) == 0 {
		return len([]rune(a))
	}

	// Convert to runes for proper Unicode handling
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)

	// Only two rows of the DP table are needed at a time
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

// Similarity returns an edit-distance similarity ratio in [0, 1]:
// (maxLen - distance) / maxLen. Two empty strings are fully similar (1.0).
func Similarity(a, b string) float64 {
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	longer := max(lenA, lenB)
	if longer == 0 {
		return 1.0
	}
	distance := LevenshteinDistance(a, b)
	return float64(longer-distance) / float64(longer)
}

// FuzzyMatch reports whether a and b are similar enough to count as a match.
// A threshold of 0 or less falls back to DefaultFuzzyThreshold.
func FuzzyMatch(a, b string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return Similarity(a, b) >= threshold
}
