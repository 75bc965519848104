package engine

import (
	"fmt"
	"sort"

	"github.com/vapex/aromasearch/internal/models"
)

// Rank sorts scored results descending by score and truncates to maxResults.
// The sort is stable: ties keep their original relative order, so index order
// is the deterministic tie-break. A negative maxResults is rejected with
// ErrInvalidArgument; zero means no results.
func Rank(results []*models.ScoredResult, maxResults int) ([]*models.ScoredResult, error) {
	if maxResults < 0 {
		return nil, fmt.Errorf("%w: maxResults must be >= 0, got %d", ErrInvalidArgument, maxResults)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
