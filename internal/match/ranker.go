package match

import (
	"fmt"
	"sort"

	"github.com/jessiysantos/fase5/internal/models"
)

// rank filters and orders scored candidates: scores at or below the threshold
// are dropped, survivors are sorted by score descending with a stable sort so
// equal scores keep corpus order, and the list is cut to limit entries when
// limit is positive. Rank numbers are assigned after the cut, starting at 1.
func rank(profiles []*models.CandidateProfile, scores []float64, threshold float64, limit int) []*models.ScoredMatch {
	results := make([]*models.ScoredMatch, 0, len(profiles))
	for i, p := range profiles {
		if scores[i] <= threshold {
			continue
		}
		results = append(results, &models.ScoredMatch{
			Candidate:  p,
			Score:      scores[i],
			Similarity: fmt.Sprintf("%.2f", scores[i]),
		})
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i, r := range results {
		r.Rank = i + 1
	}
	return results
}
