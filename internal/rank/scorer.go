package rank

import (
	"strings"

	"dinescout-engine/internal/domain"
)

// WeightedRating is the Bayesian average of a restaurant's own rating and
// the corpus mean c, blended by its rating-count evidence v against the
// shrinkage constant m. v -> infinity converges to the raw rating;
// v -> 0 converges to c. The result always lies between rating and c.
func WeightedRating(rating float64, v int, c float64, m int) float64 {
	if v+m <= 0 {
		return c
	}
	vf, mf := float64(v), float64(m)
	return (vf/(vf+mf))*rating + (mf/(vf+mf))*c
}

// CorpusMean returns the mean avg_rating over the candidate set being
// scored. It shifts as the dataset grows, so scores are never stable across
// dataset versions and must not be cached between requests.
func CorpusMean(records []domain.Restaurant) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.AvgRating
	}
	return sum / float64(len(records))
}

// keywordBonus counts how many request keywords hit the restaurant's
// combined keyword set (case-insensitive substring per needle, one hit per
// needle) and converts hits to a flat per-hit bonus capped so keyword
// stuffing can't outrun the rating signal.
func keywordBonus(needles []string, haystack []string, perHit, cap float64) float64 {
	if len(needles) == 0 || len(haystack) == 0 {
		return 0
	}
	lowered := make([]string, len(haystack))
	for i, h := range haystack {
		lowered[i] = strings.ToLower(h)
	}

	hits := 0
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		for _, h := range lowered {
			if strings.Contains(h, n) {
				hits++
				break
			}
		}
	}

	bonus := float64(hits) * perHit
	if bonus > cap {
		bonus = cap
	}
	return bonus
}
