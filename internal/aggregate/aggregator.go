package aggregate

import (
	"sort"
	"strings"

	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/tagging"
)

// Aggregator collapses raw review rows into one Restaurant per place id and
// runs the tag classifier over each restaurant's concatenated review text.
type Aggregator struct {
	classifier *tagging.Classifier
}

func New(classifier *tagging.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Aggregate groups reviews by place id. Identity fields take the first
// non-empty value in input order; reviews for one place are assumed
// consistent on these, so "first" is a stable tie-break, not a semantic
// choice. Output is ordered by place id so rebuilds are reproducible.
func (a *Aggregator) Aggregate(reviews []domain.ReviewRecord) []domain.Restaurant {
	groups := make(map[string][]domain.ReviewRecord)
	for _, rv := range reviews {
		if rv.PlaceID == "" {
			continue
		}
		groups[rv.PlaceID] = append(groups[rv.PlaceID], rv)
	}

	ids := make([]string, 0, len(groups))
	for placeID := range groups {
		ids = append(ids, placeID)
	}
	sort.Strings(ids)

	out := make([]domain.Restaurant, 0, len(ids))
	for _, placeID := range ids {
		out = append(out, a.collapse(placeID, groups[placeID]))
	}
	return out
}

func (a *Aggregator) collapse(placeID string, rows []domain.ReviewRecord) domain.Restaurant {
	r := domain.Restaurant{PlaceID: placeID}

	var compoundSum float64
	var texts []string

	for _, rv := range rows {
		if r.Name == "" {
			r.Name = rv.RestaurantName
		}
		if r.Address == "" {
			r.Address = rv.Address
		}
		if r.Coords == nil && rv.Coordinates != nil {
			c := *rv.Coordinates
			r.Coords = &c
		}
		if r.AvgRating == 0 && rv.Rating != 0 {
			r.AvgRating = rv.Rating
		}
		if r.TotalRatings == 0 && rv.TotalRatings != 0 {
			r.TotalRatings = rv.TotalRatings
		}
		if r.OpeningHours == "" {
			r.OpeningHours = rv.OpeningHours
		}

		compoundSum += rv.Compound
		switch rv.Label {
		case domain.SentimentPositive:
			r.PositiveReviews++
		case domain.SentimentNegative:
			r.NegativeReviews++
		case domain.SentimentNeutral:
			r.NeutralReviews++
		}
		if t := strings.TrimSpace(rv.ReviewText); t != "" {
			texts = append(texts, t)
		}
	}

	r.TotalReviews = len(rows)
	if r.TotalReviews > 0 {
		r.AvgSentimentCompound = compoundSum / float64(r.TotalReviews)
		// total_reviews counts scraped rows, so the denominator here is
		// never zero; the guard stays because ratios must default to 0,
		// not panic, if that ever changes.
		r.PositiveRatio = float64(r.PositiveReviews) / float64(r.TotalReviews)
		r.NegativeRatio = float64(r.NegativeReviews) / float64(r.TotalReviews)
	}

	r.AllReviewText = strings.Join(texts, " ")
	r.CuisineTags, r.AspectTags = a.classifier.Classify(r.AllReviewText)
	return r
}
