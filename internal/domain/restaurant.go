package domain

// Restaurant is the aggregated unit, one per unique place id. Built in a
// single batch pass over the full review set; never updated incrementally.
type Restaurant struct {
	PlaceID string  `json:"placeId"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Coords  *LatLng `json:"coords,omitempty"`

	// Rating evidence. AvgRating is the place's own displayed rating, not
	// recomputed from the sampled reviews. TotalRatings is the external
	// count and acts as the confidence signal; TotalReviews is the number
	// of scraped review samples (typically <=5).
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
	TotalReviews int     `json:"totalReviews"`

	AvgSentimentCompound float64 `json:"avgSentimentCompound"`
	PositiveReviews      int     `json:"positiveReviews"`
	NegativeReviews      int     `json:"negativeReviews"`
	NeutralReviews       int     `json:"neutralReviews"`
	PositiveRatio        float64 `json:"positiveRatio"`
	NegativeRatio        float64 `json:"negativeRatio"`

	CuisineTags     []string `json:"cuisineTags"` // never empty
	AspectTags      []string `json:"aspectTags"`  // may be empty
	SalientKeywords []string `json:"salientKeywords,omitempty"`

	AllReviewText string `json:"-"` // concatenated sample texts, tagging input
	OpeningHours  string `json:"openingHours,omitempty"`
}

// CombinedKeywords is the deduplicated union of cuisine tags, aspect tags and
// salient keywords, the haystack for keyword-bonus matching. Order follows
// first appearance across the three source lists.
func (r *Restaurant) CombinedKeywords() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(r.CuisineTags)+len(r.AspectTags)+len(r.SalientKeywords))
	for _, list := range [][]string{r.CuisineTags, r.AspectTags, r.SalientKeywords} {
		for _, k := range list {
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
