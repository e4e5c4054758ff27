package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/tagging"
)

func testAggregator() *Aggregator {
	cfg := config.Config{}
	cfg.Tagging.FallbackCuisine = "General Cuisine"
	cfg.Tagging.CuisineRules = []config.TagRule{
		{Tag: "Italian", Any: []string{"pizza", "pasta"}},
	}
	cfg.Tagging.AspectRules = []config.TagRule{
		{Tag: "Service", Any: []string{"staff", "friendly"}},
	}
	return New(tagging.New(cfg))
}

func TestAggregateGroups(t *testing.T) {
	a := testAggregator()

	reviews := []domain.ReviewRecord{
		{PlaceID: "p2", RestaurantName: "Trattoria", Address: "1 Via Roma", Rating: 4.5, TotalRatings: 120,
			ReviewText: "lovely pizza", Compound: 0.8, Label: domain.SentimentPositive},
		{PlaceID: "p1", RestaurantName: "Chippy", Rating: 3.8, TotalRatings: 40,
			ReviewText: "friendly staff", Compound: 0.4, Label: domain.SentimentPositive},
		{PlaceID: "p2", ReviewText: "the pasta was cold", Compound: -0.5, Label: domain.SentimentNegative},
		{PlaceID: "p2", ReviewText: "", Compound: 0, Label: domain.SentimentNoReview},
		{PlaceID: "", ReviewText: "orphan row is ignored"},
	}

	out := a.Aggregate(reviews)
	require.Len(t, out, 2)

	// output ordered by place id
	assert.Equal(t, "p1", out[0].PlaceID)
	assert.Equal(t, "p2", out[1].PlaceID)

	p2 := out[1]
	assert.Equal(t, "Trattoria", p2.Name)
	assert.Equal(t, "1 Via Roma", p2.Address)
	assert.Equal(t, 4.5, p2.AvgRating)
	assert.Equal(t, 120, p2.TotalRatings)
	assert.Equal(t, 3, p2.TotalReviews)
	assert.Equal(t, 1, p2.PositiveReviews)
	assert.Equal(t, 1, p2.NegativeReviews)
	assert.Equal(t, 0, p2.NeutralReviews)
	assert.InDelta(t, 0.1, p2.AvgSentimentCompound, 1e-9)
	assert.InDelta(t, 1.0/3.0, p2.PositiveRatio, 1e-9)
	assert.InDelta(t, 1.0/3.0, p2.NegativeRatio, 1e-9)
	assert.Equal(t, "lovely pizza the pasta was cold", p2.AllReviewText)
	assert.Equal(t, []string{"Italian"}, p2.CuisineTags)

	p1 := out[0]
	assert.Equal(t, []string{"General Cuisine"}, p1.CuisineTags)
	assert.Equal(t, []string{"Service"}, p1.AspectTags)
}

func TestAggregateFirstNonEmptyIdentity(t *testing.T) {
	a := testAggregator()

	reviews := []domain.ReviewRecord{
		{PlaceID: "p1", RestaurantName: "", Address: ""},
		{PlaceID: "p1", RestaurantName: "Named Later", Address: "2 Side St",
			Coordinates: &domain.LatLng{Lat: 52.5, Lng: -1.9}, Rating: 4.2, TotalRatings: 80},
		{PlaceID: "p1", RestaurantName: "Ignored", Rating: 1.0, TotalRatings: 7},
	}

	out := a.Aggregate(reviews)
	require.Len(t, out, 1)

	r := out[0]
	assert.Equal(t, "Named Later", r.Name)
	assert.Equal(t, "2 Side St", r.Address)
	require.NotNil(t, r.Coords)
	assert.Equal(t, 52.5, r.Coords.Lat)
	assert.Equal(t, 4.2, r.AvgRating)
	assert.Equal(t, 80, r.TotalRatings)
}

func TestAggregateEmptyInput(t *testing.T) {
	a := testAggregator()
	assert.Empty(t, a.Aggregate(nil))
}
