package domain

// SentimentLabel is the discrete polarity class assigned to a scraped review
// by the upstream sentiment collaborator.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNoReview SentimentLabel = "NoReview"
)

// LatLng is a WGS84 coordinate pair. A nil *LatLng means the upstream source
// had no coordinates for the place.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ReviewRecord is one scraped review row as produced by the scraping and
// sentiment collaborators. Read-only input to the aggregator.
type ReviewRecord struct {
	PlaceID        string
	RestaurantName string
	Address        string
	Coordinates    *LatLng
	Rating         float64 // the place's displayed overall rating, 0 when missing
	TotalRatings   int     // the place's external rating count
	ReviewText     string
	Compound       float64 // sentiment compound score in [-1,1]
	Label          SentimentLabel
	OpeningHours   string
}
