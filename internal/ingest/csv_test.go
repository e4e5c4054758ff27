package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescout-engine/internal/domain"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const header = "place_id,restaurant_name,address,lat,lng,rating,total_ratings,review_text,sentiment_compound,sentiment_label,opening_hours\n"

func TestLoadFile(t *testing.T) {
	path := writeCSV(t, "reviews.csv", header+
		`p1,Trattoria,"1 Via Roma",52.4862,-1.8904,4.5,120,"great pizza",0.8,Positive,"Mon-Sun"`+"\n"+
		`p1,Trattoria,"1 Via Roma",52.4862,-1.8904,4.5,120,"cold pasta",-0.4,Negative,`+"\n")

	rows, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, "p1", r.PlaceID)
	assert.Equal(t, "Trattoria", r.RestaurantName)
	assert.Equal(t, 4.5, r.Rating)
	assert.Equal(t, 120, r.TotalRatings)
	assert.Equal(t, "great pizza", r.ReviewText)
	assert.Equal(t, 0.8, r.Compound)
	assert.Equal(t, domain.SentimentPositive, r.Label)
	require.NotNil(t, r.Coordinates)
	assert.InDelta(t, 52.4862, r.Coordinates.Lat, 1e-9)
	assert.Equal(t, "Mon-Sun", r.OpeningHours)
}

func TestLoadFileMissingColumnFatal(t *testing.T) {
	// review_text missing entirely: reject the file, do not fabricate rows
	path := writeCSV(t, "bad.csv",
		"place_id,restaurant_name,rating,total_ratings,sentiment_compound,sentiment_label\n"+
			"p1,Trattoria,4.5,120,0.8,Positive\n")

	_, err := LoadFile(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review_text")
}

func TestLoadFileNumericCoercion(t *testing.T) {
	path := writeCSV(t, "coerce.csv", header+
		`p1,Trattoria,,,,not-a-number,"1,234","text",garbage,Positive,`+"\n")

	rows, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// unparseable numerics coerce to zero, comma separators are tolerated
	assert.Equal(t, 0.0, rows[0].Rating)
	assert.Equal(t, 1234, rows[0].TotalRatings)
	assert.Equal(t, 0.0, rows[0].Compound)
	assert.Nil(t, rows[0].Coordinates)
}

func TestLoadFileDropsRowWithoutPlaceID(t *testing.T) {
	path := writeCSV(t, "drop.csv", header+
		`,NoID,addr,,,4.0,50,"text",0.1,Neutral,`+"\n"+
		`p2,Kept,addr,,,4.0,50,"text",0.1,Neutral,`+"\n")

	rows, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].PlaceID)
}

func TestLoadFileShortRowDropped(t *testing.T) {
	path := writeCSV(t, "short.csv", header+
		"p1,OnlyTwoFields\n"+
		`p2,Kept,addr,,,4.0,50,"text",0.1,Neutral,`+"\n")

	rows, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].PlaceID)
}

func TestLoadFileBlankLabelDefaultsNoReview(t *testing.T) {
	path := writeCSV(t, "label.csv", header+
		`p1,NoText,addr,,,4.0,50,"",0,,`+"\n")

	rows, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.SentimentNoReview, rows[0].Label)
}
