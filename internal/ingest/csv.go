package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"dinescout-engine/internal/domain"
)

// Required input columns. A file missing any of these is rejected outright
// rather than partially loaded.
var requiredColumns = []string{
	"place_id",
	"restaurant_name",
	"rating",
	"total_ratings",
	"review_text",
	"sentiment_compound",
	"sentiment_label",
}

// LoadFile reads one review export. Bad individual rows are dropped with a
// logged reason; a malformed header fails the whole file.
func LoadFile(path string, log zerolog.Logger) ([]domain.ReviewRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validate per row, short rows are dropped not fatal

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, want)
		}
	}

	var out []domain.ReviewRecord
	line := 1
	for {
		line++
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Str("file", path).Int("line", line).Err(err).Msg("dropping malformed row")
			continue
		}
		if len(row) < len(header) {
			log.Warn().Str("file", path).Int("line", line).Msg("dropping short row")
			continue
		}

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := domain.ReviewRecord{
			PlaceID:        get("place_id"),
			RestaurantName: get("restaurant_name"),
			Address:        get("address"),
			Rating:         parseFloat(get("rating")),
			TotalRatings:   parseInt(get("total_ratings")),
			ReviewText:     get("review_text"),
			Compound:       parseFloat(get("sentiment_compound")),
			Label:          domain.SentimentLabel(get("sentiment_label")),
			OpeningHours:   get("opening_hours"),
		}
		if rec.PlaceID == "" {
			log.Warn().Str("file", path).Int("line", line).Msg("dropping row without place_id")
			continue
		}
		if rec.Label == "" {
			rec.Label = domain.SentimentNoReview
		}

		// coordinates are optional; keep them only when both parse
		latS, lngS := get("lat"), get("lng")
		if latS != "" && lngS != "" {
			lat, errLat := strconv.ParseFloat(latS, 64)
			lng, errLng := strconv.ParseFloat(lngS, 64)
			if errLat == nil && errLng == nil {
				rec.Coordinates = &domain.LatLng{Lat: lat, Lng: lng}
			} else {
				log.Warn().Str("file", path).Int("line", line).Msg("unparseable coordinates, keeping row without them")
			}
		}

		out = append(out, rec)
	}
	return out, nil
}

// Bad numerics coerce to zero rather than dropping the row; a restaurant
// with an unparseable rating still counts toward review totals.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		// some exports write counts as "1,234" or "1234.0"
		clean := strings.ReplaceAll(s, ",", "")
		if f, e := strconv.ParseFloat(clean, 64); e == nil {
			return int(f)
		}
		return 0
	}
	return v
}
