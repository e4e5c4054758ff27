package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dinescout-engine/internal/domain"
)

// tagsToJSON encodes a tag list for a TEXT column. A nil or empty slice
// encodes to '[]' so decode always yields a non-nil slice.
func tagsToJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func tagsFromJSON(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	if out == nil {
		out = []string{}
	}
	return out
}

// ReplaceCorpus swaps the restaurants table for a freshly aggregated set in
// one transaction, so readers never observe a half-written corpus.
func ReplaceCorpus(ctx context.Context, db *sql.DB, restaurants []domain.Restaurant) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurants;`); err != nil {
		return fmt.Errorf("clear restaurants: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO restaurants (
  place_id, name, address, lat, lng,
  avg_rating, total_ratings, total_reviews,
  avg_sentiment, positive_reviews, negative_reviews, neutral_reviews,
  positive_ratio, negative_ratio,
  cuisine_tags, aspect_tags, salient_keywords,
  all_review_text, opening_hours, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range restaurants {
		var lat, lng any
		if r.Coords != nil {
			lat, lng = r.Coords.Lat, r.Coords.Lng
		}
		if _, err := stmt.ExecContext(ctx,
			r.PlaceID, r.Name, r.Address, lat, lng,
			r.AvgRating, r.TotalRatings, r.TotalReviews,
			r.AvgSentimentCompound, r.PositiveReviews, r.NegativeReviews, r.NeutralReviews,
			r.PositiveRatio, r.NegativeRatio,
			tagsToJSON(r.CuisineTags), tagsToJSON(r.AspectTags), tagsToJSON(r.SalientKeywords),
			r.AllReviewText, r.OpeningHours, now,
		); err != nil {
			return fmt.Errorf("insert restaurant %s: %w", r.PlaceID, err)
		}
	}

	return tx.Commit()
}

// ListRestaurants loads the whole derived corpus, ordered by place id.
func ListRestaurants(ctx context.Context, db *sql.DB) ([]domain.Restaurant, error) {
	rows, err := db.QueryContext(ctx, `
SELECT place_id, name, address, lat, lng,
       avg_rating, total_ratings, total_reviews,
       avg_sentiment, positive_reviews, negative_reviews, neutral_reviews,
       positive_ratio, negative_ratio,
       cuisine_tags, aspect_tags, salient_keywords,
       all_review_text, opening_hours
FROM restaurants
ORDER BY place_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		var r domain.Restaurant
		var lat, lng sql.NullFloat64
		var cuisine, aspects, salient string
		if err := rows.Scan(
			&r.PlaceID, &r.Name, &r.Address, &lat, &lng,
			&r.AvgRating, &r.TotalRatings, &r.TotalReviews,
			&r.AvgSentimentCompound, &r.PositiveReviews, &r.NegativeReviews, &r.NeutralReviews,
			&r.PositiveRatio, &r.NegativeRatio,
			&cuisine, &aspects, &salient,
			&r.AllReviewText, &r.OpeningHours,
		); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			r.Coords = &domain.LatLng{Lat: lat.Float64, Lng: lng.Float64}
		}
		r.CuisineTags = tagsFromJSON(cuisine)
		r.AspectTags = tagsFromJSON(aspects)
		r.SalientKeywords = tagsFromJSON(salient)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
