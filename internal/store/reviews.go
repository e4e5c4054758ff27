package store

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"dinescout-engine/internal/domain"
)

// Fingerprint identifies a review row across ingest runs so re-ingesting
// an overlapping export does not double-count anything.
func Fingerprint(rec domain.ReviewRecord) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%.4f|%s", rec.PlaceID, rec.RestaurantName, rec.Rating, rec.ReviewText)
	return hex.EncodeToString(h.Sum(nil))
}

// InsertReviewIgnore stores one raw review row, skipping rows whose
// fingerprint is already present. Returns whether the row was new.
func InsertReviewIgnore(ctx context.Context, db *sql.DB, rec domain.ReviewRecord, sourceFile string) (added bool, err error) {
	var lat, lng any
	if rec.Coordinates != nil {
		lat, lng = rec.Coordinates.Lat, rec.Coordinates.Lng
	}
	// relies on unique index on fingerprint WHERE fingerprint != ''
	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO reviews (
  place_id, restaurant_name, address, lat, lng,
  rating, total_ratings, review_text, compound, label,
  opening_hours, source_file, ingested_at, fingerprint
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		rec.PlaceID, rec.RestaurantName, rec.Address, lat, lng,
		rec.Rating, rec.TotalRatings, rec.ReviewText, rec.Compound, string(rec.Label),
		rec.OpeningHours, sourceFile, time.Now().UTC().Format(time.RFC3339), Fingerprint(rec),
	)
	if err != nil {
		return false, fmt.Errorf("insert review: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// ListReviews loads every stored review row for re-aggregation.
func ListReviews(ctx context.Context, db *sql.DB) ([]domain.ReviewRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT place_id, restaurant_name, address, lat, lng,
       rating, total_ratings, review_text, compound, label, opening_hours
FROM reviews
ORDER BY place_id, id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewRecord
	for rows.Next() {
		var rec domain.ReviewRecord
		var lat, lng sql.NullFloat64
		var label string
		if err := rows.Scan(
			&rec.PlaceID, &rec.RestaurantName, &rec.Address, &lat, &lng,
			&rec.Rating, &rec.TotalRatings, &rec.ReviewText, &rec.Compound, &label,
			&rec.OpeningHours,
		); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			rec.Coordinates = &domain.LatLng{Lat: lat.Float64, Lng: lng.Float64}
		}
		rec.Label = domain.SentimentLabel(label)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountReviews is used for the rebuild event payload.
func CountReviews(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews;`).Scan(&n)
	return n, err
}
