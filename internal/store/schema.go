package store

import (
	"database/sql"
)

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	// Raw review rows exactly as ingested, kept for re-aggregation and
	// cross-run dedup. fingerprint is place_id plus a text digest.
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reviews (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  place_id TEXT NOT NULL,
  restaurant_name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  lat REAL,
  lng REAL,
  rating REAL NOT NULL DEFAULT 0,
  total_ratings INTEGER NOT NULL DEFAULT 0,
  review_text TEXT NOT NULL DEFAULT '',
  compound REAL NOT NULL DEFAULT 0,
  label TEXT NOT NULL DEFAULT '',
  opening_hours TEXT NOT NULL DEFAULT '',
  source_file TEXT NOT NULL DEFAULT '',
  ingested_at TEXT NOT NULL,
  fingerprint TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	// One row per place, the fully derived aggregate. Tag lists are JSON
	// arrays in TEXT columns; '[]' means classified-and-empty, which is
	// distinct from never classified.
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS restaurants (
  place_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  lat REAL,
  lng REAL,
  avg_rating REAL NOT NULL DEFAULT 0,
  total_ratings INTEGER NOT NULL DEFAULT 0,
  total_reviews INTEGER NOT NULL DEFAULT 0,
  avg_sentiment REAL NOT NULL DEFAULT 0,
  positive_reviews INTEGER NOT NULL DEFAULT 0,
  negative_reviews INTEGER NOT NULL DEFAULT 0,
  neutral_reviews INTEGER NOT NULL DEFAULT 0,
  positive_ratio REAL NOT NULL DEFAULT 0,
  negative_ratio REAL NOT NULL DEFAULT 0,
  cuisine_tags TEXT NOT NULL DEFAULT '[]',
  aspect_tags TEXT NOT NULL DEFAULT '[]',
  salient_keywords TEXT NOT NULL DEFAULT '[]',
  all_review_text TEXT NOT NULL DEFAULT '',
  opening_hours TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_reviews_place_id
ON reviews(place_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_fingerprint
ON reviews(fingerprint)
WHERE fingerprint != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_restaurants_total_ratings
ON restaurants(total_ratings);
`); err != nil {
		return err
	}

	// Mark schema v1
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
