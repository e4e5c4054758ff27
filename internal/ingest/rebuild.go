package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dinescout-engine/internal/aggregate"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/salience"
	"dinescout-engine/internal/store"
)

// Stats summarizes one rebuild pass.
type Stats struct {
	Files       int `json:"files"`
	RowsRead    int `json:"rowsRead"`
	RowsAdded   int `json:"rowsAdded"`
	Restaurants int `json:"restaurants"`
}

// Pipeline bundles the derivation stages. A config reload installs a fresh
// pair with SetPipeline, so a rebuild sees either the old tables or the new
// ones, never a mix.
type Pipeline struct {
	Agg      *aggregate.Aggregator
	Salience *salience.Extractor
}

// Rebuilder runs the ingest-aggregate-persist pipeline. OnRebuilt, when
// set, fires after a successful corpus swap.
type Rebuilder struct {
	DB        *sql.DB
	LockPath  string
	Log       zerolog.Logger
	OnRebuilt func(Stats)

	pipeline atomic.Value // stores Pipeline
}

// SetPipeline installs the derivation stages. Safe to call while a rebuild
// is in flight; the running rebuild keeps the snapshot it already loaded.
func (rb *Rebuilder) SetPipeline(p Pipeline) {
	rb.pipeline.Store(p)
}

// Rebuild scans dir for CSV exports, stores any rows not seen before, then
// re-derives the whole restaurant corpus from the stored review set and
// swaps it in. A file lock serializes rebuilds across processes sharing a
// data dir; scheduled and manually triggered rebuilds queue behind it.
func (rb *Rebuilder) Rebuild(ctx context.Context, dir string) (Stats, []domain.Restaurant, error) {
	var stats Stats

	pl, ok := rb.pipeline.Load().(Pipeline)
	if !ok {
		return stats, nil, fmt.Errorf("no derivation pipeline installed")
	}

	lock := flock.New(rb.LockPath)
	if err := lock.Lock(); err != nil {
		return stats, nil, fmt.Errorf("acquire rebuild lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return stats, nil, err
	}
	sort.Strings(files)
	stats.Files = len(files)

	// parse files concurrently; a broken file is logged and skipped, it
	// must not poison the rest of the batch
	var mu sync.Mutex
	type parsed struct {
		file string
		rows []domain.ReviewRecord
	}
	var batches []parsed

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := LoadFile(file, rb.Log)
			if err != nil {
				rb.Log.Error().Str("file", file).Err(err).Msg("skipping unreadable export")
				return nil
			}
			mu.Lock()
			batches = append(batches, parsed{file: file, rows: rows})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, nil, err
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].file < batches[j].file })

	// inserts stay sequential, sqlite has one writer anyway
	for _, b := range batches {
		for _, rec := range b.rows {
			stats.RowsRead++
			added, err := store.InsertReviewIgnore(ctx, rb.DB, rec, filepath.Base(b.file))
			if err != nil {
				return stats, nil, err
			}
			if added {
				stats.RowsAdded++
			}
		}
	}

	reviews, err := store.ListReviews(ctx, rb.DB)
	if err != nil {
		return stats, nil, err
	}

	start := time.Now()
	restaurants := pl.Agg.Aggregate(reviews)

	docs := make([]string, len(restaurants))
	for i := range restaurants {
		docs[i] = restaurants[i].AllReviewText
	}
	for i, terms := range pl.Salience.Extract(docs) {
		restaurants[i].SalientKeywords = terms
	}

	if err := store.ReplaceCorpus(ctx, rb.DB, restaurants); err != nil {
		return stats, nil, err
	}
	stats.Restaurants = len(restaurants)

	rb.Log.Info().
		Int("files", stats.Files).
		Int("rows_read", stats.RowsRead).
		Int("rows_added", stats.RowsAdded).
		Int("restaurants", stats.Restaurants).
		Dur("derive", time.Since(start)).
		Msg("corpus rebuilt")

	if rb.OnRebuilt != nil {
		rb.OnRebuilt(stats)
	}
	return stats, restaurants, nil
}
