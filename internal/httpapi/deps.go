package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/events"
	"dinescout-engine/internal/ingest"
	"dinescout-engine/internal/places"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub
	Log zerolog.Logger

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	Corpus       *atomic.Value // stores []domain.Restaurant
	IngestStatus *atomic.Value // stores httpapi.IngestStatus
	ParserVal    *atomic.Value // stores *prefs.Parser, swapped on config PUT

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	OnCfgReload func(config.Config) // rebuilds parser/classifier after a config PUT

	// nil when no geocoding key is configured; recommend degrades
	Geocoder places.Geocoder

	// Rebuild entrypoint (inject for testability)
	RunRebuild func(ctx context.Context, dir string) (ingest.Stats, []domain.Restaurant, error)
}
