package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"dinescout-engine/internal/aggregate"
	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/events"
	"dinescout-engine/internal/httpapi"
	"dinescout-engine/internal/ingest"
	"dinescout-engine/internal/places"
	"dinescout-engine/internal/prefs"
	"dinescout-engine/internal/salience"
	"dinescout-engine/internal/scheduler"
	"dinescout-engine/internal/secrets"
	"dinescout-engine/internal/store"
	"dinescout-engine/internal/tagging"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("DINESCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		// optional area gazetteer overlay next to the config
		if err := config.OverlayAreas(&cfg, filepath.Join(dataDir, "areas.yml")); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", userCfgPath, err)
		os.Exit(1)
	}
	cfgVal.Store(cfg)

	log := newLogger(cfg)

	db, err := store.Open(filepath.Join(dataDir, "dinescout.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// Derivation pipeline. Reinstalled on config PUT so edited tag tables
	// take effect on the next rebuild, not the next restart.
	rebuilder := &ingest.Rebuilder{
		DB:       db.Pool,
		LockPath: filepath.Join(dataDir, "rebuild.lock"),
		Log:      log,
	}
	rebuilder.SetPipeline(derivationPipeline(cfg))

	var parserVal atomic.Value // stores *prefs.Parser
	parserVal.Store(prefs.New(cfg))

	var corpusVal atomic.Value // stores []domain.Restaurant
	if restaurants, err := store.ListRestaurants(context.Background(), db.Pool); err != nil {
		log.Warn().Err(err).Msg("load corpus snapshot")
		corpusVal.Store([]domain.Restaurant{})
	} else {
		corpusVal.Store(restaurants)
		log.Info().Int("restaurants", len(restaurants)).Msg("corpus snapshot loaded")
	}

	var ingestStatus atomic.Value
	ingestStatus.Store(httpapi.IngestStatus{})

	hub := events.NewHub()

	geocoder := newGeocoder(cfg, log)

	deps := httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		Log:          log,
		CfgVal:       &cfgVal,
		Corpus:       &corpusVal,
		IngestStatus: &ingestStatus,
		ParserVal:    &parserVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		OnCfgReload: func(next config.Config) {
			parserVal.Store(prefs.New(next))
			rebuilder.SetPipeline(derivationPipeline(next))
		},
		Geocoder:   geocoder,
		RunRebuild: rebuilder.Rebuild,
	}

	// Periodic rescan of the ingest dir picks up new review exports.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Ingest.RescanSeconds > 0 {
		interval := time.Duration(cfg.Ingest.RescanSeconds) * time.Second
		go scheduler.Every(ctx, interval, "rescan", log, func(tctx context.Context) error {
			cur := cfgVal.Load().(config.Config)
			stats, restaurants, err := rebuilder.Rebuild(tctx, cur.Ingest.Dir)
			if err != nil {
				hub.Publish(events.MakeEvent("", events.TypeIngestFailed, 1, map[string]any{"error": err.Error()}))
				return err
			}
			corpusVal.Store(restaurants)
			hub.Publish(events.MakeEvent("", events.TypeCorpusRebuilt, 1, stats))
			return nil
		})
	}

	mux := httpapi.NewMux(deps)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen")
	}
	log.Info().Str("addr", "http://"+addr).Msg("engine listening")

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover(log),
		httpapi.AccessLog(log),
		httpapi.Cors,
	)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	attachShutdown(mux, srv, log)

	log.Fatal().Err(srv.Serve(ln)).Msg("server stopped")
}

func derivationPipeline(cfg config.Config) ingest.Pipeline {
	return ingest.Pipeline{
		Agg:      aggregate.New(tagging.New(cfg)),
		Salience: salience.New(cfg.Salience.MaxTermsPerDoc, cfg.Salience.VocabularyCap),
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.App.LogFormat == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

// newGeocoder returns nil when geocoding is disabled or no key is
// configured; recommendations then skip the radius filter.
func newGeocoder(cfg config.Config, log zerolog.Logger) places.Geocoder {
	if !cfg.Geocoder.Enabled {
		return nil
	}
	key, err := secrets.GetGeocoderKey(cfg.Geocoder.KeyringAccount, cfg.Geocoder.APIKeyEnv)
	if err != nil {
		log.Warn().Err(err).Msg("geocoding disabled")
		return nil
	}
	return places.New(places.Config{
		BaseURL:    cfg.Geocoder.BaseURL,
		APIKey:     key,
		Timeout:    time.Duration(cfg.Geocoder.TimeoutSeconds) * time.Second,
		ReqPerSec:  cfg.Geocoder.ReqPerSec,
		Burst:      cfg.Geocoder.Burst,
		MaxRetries: cfg.Geocoder.MaxRetries,
	}, log)
}
