package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{Corpus: d.Corpus, Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Recommendations
	rh := RecommendHandler{
		CfgVal:    d.CfgVal,
		Corpus:    d.Corpus,
		ParserVal: d.ParserVal,
		Geocoder:  d.Geocoder,
		Log:       d.Log,
	}
	mux.HandleFunc("/recommend", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Recommend,
	}))

	// Corpus
	ch := RestaurantsHandler{Corpus: d.Corpus}
	mux.HandleFunc("/restaurants", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.List,
	}))

	// Ingest
	ih := IngestHandler{
		CfgVal:       d.CfgVal,
		Corpus:       d.Corpus,
		IngestStatus: d.IngestStatus,
		Hub:          d.Hub,
		RunRebuild:   d.RunRebuild,
	}
	mux.HandleFunc("/ingest/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))
	mux.HandleFunc("/ingest", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))

	// Config
	cfgh := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		OnReload:    d.OnCfgReload,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Get,
		http.MethodPut: cfgh.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/geocoder", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetGeocoderKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// DB maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	return mux
}
