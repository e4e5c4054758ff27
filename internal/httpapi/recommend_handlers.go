package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/places"
	"dinescout-engine/internal/prefs"
	"dinescout-engine/internal/rank"
)

// DefaultRadiusM applies when a request resolves a location but names no
// radius.
const DefaultRadiusM = 2000.0

type RecommendHandler struct {
	CfgVal    *atomic.Value // config.Config
	Corpus    *atomic.Value // []domain.Restaurant
	ParserVal *atomic.Value // *prefs.Parser
	Geocoder  places.Geocoder
	Log       zerolog.Logger
}

type recommendRequest struct {
	Query   string   `json:"query"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	RadiusM *float64 `json:"radiusM,omitempty"`
}

type recommendResponse struct {
	Preferences      prefs.PreferenceSet `json:"preferences"`
	LocationResolved bool                `json:"location_resolved"`
	rank.Result
}

func (h RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.Query == "" && req.Lat == nil {
		WriteError(w, r, http.StatusBadRequest, "empty_query", "query is required")
		return
	}

	p := h.ParserVal.Load().(*prefs.Parser).Parse(req.Query)

	// Resolve a user location: explicit coordinates win, then a geocoded
	// area name. Geocoding failure is never a request failure; ranking
	// proceeds without the geographic filter.
	var loc *rank.UserLocation
	resolved := false
	radius := DefaultRadiusM
	if req.RadiusM != nil && *req.RadiusM > 0 {
		radius = *req.RadiusM
	}
	switch {
	case req.Lat != nil && req.Lng != nil:
		loc = &rank.UserLocation{Lat: *req.Lat, Lng: *req.Lng, RadiusM: radius}
		resolved = true
	case p.LocationName != "" && h.Geocoder != nil:
		gctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		pt, err := h.Geocoder.Geocode(gctx, p.LocationName)
		if err != nil {
			h.Log.Warn().Str("location", p.LocationName).Err(err).Msg("geocode failed, ranking without radius filter")
		} else {
			loc = &rank.UserLocation{Lat: pt.Lat, Lng: pt.Lng, RadiusM: radius}
			resolved = true
		}
	}

	corpus, _ := h.Corpus.Load().([]domain.Restaurant)
	cfg := h.CfgVal.Load().(config.Config)

	res := rank.Rank(corpus, p, rankConfig(cfg), loc)

	writeJSON(w, recommendResponse{
		Preferences:      p,
		LocationResolved: resolved,
		Result:           res,
	})
}

func rankConfig(cfg config.Config) rank.Config {
	return rank.Config{
		MinRatingsThreshold: cfg.Scoring.MinRatingsThreshold,
		BayesConfidence:     cfg.Scoring.BayesConfidence,
		SentimentWeight:     cfg.Scoring.SentimentWeight,
		KeywordBonusPerHit:  cfg.Scoring.KeywordBonusPerHit,
		KeywordBonusCap:     cfg.Scoring.KeywordBonusCap,
		TopN:                cfg.Scoring.TopN,
		DefaultMinRating:    cfg.Scoring.DefaultMinRating,
	}
}
