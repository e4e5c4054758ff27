package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/events"
	"dinescout-engine/internal/ingest"
)

type IngestHandler struct {
	CfgVal       *atomic.Value // config.Config
	Corpus       *atomic.Value // []domain.Restaurant
	IngestStatus *atomic.Value // httpapi.IngestStatus
	Hub          *events.Hub
	RunRebuild   func(ctx context.Context, dir string) (ingest.Stats, []domain.Restaurant, error)
}

func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.IngestStatus.Load().(IngestStatus)
	writeJSON(w, st)
}

type ingestRunReq struct {
	Dir string `json:"dir,omitempty"` // overrides the configured ingest dir
}

// Run kicks off a corpus rebuild in the background. One at a time; a second
// trigger while running is acknowledged with ok=false.
func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req ingestRunReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	st := h.IngestStatus.Load().(IngestStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	dir := req.Dir
	if dir == "" {
		cfg := h.CfgVal.Load().(config.Config)
		dir = cfg.Ingest.Dir
	}

	h.IngestStatus.Store(IngestStatus{
		LastRunAt:   time.Now().Format(time.RFC3339),
		Running:     true,
		LastOkAt:    st.LastOkAt,
		Restaurants: st.Restaurants,
	})

	reqID := RequestIDFrom(r.Context())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		stats, corpus, err := h.RunRebuild(ctx, dir)

		now := time.Now().Format(time.RFC3339)
		next := h.IngestStatus.Load().(IngestStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = stats.RowsAdded
		if err != nil {
			next.LastError = err.Error()
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeIngestFailed, 1, map[string]any{"error": err.Error()}))
		} else {
			next.LastError = ""
			next.LastOkAt = now
			next.Restaurants = stats.Restaurants
			h.Corpus.Store(corpus)
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeCorpusRebuilt, 1, stats))
		}
		h.IngestStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
