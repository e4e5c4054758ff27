package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/events"
)

type HealthHandler struct {
	Corpus *atomic.Value // []domain.Restaurant
	Hub    *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	corpus, _ := h.Corpus.Load().([]domain.Restaurant)
	writeJSON(w, map[string]any{
		"ok":          true,
		"time":        time.Now().Format(time.RFC3339),
		"restaurants": len(corpus),
		"subscribers": h.Hub.Subscribers(),
	})
}
