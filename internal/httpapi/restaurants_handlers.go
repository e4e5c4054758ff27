package httpapi

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"dinescout-engine/internal/domain"
)

type RestaurantsHandler struct {
	Corpus *atomic.Value // []domain.Restaurant
}

// List returns the derived corpus snapshot, optionally truncated by ?limit.
func (h RestaurantsHandler) List(w http.ResponseWriter, r *http.Request) {
	corpus, _ := h.Corpus.Load().([]domain.Restaurant)

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			WriteError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		if n < len(corpus) {
			corpus = corpus[:n]
		}
	}

	if corpus == nil {
		corpus = []domain.Restaurant{}
	}
	writeJSON(w, corpus)
}
