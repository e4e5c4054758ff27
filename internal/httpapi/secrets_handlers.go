package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setGeocoderKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetGeocoderKey(w http.ResponseWriter, r *http.Request) {
	var req setGeocoderKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetGeocoderKey(cfg.Geocoder.KeyringAccount, req.Key); err != nil {
		http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
