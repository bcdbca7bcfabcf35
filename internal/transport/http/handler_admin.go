package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"hero-staking/internal/hero"
	"hero-staking/internal/staking"
	"hero-staking/internal/store"

	"github.com/rs/zerolog/log"
)

type AdminHandlers struct {
	store   store.Store
	staking *staking.Service
}

func NewAdminHandlers(st store.Store, stakingSvc *staking.Service) *AdminHandlers {
	return &AdminHandlers{store: st, staking: stakingSvc}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "store": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "store": "up"})
	}
}

// Model reads or replaces the reward model. A replacement reprices every
// staked hero on its next read.
func (h *AdminHandlers) Model() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(h.staking.Model())
		case http.MethodPut:
			var body staking.RewardModel
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
				return
			}
			if err := h.staking.SetModel(body); err != nil {
				if errors.Is(err, hero.ErrInvalidConfiguration) {
					WriteHTTPError(w, http.StatusBadRequest, "invalid_configuration")
					return
				}
				log.Error().Err(err).Msg("set reward model failed")
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			metricModelUpdates.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		default:
			WriteHTTPError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		}
	}
}
