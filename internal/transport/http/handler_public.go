package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apppublic "hero-staking/internal/app/public"
)

type PublicHandlers struct {
	publicSvc *apppublic.Service
}

func NewPublicHandlers(publicSvc *apppublic.Service) *PublicHandlers {
	return &PublicHandlers{publicSvc: publicSvc}
}

func (h *PublicHandlers) Model() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(h.publicSvc.Model())
	}
}

func (h *PublicHandlers) Rarities() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(h.publicSvc.Rarities())
	}
}

func (h *PublicHandlers) Factions() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(h.publicSvc.Factions())
	}
}

func (h *PublicHandlers) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := 1
		if v := r.URL.Query().Get("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			count = n
		}
		resp, err := h.publicSvc.Quote(count)
		if err != nil {
			if errors.Is(err, apppublic.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
