package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	appowner "hero-staking/internal/app/owner"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/mint"
	"hero-staking/internal/staking"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxTxLimit = 100

type OwnerHandlers struct {
	ownerSvc *appowner.Service
}

func NewOwnerHandlers(ownerSvc *appowner.Service) *OwnerHandlers {
	return &OwnerHandlers{ownerSvc: ownerSvc}
}

func (h *OwnerHandlers) Mint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		metricMintTotal.Add(1)
		resp, err := h.ownerSvc.Mint(r.Context(), chi.URLParam(r, "owner"), body.Count)
		if err != nil {
			metricMintErrors.Add(1)
			writeOwnerError(w, r, err)
			return
		}
		metricHeroesMinted.Add(int64(len(resp.Heroes)))
		metricSTGSpent.Add(resp.TotalCostSTG)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Heroes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := appowner.HeroFilter{
			Faction: hero.Faction(strings.ToLower(strings.TrimSpace(q.Get("faction")))),
			Rarity:  hero.Rarity(strings.ToLower(strings.TrimSpace(q.Get("rarity")))),
		}
		resp, err := h.ownerSvc.Heroes(r.Context(), chi.URLParam(r, "owner"), filter)
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Available() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.ownerSvc.Available(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Staking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.ownerSvc.Staking(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.ownerSvc.Stats(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Stake() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HeroIDs []string `json:"hero_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.ownerSvc.Stake(r.Context(), chi.URLParam(r, "owner"), body.HeroIDs)
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		metricStakeTotal.Add(1)
		metricHeroesStaked.Add(int64(len(resp.Items)))
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Unstake() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.ownerSvc.Unstake(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "hero_id"))
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		metricUnstakeTotal.Add(1)
		metricUnstakePenalty.Add(resp.Penalty)
		metricSTGPaid.Add(resp.Earnings)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Claim() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.ownerSvc.Claim(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		metricClaimTotal.Add(1)
		metricSTGPaid.Add(resp.ClaimedSTG)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *OwnerHandlers) Transactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := ParseLimit(r, ledger.DefaultLimit, maxTxLimit)
		resp, err := h.ownerSvc.Transactions(r.Context(), chi.URLParam(r, "owner"), limit)
		if err != nil {
			writeOwnerError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeOwnerError(w http.ResponseWriter, r *http.Request, err error) {
	metricOwnerErrorsTotal.Add(1)
	switch {
	case errors.Is(err, appowner.ErrInvalidOwner):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_owner")
	case errors.Is(err, appowner.ErrInvalidFilter):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_filter")
	case errors.Is(err, mint.ErrInvalidCount):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_count")
	case errors.Is(err, staking.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, staking.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, staking.ErrHeroNotFound):
		WriteHTTPError(w, http.StatusNotFound, "hero_not_found")
	case errors.Is(err, staking.ErrAlreadyStaked):
		WriteHTTPError(w, http.StatusConflict, "already_staked")
	case errors.Is(err, context.DeadlineExceeded):
		WriteHTTPError(w, http.StatusGatewayTimeout, "timeout")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("owner request failed")
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
