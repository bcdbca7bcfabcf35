package public

import (
	"hero-staking/internal/hero"
	"hero-staking/internal/mint"
	"hero-staking/internal/staking"
)

// ModelSource is satisfied by *staking.Service.
type ModelSource interface {
	Model() staking.RewardModel
}

type Service struct {
	tables       hero.Tables
	models       ModelSource
	mintPriceSTG int64
}

func NewService(tables hero.Tables, models ModelSource, mintPriceSTG int64) *Service {
	return &Service{tables: tables, models: models, mintPriceSTG: mintPriceSTG}
}

func (s *Service) Model() *ModelResponse {
	m := s.models.Model()
	resp := &ModelResponse{
		PrincipalSTG:   m.Principal,
		MintPriceSTG:   s.mintPriceSTG,
		PowerRef:       m.PowerRef,
		BoostDivisor:   m.BoostDivisor,
		MinBoost:       m.MinBoost,
		MaxBoost:       m.MaxBoost,
		UnstakePenalty: m.UnstakePenalty,
		Rates:          make([]RateItem, 0, len(hero.Rarities)),
	}
	for _, r := range hero.Rarities {
		ref := hero.Attributes{Rarity: r, Power: int64(m.PowerRef)}
		resp.Rates = append(resp.Rates, RateItem{
			Rarity:         r,
			DailyRatePct:   m.DailyRewardRate(r) * 100,
			ReferenceDaily: m.DailyReward(ref),
			ReferenceAPY:   m.EstimateAPY(ref),
		})
	}
	return resp
}

func (s *Service) Rarities() *RaritiesResponse {
	out := make([]RarityItem, 0, len(hero.Rarities))
	for _, r := range hero.Rarities {
		out = append(out, RarityItem{Rarity: r, RarityConfig: s.tables.Rarity[r]})
	}
	return &RaritiesResponse{Items: out}
}

func (s *Service) Factions() *FactionsResponse {
	out := make([]FactionItem, 0, len(hero.Factions))
	for _, f := range hero.Factions {
		cfg := s.tables.Faction[f]
		out = append(out, FactionItem{
			Faction:     f,
			Name:        cfg.Name,
			Classes:     cfg.Classes,
			Abilities:   cfg.Abilities,
			Backgrounds: cfg.Backgrounds,
		})
	}
	return &FactionsResponse{Items: out}
}

// Quote prices a mint of count heroes without performing it.
func (s *Service) Quote(count int) (*QuoteResponse, error) {
	if count < 1 || count > mint.MaxPerMint {
		return nil, ErrInvalidRequest
	}
	return &QuoteResponse{Count: count, PriceSTG: s.mintPriceSTG, TotalCostSTG: s.mintPriceSTG * int64(count)}, nil
}
