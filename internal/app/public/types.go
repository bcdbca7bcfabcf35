package public

import "hero-staking/internal/hero"

type ModelResponse struct {
	PrincipalSTG   int64      `json:"principal_stg"`
	MintPriceSTG   int64      `json:"mint_price_stg"`
	PowerRef       float64    `json:"power_ref"`
	BoostDivisor   float64    `json:"boost_divisor"`
	MinBoost       float64    `json:"min_boost"`
	MaxBoost       float64    `json:"max_boost"`
	UnstakePenalty float64    `json:"unstake_penalty"`
	Rates          []RateItem `json:"rates"`
}

// RateItem shows a tier's yield for a hero at the reference power.
type RateItem struct {
	Rarity         hero.Rarity `json:"rarity"`
	DailyRatePct   float64     `json:"daily_rate_pct"`
	ReferenceDaily int64       `json:"reference_daily_stg"`
	ReferenceAPY   float64     `json:"reference_apy_pct"`
}

type RaritiesResponse struct {
	Items []RarityItem `json:"items"`
}

type RarityItem struct {
	Rarity hero.Rarity `json:"rarity"`
	hero.RarityConfig
}

type FactionsResponse struct {
	Items []FactionItem `json:"items"`
}

type FactionItem struct {
	Faction     hero.Faction `json:"faction"`
	Name        string       `json:"name"`
	Classes     []string     `json:"classes"`
	Abilities   []string     `json:"abilities"`
	Backgrounds []string     `json:"backgrounds"`
}

type QuoteResponse struct {
	Count        int   `json:"count"`
	PriceSTG     int64 `json:"price_stg"`
	TotalCostSTG int64 `json:"total_cost_stg"`
}
