package owner

import (
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/staking"
)

type MintResponse struct {
	Heroes       []hero.Attributes `json:"heroes"`
	TxHash       string            `json:"tx_hash"`
	TotalCostSTG int64             `json:"total_cost_stg"`
}

type HeroesResponse struct {
	Items []hero.Attributes `json:"items"`
}

type StakedItem struct {
	staking.StakedHero
	CurrentEarnings int64   `json:"currentEarnings"`
	APY             float64 `json:"apy"`
}

type StakingResponse struct {
	Items []StakedItem `json:"items"`
	Now   int64        `json:"now"`
}

type StakeResponse struct {
	Items []staking.StakedHero `json:"items"`
}

type ClaimResponse struct {
	ClaimedSTG int64 `json:"claimed_stg"`
}

type TxResponse struct {
	Items []ledger.Entry `json:"items"`
	Limit int            `json:"limit"`
}

// HeroFilter narrows a collection listing. Zero fields match everything.
type HeroFilter struct {
	Faction hero.Faction
	Rarity  hero.Rarity
}

func (f HeroFilter) validate() error {
	if f.Faction != "" && !f.Faction.Valid() {
		return ErrInvalidFilter
	}
	if f.Rarity != "" && !f.Rarity.Valid() {
		return ErrInvalidFilter
	}
	return nil
}

func (f HeroFilter) match(h hero.Attributes) bool {
	if f.Faction != "" && h.Faction != f.Faction {
		return false
	}
	return f.Rarity == "" || h.Rarity == f.Rarity
}
