package staking

import (
	"fmt"
	"math"
	"time"

	"hero-staking/internal/hero"
)

const msPerDay = float64(24 * time.Hour / time.Millisecond)

// RewardModel prices staking yield. Every hero is assumed to have cost
// Principal regardless of what was paid to mint it.
type RewardModel struct {
	Principal      int64                   `json:"principal"`
	Rates          map[hero.Rarity]float64 `json:"rates"`
	PowerRef       float64                 `json:"powerRef"`
	BoostDivisor   float64                 `json:"boostDivisor"`
	MinBoost       float64                 `json:"minBoost"`
	MaxBoost       float64                 `json:"maxBoost"`
	UnstakePenalty float64                 `json:"unstakePenalty"`
}

func DefaultRewardModel() RewardModel {
	return RewardModel{
		Principal: 2_000_000,
		Rates: map[hero.Rarity]float64{
			hero.RarityCommon:    0.08,
			hero.RarityRare:      0.12,
			hero.RarityEpic:      0.16,
			hero.RarityLegendary: 0.22,
			hero.RarityMythic:    0.28,
		},
		PowerRef:       800,
		BoostDivisor:   1600,
		MinBoost:       -0.20,
		MaxBoost:       0.50,
		UnstakePenalty: 0.10,
	}
}

func (m RewardModel) Validate() error {
	if m.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", hero.ErrInvalidConfiguration)
	}
	for _, r := range hero.Rarities {
		rate, ok := m.Rates[r]
		if !ok {
			return fmt.Errorf("%w: no daily rate for rarity %s", hero.ErrInvalidConfiguration, r)
		}
		if rate < 0 {
			return fmt.Errorf("%w: negative daily rate for rarity %s", hero.ErrInvalidConfiguration, r)
		}
	}
	for r := range m.Rates {
		if !r.Valid() {
			return fmt.Errorf("%w: daily rate for unknown rarity %q", hero.ErrInvalidConfiguration, r)
		}
	}
	if m.BoostDivisor == 0 {
		return fmt.Errorf("%w: boost divisor is zero", hero.ErrInvalidConfiguration)
	}
	if m.MinBoost > m.MaxBoost {
		return fmt.Errorf("%w: min boost %v above max boost %v", hero.ErrInvalidConfiguration, m.MinBoost, m.MaxBoost)
	}
	if m.MinBoost <= -1 {
		return fmt.Errorf("%w: min boost %v would zero out rewards", hero.ErrInvalidConfiguration, m.MinBoost)
	}
	if m.UnstakePenalty < 0 || m.UnstakePenalty > 1 {
		return fmt.Errorf("%w: unstake penalty %v outside [0,1]", hero.ErrInvalidConfiguration, m.UnstakePenalty)
	}
	return nil
}

// DailyRewardRate falls back to the common rate for rarities the model does
// not know.
func (m RewardModel) DailyRewardRate(r hero.Rarity) float64 {
	if rate, ok := m.Rates[r]; ok {
		return rate
	}
	return m.Rates[hero.RarityCommon]
}

func (m RewardModel) PowerBoostFactor(power int64) float64 {
	raw := (float64(power) - m.PowerRef) / m.BoostDivisor
	return 1 + math.Max(m.MinBoost, math.Min(m.MaxBoost, raw))
}

func (m RewardModel) DailyReward(h hero.Attributes) int64 {
	return int64(math.Floor(float64(m.Principal) * m.DailyRewardRate(h.Rarity) * m.PowerBoostFactor(h.Power)))
}

// EstimateAPY is the annualised percentage yield against Principal.
func (m RewardModel) EstimateAPY(h hero.Attributes) float64 {
	return float64(m.DailyReward(h)) / float64(m.Principal) * 365 * 100
}

// CurrentEarnings accrues linearly over fractional days and truncates only
// at read time. A stake timestamp in the future accrues nothing.
func (m RewardModel) CurrentEarnings(s StakedHero, now time.Time) int64 {
	elapsed := now.UnixMilli() - s.StakedAt
	if elapsed <= 0 {
		return 0
	}
	days := float64(elapsed) / msPerDay
	return int64(math.Floor(days * float64(s.DailyReward)))
}

func (m RewardModel) Penalty(earnings int64) int64 {
	return int64(math.Floor(float64(earnings) * m.UnstakePenalty))
}

func (m RewardModel) clone() RewardModel {
	rates := make(map[hero.Rarity]float64, len(m.Rates))
	for k, v := range m.Rates {
		rates[k] = v
	}
	m.Rates = rates
	return m
}
