package staking

import "hero-staking/internal/hero"

// StakedHero is a hero locked for yield. DailyReward is recomputed from the
// active model on every read; the persisted value is informational.
type StakedHero struct {
	hero.Attributes
	StakedAt    int64 `json:"stakedAt"`
	DailyReward int64 `json:"dailyReward"`
	TotalEarned int64 `json:"totalEarned"`
	IsStaked    bool  `json:"isStaked"`
}

type Stats struct {
	TotalStaked           int     `json:"totalStaked"`
	TotalDailyRewards     int64   `json:"totalDailyRewards"`
	TotalLifetimeEarnings float64 `json:"totalLifetimeEarnings"`
	AverageAPY            float64 `json:"averageAPY"`
}

// UnstakeResult carries the net earnings credited and the penalty withheld.
type UnstakeResult struct {
	Hero     hero.Attributes `json:"hero"`
	Earnings int64           `json:"earnings"`
	Penalty  int64           `json:"penalty"`
}
