package httptransport

import "expvar"

var (
	metricMintTotal        = expvar.NewInt("mint_total")
	metricMintErrors       = expvar.NewInt("mint_errors_total")
	metricHeroesMinted     = expvar.NewInt("heroes_minted_total")
	metricSTGSpent         = expvar.NewInt("stg_spent_total")
	metricStakeTotal       = expvar.NewInt("stake_total")
	metricHeroesStaked     = expvar.NewInt("heroes_staked_total")
	metricUnstakeTotal     = expvar.NewInt("unstake_total")
	metricUnstakePenalty   = expvar.NewInt("unstake_penalty_stg_total")
	metricClaimTotal       = expvar.NewInt("claim_total")
	metricSTGPaid          = expvar.NewInt("stg_paid_total")
	metricOwnerErrorsTotal = expvar.NewInt("owner_request_errors_total")
	metricModelUpdates     = expvar.NewInt("reward_model_updates_total")
)
