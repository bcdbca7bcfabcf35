// Command dumb-bot drives an owner through mint, stake, claim and unstake
// rounds against a running hero-server.
package main

import (
	"context"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hero-staking/internal/config"
	"hero-staking/internal/logging"

	"github.com/rs/zerolog/log"
)

type heroRef struct {
	ID     string `json:"id"`
	Rarity string `json:"rarity"`
	Power  int64  `json:"power"`
}

type heroList struct {
	Items []heroRef `json:"items"`
}

type stats struct {
	TotalStaked           int     `json:"totalStaked"`
	TotalDailyRewards     int64   `json:"totalDailyRewards"`
	TotalLifetimeEarnings float64 `json:"totalLifetimeEarnings"`
	AverageAPY            float64 `json:"averageAPY"`
}

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logCfg.Service = "dumb-bot"
	logCloser, err := logging.Init(logCfg)
	if err != nil {
		panic(err)
	}
	defer logCloser.Close()

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bot{
		client: newAPIClient(cfg.BaseURL, 0),
		owner:  cfg.Owner,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i := 0; i < cfg.Rounds; i++ {
		if err := b.round(ctx, cfg.MintEach); err != nil {
			log.Error().Err(err).Int("round", i).Msg("round failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.Interval):
		}
	}
}

type bot struct {
	client *apiClient
	owner  string
	rnd    *rand.Rand
}

// round mints, stakes everything available, claims, then unstakes one
// staked hero at random.
func (b *bot) round(ctx context.Context, mintEach int) error {
	base := "/api/owners/" + url.PathEscape(b.owner)

	if mintEach > 0 {
		if err := b.client.post(ctx, base+"/mint", map[string]int{"count": mintEach}, nil); err != nil {
			return err
		}
	}

	var avail heroList
	if err := b.client.get(ctx, base+"/heroes/available", &avail); err != nil {
		return err
	}
	if len(avail.Items) > 0 {
		ids := make([]string, 0, len(avail.Items))
		for _, h := range avail.Items {
			ids = append(ids, h.ID)
		}
		if err := b.client.post(ctx, base+"/staking/stake", map[string][]string{"hero_ids": ids}, nil); err != nil {
			return err
		}
	}

	var claim struct {
		ClaimedSTG int64 `json:"claimed_stg"`
	}
	if err := b.client.post(ctx, base+"/staking/claim", nil, &claim); err != nil {
		return err
	}

	var staked heroList
	if err := b.client.get(ctx, base+"/staking", &staked); err != nil {
		return err
	}
	if len(staked.Items) > 0 {
		pick := staked.Items[b.rnd.Intn(len(staked.Items))]
		if err := b.client.post(ctx, base+"/staking/"+url.PathEscape(pick.ID)+"/unstake", nil, nil); err != nil {
			return err
		}
	}

	var st stats
	if err := b.client.get(ctx, base+"/staking/stats", &st); err != nil {
		return err
	}
	log.Info().
		Str("owner", b.owner).
		Int64("claimed", claim.ClaimedSTG).
		Int("staked", st.TotalStaked).
		Int64("daily", st.TotalDailyRewards).
		Float64("lifetime", st.TotalLifetimeEarnings).
		Float64("apy", st.AverageAPY).
		Msg("round done")
	return nil
}
