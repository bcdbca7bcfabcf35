package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	appowner "hero-staking/internal/app/owner"
	apppublic "hero-staking/internal/app/public"
	"hero-staking/internal/chain"
	"hero-staking/internal/config"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/migrate"
	"hero-staking/internal/mint"
	"hero-staking/internal/staking"
	"hero-staking/internal/store"
	"hero-staking/internal/store/pebbledb"
	"hero-staking/internal/store/postgres"
	httptransport "hero-staking/internal/transport/http"
	"hero-staking/internal/txpush"
)

func openStore(ctx context.Context, cfg config.ServerConfig) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StorePebble:
		st, err := pebbledb.Open(cfg.PebbleDir)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.StorePostgres:
		if err := migrate.Up(ctx, cfg.PostgresDSN); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		st, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func buildServices(st store.Store, cfg config.ServerConfig, now func() time.Time) (httptransport.Services, *txpush.Manager, error) {
	gen, err := hero.NewGenerator(hero.DefaultTables(), hero.NewSeededSource(cfg.RNGSeed), now)
	if err != nil {
		return httptransport.Services{}, nil, err
	}
	pushCfg, err := txpush.ConfigFromServer(cfg)
	if err != nil {
		return httptransport.Services{}, nil, err
	}
	pusher := txpush.NewManager(pushCfg)
	var chainRNG *rand.Rand
	if cfg.RNGSeed != 0 {
		chainRNG = rand.New(rand.NewSource(cfg.RNGSeed + 1))
	}
	contract := chain.NewSimulator(chainRNG, cfg.ChainLatency)

	led := ledger.New(st, now)
	led.Subscribe(pusher.Publish)
	mintSvc := mint.NewService(gen, contract, st, led, cfg.MintPriceSTG)
	stakingSvc, err := staking.NewService(st, staking.DefaultRewardModel(), now,
		staking.WithRecorder(led),
		staking.WithContract(contract),
		staking.WithHistory(mintSvc))
	if err != nil {
		return httptransport.Services{}, nil, err
	}

	return httptransport.Services{
		Store:   st,
		Public:  apppublic.NewService(gen.Tables(), stakingSvc, cfg.MintPriceSTG),
		Owner:   appowner.NewService(mintSvc, stakingSvc, led, now),
		Staking: stakingSvc,
	}, pusher, nil
}
