// Package mint runs the hero minting flow for an owner.
package mint

import (
	"context"
	"errors"
	"fmt"

	"hero-staking/internal/chain"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/store"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCount = errors.New("invalid_count")

const (
	MaxPerMint     = 10
	maxHistorySize = 50
)

type Recorder interface {
	RecordMint(ctx context.Context, owner string, totalCostSTG int64, tokenIDs []int64, hash string) (ledger.Entry, error)
}

type Result struct {
	Heroes       []hero.Attributes `json:"heroes"`
	TxHash       string            `json:"txHash"`
	TotalCostSTG int64             `json:"totalCostSTG"`
}

type Service struct {
	gen      *hero.Generator
	contract chain.Contract
	store    store.Store
	recorder Recorder
	priceSTG int64
	locks    store.KeyedMutex
}

func NewService(gen *hero.Generator, contract chain.Contract, st store.Store, recorder Recorder, priceSTG int64) *Service {
	return &Service{gen: gen, contract: contract, store: st, recorder: recorder, priceSTG: priceSTG}
}

func (s *Service) PriceSTG() int64 { return s.priceSTG }

// Mint generates count heroes, settles them on chain and adds them to the
// front of the owner's history, which keeps the latest 50 plus any older
// hero that is still staked.
func (s *Service) Mint(ctx context.Context, owner string, count int) (Result, error) {
	if count < 1 || count > MaxPerMint {
		return Result{}, ErrInvalidCount
	}
	heroes := s.gen.GenerateMany(count)
	receipt, err := s.contract.MintHeroes(ctx, count)
	if err != nil {
		return Result{}, fmt.Errorf("mint heroes: %w", err)
	}
	for i := range heroes {
		if i < len(receipt.TokenIDs) {
			tok := receipt.TokenIDs[i]
			heroes[i].TokenID = &tok
		}
	}

	if err := s.prepend(ctx, owner, heroes); err != nil {
		return Result{}, err
	}
	total := s.priceSTG * int64(count)
	if s.recorder != nil {
		if _, err := s.recorder.RecordMint(ctx, owner, total, receipt.TokenIDs, receipt.TxHash); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("record mint tx failed")
		}
	}
	log.Info().Str("owner", owner).Int("count", count).Str("tx_hash", receipt.TxHash).Int64("cost_stg", total).Msg("heroes minted")
	return Result{Heroes: heroes, TxHash: receipt.TxHash, TotalCostSTG: total}, nil
}

func (s *Service) History(ctx context.Context, owner string) ([]hero.Attributes, error) {
	return store.LoadList[hero.Attributes](ctx, s.store, store.Key(owner, store.KeyMintHistory))
}

func (s *Service) prepend(ctx context.Context, owner string, heroes []hero.Attributes) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	key := store.Key(owner, store.KeyMintHistory)
	history, err := store.LoadList[hero.Attributes](ctx, s.store, key)
	if err != nil {
		return err
	}
	next := make([]hero.Attributes, 0, len(heroes)+len(history))
	next = append(next, heroes...)
	next = append(next, history...)
	if len(next) > maxHistorySize {
		staked, err := s.stakedIDs(ctx, owner)
		if err != nil {
			return err
		}
		next = trimHistory(next, staked)
	}
	return store.SaveList(ctx, s.store, key, next)
}

// Restore appends h to the owner's history when it is missing, so a hero
// that was trimmed while staked is owned again once it comes back.
func (s *Service) Restore(ctx context.Context, owner string, h hero.Attributes) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	key := store.Key(owner, store.KeyMintHistory)
	history, err := store.LoadList[hero.Attributes](ctx, s.store, key)
	if err != nil {
		return err
	}
	for _, have := range history {
		if have.ID == h.ID {
			return nil
		}
	}
	log.Debug().Str("owner", owner).Str("hero_id", h.ID).Msg("hero restored to history")
	return store.SaveList(ctx, s.store, key, append(history, h))
}

// stakedRef reads only the id out of a staked-hero record.
type stakedRef struct {
	ID string `json:"id"`
}

func (s *Service) stakedIDs(ctx context.Context, owner string) (map[string]struct{}, error) {
	refs, err := store.LoadList[stakedRef](ctx, s.store, store.Key(owner, store.KeyStakedHeroes))
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		out[r.ID] = struct{}{}
	}
	return out, nil
}

// trimHistory keeps the newest maxHistorySize entries and every older entry
// whose id is in keep.
func trimHistory(list []hero.Attributes, keep map[string]struct{}) []hero.Attributes {
	out := make([]hero.Attributes, 0, maxHistorySize)
	for i, h := range list {
		if i < maxHistorySize {
			out = append(out, h)
			continue
		}
		if _, ok := keep[h.ID]; ok {
			out = append(out, h)
		}
	}
	return out
}
