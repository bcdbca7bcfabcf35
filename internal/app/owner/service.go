// Package owner exposes one wallet's heroes, stakes and history.
package owner

import (
	"context"
	"regexp"
	"strings"
	"time"

	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/mint"
	"hero-staking/internal/staking"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	handlePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Normalize accepts a 0x wallet address or a plain handle. Addresses are
// lowercased so checksummed and plain forms share state.
func Normalize(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if addressPattern.MatchString(owner) {
		return strings.ToLower(owner), nil
	}
	if handlePattern.MatchString(owner) {
		return owner, nil
	}
	return "", ErrInvalidOwner
}

type Service struct {
	mint    *mint.Service
	staking *staking.Service
	ledger  *ledger.Ledger
	now     func() time.Time
}

func NewService(m *mint.Service, s *staking.Service, l *ledger.Ledger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{mint: m, staking: s, ledger: l, now: now}
}

func (s *Service) Mint(ctx context.Context, owner string, count int) (*MintResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	res, err := s.mint.Mint(ctx, owner, count)
	if err != nil {
		return nil, err
	}
	return &MintResponse{Heroes: res.Heroes, TxHash: res.TxHash, TotalCostSTG: res.TotalCostSTG}, nil
}

// Heroes lists the owner's minted collection, optionally narrowed by
// faction and rarity.
func (s *Service) Heroes(ctx context.Context, owner string, filter HeroFilter) (*HeroesResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}
	history, err := s.mint.History(ctx, owner)
	if err != nil {
		return nil, err
	}
	items := make([]hero.Attributes, 0, len(history))
	for _, h := range history {
		if filter.match(h) {
			items = append(items, h)
		}
	}
	return &HeroesResponse{Items: items}, nil
}

func (s *Service) Available(ctx context.Context, owner string) (*HeroesResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	items, err := s.staking.AvailableHeroes(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &HeroesResponse{Items: items}, nil
}

func (s *Service) Staking(ctx context.Context, owner string) (*StakingResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	staked, err := s.staking.StakedHeroes(ctx, owner)
	if err != nil {
		return nil, err
	}
	model := s.staking.Model()
	now := s.now()
	items := make([]StakedItem, 0, len(staked))
	for _, sh := range staked {
		items = append(items, StakedItem{
			StakedHero:      sh,
			CurrentEarnings: model.CurrentEarnings(sh, now),
			APY:             model.EstimateAPY(sh.Attributes),
		})
	}
	return &StakingResponse{Items: items, Now: now.UnixMilli()}, nil
}

func (s *Service) Stats(ctx context.Context, owner string) (*staking.Stats, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	st, err := s.staking.Stats(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) Stake(ctx context.Context, owner string, heroIDs []string) (*StakeResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	items, err := s.staking.StakeMany(ctx, owner, heroIDs)
	if err != nil {
		return nil, err
	}
	return &StakeResponse{Items: items}, nil
}

func (s *Service) Unstake(ctx context.Context, owner, heroID string) (*staking.UnstakeResult, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	res, err := s.staking.Unstake(ctx, owner, heroID)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) Claim(ctx context.Context, owner string) (*ClaimResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	total, err := s.staking.ClaimAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &ClaimResponse{ClaimedSTG: total}, nil
}

func (s *Service) Transactions(ctx context.Context, owner string, limit int) (*TxResponse, error) {
	owner, err := Normalize(owner)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = ledger.DefaultLimit
	}
	items, err := s.ledger.Recent(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	return &TxResponse{Items: items, Limit: limit}, nil
}
