// Package staking locks heroes for yield and settles rewards per owner.
//
// Read-modify-write of an owner's records is serialised by an in-process
// keyed mutex. That makes one server process the unit of exclusion: two
// processes sharing a postgres store can interleave a claim and double-pay
// the lifetime total, so run a single hero-server per store.
package staking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hero-staking/internal/chain"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/store"

	"github.com/rs/zerolog/log"
)

// TxRecorder receives one entry per state change.
type TxRecorder interface {
	Record(ctx context.Context, owner string, e ledger.Entry) (ledger.Entry, error)
}

// HistoryRestorer puts an unstaked hero back into the owner's mint history
// if it was trimmed while staked.
type HistoryRestorer interface {
	Restore(ctx context.Context, owner string, h hero.Attributes) error
}

type Option func(*Service)

func WithHistory(r HistoryRestorer) Option {
	return func(s *Service) { s.history = r }
}

func WithRecorder(r TxRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithContract settles each state change on chain before it is persisted.
func WithContract(c chain.Contract) Option {
	return func(s *Service) { s.contract = c }
}

type Service struct {
	store    store.Store
	now      func() time.Time
	recorder TxRecorder
	contract chain.Contract
	history  HistoryRestorer
	locks    store.KeyedMutex

	modelMu sync.RWMutex
	model   RewardModel
}

func NewService(st store.Store, model RewardModel, now func() time.Time, opts ...Option) (*Service, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	s := &Service{store: st, now: now, model: model.clone()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Model() RewardModel {
	s.modelMu.RLock()
	defer s.modelMu.RUnlock()
	return s.model.clone()
}

// SetModel swaps the reward model. Already staked heroes pick up the new
// rates on their next read.
func (s *Service) SetModel(m RewardModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.modelMu.Lock()
	s.model = m.clone()
	s.modelMu.Unlock()
	log.Info().Int64("principal", m.Principal).Msg("reward model updated")
	return nil
}

func (s *Service) StakedHeroes(ctx context.Context, owner string) ([]StakedHero, error) {
	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.reprice(staked, s.Model()), nil
}

func (s *Service) Stake(ctx context.Context, owner string, h hero.Attributes) (StakedHero, error) {
	if h.ID == "" {
		return StakedHero{}, ErrInvalidRequest
	}
	unlock := s.locks.Lock(owner)
	defer unlock()

	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return StakedHero{}, err
	}
	if indexOf(staked, h.ID) >= 0 {
		return StakedHero{}, ErrAlreadyStaked
	}
	ids := tokenIDs([]hero.Attributes{h})
	hash, err := s.settle(ctx, func(c chain.Contract) (chain.Receipt, error) { return c.Stake(ctx, ids) })
	if err != nil {
		return StakedHero{}, err
	}
	sh := s.newStaked(h, s.Model())
	staked = append(staked, sh)
	if err := s.saveStaked(ctx, owner, staked); err != nil {
		return StakedHero{}, err
	}
	log.Info().Str("owner", owner).Str("hero_id", h.ID).Int64("daily_reward", sh.DailyReward).Msg("hero staked")
	s.record(ctx, owner, ledger.Entry{Type: ledger.TxStake, Hash: hash, TokenIDs: ids})
	return sh, nil
}

// StakeMany stakes owned, currently available heroes by id. Either all ids
// are staked or none are.
func (s *Service) StakeMany(ctx context.Context, owner string, ids []string) ([]StakedHero, error) {
	if len(ids) == 0 {
		return nil, ErrInvalidRequest
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, ErrInvalidRequest
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate hero id %s", ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	owned, err := s.loadMinted(ctx, owner)
	if err != nil {
		return nil, err
	}
	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]hero.Attributes, len(owned))
	for _, h := range owned {
		byID[h.ID] = h
	}

	model := s.Model()
	picked := make([]hero.Attributes, 0, len(ids))
	added := make([]StakedHero, 0, len(ids))
	for _, id := range ids {
		if indexOf(staked, id) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyStaked, id)
		}
		h, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrHeroNotFound, id)
		}
		picked = append(picked, h)
		added = append(added, s.newStaked(h, model))
	}
	tokens := tokenIDs(picked)
	hash, err := s.settle(ctx, func(c chain.Contract) (chain.Receipt, error) { return c.Stake(ctx, tokens) })
	if err != nil {
		return nil, err
	}
	if err := s.saveStaked(ctx, owner, append(staked, added...)); err != nil {
		return nil, err
	}
	log.Info().Str("owner", owner).Int("count", len(added)).Msg("heroes staked")
	s.record(ctx, owner, ledger.Entry{Type: ledger.TxStake, Hash: hash, TokenIDs: tokens})
	return added, nil
}

// Unstake settles accrued earnings minus the early-exit penalty. The hero
// becomes available again because it is still in the owner's mint history.
func (s *Service) Unstake(ctx context.Context, owner, heroID string) (UnstakeResult, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return UnstakeResult{}, err
	}
	idx := indexOf(staked, heroID)
	if idx < 0 {
		return UnstakeResult{}, ErrNotFound
	}
	model := s.Model()
	staked = s.reprice(staked, model)
	sh := staked[idx]
	earnings := model.CurrentEarnings(sh, s.now())
	penalty := model.Penalty(earnings)
	net := earnings - penalty
	tokens := tokenIDs([]hero.Attributes{sh.Attributes})
	hash, err := s.settle(ctx, func(c chain.Contract) (chain.Receipt, error) { return c.Unstake(ctx, tokens) })
	if err != nil {
		return UnstakeResult{}, err
	}

	remaining := append(staked[:idx:idx], staked[idx+1:]...)
	if err := s.saveStaked(ctx, owner, remaining); err != nil {
		return UnstakeResult{}, err
	}
	if err := s.credit(ctx, owner, net); err != nil {
		return UnstakeResult{}, err
	}
	if s.history != nil {
		if err := s.history.Restore(ctx, owner, sh.Attributes); err != nil {
			log.Error().Err(err).Str("owner", owner).Str("hero_id", heroID).Msg("restore hero to history failed")
		}
	}
	log.Info().Str("owner", owner).Str("hero_id", heroID).Int64("earnings", net).Int64("penalty", penalty).Msg("hero unstaked")
	s.record(ctx, owner, ledger.Entry{
		Type:      ledger.TxUnstake,
		AmountSTG: net,
		Hash:      hash,
		TokenIDs:  tokens,
		Meta:      map[string]any{"penalty": penalty},
	})
	return UnstakeResult{Hero: sh.Attributes, Earnings: net, Penalty: penalty}, nil
}

// ClaimAll pays out every staked hero's accrual and restarts its clock.
func (s *Service) ClaimAll(ctx context.Context, owner string) (int64, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return 0, err
	}
	if len(staked) == 0 {
		return 0, nil
	}
	hash, err := s.settle(ctx, func(c chain.Contract) (chain.Receipt, error) { return c.ClaimRewards(ctx) })
	if err != nil {
		return 0, err
	}
	model := s.Model()
	now := s.now()
	staked = s.reprice(staked, model)
	var total int64
	for i := range staked {
		earned := model.CurrentEarnings(staked[i], now)
		staked[i].TotalEarned += earned
		staked[i].StakedAt = now.UnixMilli()
		total += earned
	}
	if err := s.saveStaked(ctx, owner, staked); err != nil {
		return 0, err
	}
	if err := s.credit(ctx, owner, total); err != nil {
		return 0, err
	}
	log.Info().Str("owner", owner).Int("heroes", len(staked)).Int64("total", total).Msg("rewards claimed")
	if total > 0 {
		s.record(ctx, owner, ledger.Entry{Type: ledger.TxClaim, AmountSTG: total, Hash: hash})
	}
	return total, nil
}

func (s *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	model := s.Model()
	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	lifetime, err := store.LoadScalar(ctx, s.store, store.Key(owner, store.KeyStakingEarnings))
	if err != nil {
		return Stats{}, err
	}
	staked = s.reprice(staked, model)
	out := Stats{TotalStaked: len(staked), TotalLifetimeEarnings: lifetime}
	var yield float64
	for _, sh := range staked {
		out.TotalDailyRewards += sh.DailyReward
		yield += float64(sh.DailyReward) / float64(model.Principal)
	}
	if len(staked) > 0 {
		out.AverageAPY = yield / float64(len(staked)) * 365 * 100
	}
	return out, nil
}

// AvailableHeroes is the owner's mint history minus everything staked.
func (s *Service) AvailableHeroes(ctx context.Context, owner string) ([]hero.Attributes, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	owned, err := s.loadMinted(ctx, owner)
	if err != nil {
		return nil, err
	}
	staked, err := s.loadStaked(ctx, owner)
	if err != nil {
		return nil, err
	}
	stakedIDs := make(map[string]struct{}, len(staked))
	for _, sh := range staked {
		stakedIDs[sh.ID] = struct{}{}
	}
	out := make([]hero.Attributes, 0, len(owned))
	for _, h := range owned {
		if _, ok := stakedIDs[h.ID]; !ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// CurrentEarnings maps hero id to what it has accrued since its last claim.
func (s *Service) CurrentEarnings(ctx context.Context, owner string) (map[string]int64, error) {
	staked, err := s.StakedHeroes(ctx, owner)
	if err != nil {
		return nil, err
	}
	model := s.Model()
	now := s.now()
	out := make(map[string]int64, len(staked))
	for _, sh := range staked {
		out[sh.ID] = model.CurrentEarnings(sh, now)
	}
	return out, nil
}

func (s *Service) newStaked(h hero.Attributes, model RewardModel) StakedHero {
	return StakedHero{
		Attributes:  h,
		StakedAt:    s.now().UnixMilli(),
		DailyReward: model.DailyReward(h),
		IsStaked:    true,
	}
}

func (s *Service) reprice(staked []StakedHero, model RewardModel) []StakedHero {
	for i := range staked {
		staked[i].DailyReward = model.DailyReward(staked[i].Attributes)
		staked[i].IsStaked = true
	}
	return staked
}

func (s *Service) loadStaked(ctx context.Context, owner string) ([]StakedHero, error) {
	return store.LoadList[StakedHero](ctx, s.store, store.Key(owner, store.KeyStakedHeroes))
}

func (s *Service) saveStaked(ctx context.Context, owner string, staked []StakedHero) error {
	return store.SaveList(ctx, s.store, store.Key(owner, store.KeyStakedHeroes), staked)
}

func (s *Service) loadMinted(ctx context.Context, owner string) ([]hero.Attributes, error) {
	return store.LoadList[hero.Attributes](ctx, s.store, store.Key(owner, store.KeyMintHistory))
}

func (s *Service) credit(ctx context.Context, owner string, amount int64) error {
	key := store.Key(owner, store.KeyStakingEarnings)
	current, err := store.LoadScalar(ctx, s.store, key)
	if err != nil {
		return err
	}
	return store.SaveScalar(ctx, s.store, key, current+float64(amount))
}

// settle returns the tx hash, or "" when no contract is configured.
func (s *Service) settle(ctx context.Context, call func(chain.Contract) (chain.Receipt, error)) (string, error) {
	if s.contract == nil {
		return "", nil
	}
	r, err := call(s.contract)
	if err != nil {
		return "", fmt.Errorf("contract: %w", err)
	}
	return r.TxHash, nil
}

// record never fails the caller; history is display-only.
func (s *Service) record(ctx context.Context, owner string, e ledger.Entry) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Record(ctx, owner, e); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("owner", owner).Str("type", string(e.Type)).Msg("record tx failed")
	}
}

func indexOf(staked []StakedHero, id string) int {
	for i, sh := range staked {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

func tokenIDs(heroes []hero.Attributes) []int64 {
	var out []int64
	for _, h := range heroes {
		if h.TokenID != nil {
			out = append(out, *h.TokenID)
		}
	}
	return out
}
