// Package chain simulates the hero NFT and staking contracts.
package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCount = errors.New("invalid_count")

const maxTokenID = 10_000

type Receipt struct {
	TxHash   string  `json:"txHash"`
	TokenIDs []int64 `json:"tokenIds,omitempty"`
}

// Contract is the on-chain surface the services depend on.
type Contract interface {
	MintHeroes(ctx context.Context, count int) (Receipt, error)
	Stake(ctx context.Context, tokenIDs []int64) (Receipt, error)
	Unstake(ctx context.Context, tokenIDs []int64) (Receipt, error)
	ClaimRewards(ctx context.Context) (Receipt, error)
}

// Simulator settles every call locally after an optional delay. Token ids
// are random and may repeat, as on the mocked contract.
type Simulator struct {
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(rng *rand.Rand, latency time.Duration) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng, latency: latency}
}

func (s *Simulator) MintHeroes(ctx context.Context, count int) (Receipt, error) {
	if count < 1 {
		return Receipt{}, ErrInvalidCount
	}
	if err := s.wait(ctx); err != nil {
		return Receipt{}, err
	}
	s.mu.Lock()
	ids := make([]int64, count)
	for i := range ids {
		ids[i] = s.rng.Int63n(maxTokenID) + 1
	}
	hash := s.hashLocked()
	s.mu.Unlock()
	log.Debug().Int("count", count).Str("tx_hash", hash).Msg("simulated mint")
	return Receipt{TxHash: hash, TokenIDs: ids}, nil
}

func (s *Simulator) Stake(ctx context.Context, tokenIDs []int64) (Receipt, error) {
	return s.settle(ctx, "stake", tokenIDs)
}

func (s *Simulator) Unstake(ctx context.Context, tokenIDs []int64) (Receipt, error) {
	return s.settle(ctx, "unstake", tokenIDs)
}

func (s *Simulator) ClaimRewards(ctx context.Context) (Receipt, error) {
	return s.settle(ctx, "claim", nil)
}

func (s *Simulator) settle(ctx context.Context, op string, tokenIDs []int64) (Receipt, error) {
	if err := s.wait(ctx); err != nil {
		return Receipt{}, err
	}
	s.mu.Lock()
	hash := s.hashLocked()
	s.mu.Unlock()
	log.Debug().Str("op", op).Int("tokens", len(tokenIDs)).Str("tx_hash", hash).Msg("simulated tx")
	return Receipt{TxHash: hash, TokenIDs: tokenIDs}, nil
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) hashLocked() string {
	var b [32]byte
	_, _ = s.rng.Read(b[:])
	return "0x" + hex.EncodeToString(b[:])
}
