package mint

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"hero-staking/internal/chain"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/staking"
	"hero-staking/internal/store"

	"github.com/stretchr/testify/require"
)

const owner = "0x00000000000000000000000000000000000000bb"

func newService(t *testing.T, contract chain.Contract) (*Service, *ledger.Ledger) {
	t.Helper()
	now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	gen, err := hero.NewGenerator(hero.DefaultTables(), hero.NewSeededSource(3), now)
	require.NoError(t, err)
	st := store.NewMemory()
	l := ledger.New(st, now)
	if contract == nil {
		contract = chain.NewSimulator(rand.New(rand.NewSource(3)), 0)
	}
	return NewService(gen, contract, st, l, 2_000_000), l
}

func TestMintAssignsTokensAndRecordsCost(t *testing.T) {
	svc, l := newService(t, nil)
	ctx := context.Background()

	res, err := svc.Mint(ctx, owner, 3)
	require.NoError(t, err)
	require.Len(t, res.Heroes, 3)
	require.Equal(t, int64(6_000_000), res.TotalCostSTG)
	require.Regexp(t, `^0x[0-9a-f]{64}$`, res.TxHash)
	for _, h := range res.Heroes {
		require.NotNil(t, h.TokenID)
	}

	txs, err := l.Recent(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, ledger.TxMint, txs[0].Type)
	require.Equal(t, int64(-6_000_000), txs[0].AmountSTG)
	require.Equal(t, res.TxHash, txs[0].Hash)
	require.Len(t, txs[0].TokenIDs, 3)
}

func TestMintRejectsBadCounts(t *testing.T) {
	svc, _ := newService(t, nil)
	for _, n := range []int{-1, 0, MaxPerMint + 1} {
		_, err := svc.Mint(context.Background(), owner, n)
		require.ErrorIs(t, err, ErrInvalidCount)
	}
}

func TestHistoryNewestFirstAndCapped(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	first, err := svc.Mint(ctx, owner, 1)
	require.NoError(t, err)
	second, err := svc.Mint(ctx, owner, 2)
	require.NoError(t, err)

	history, err := svc.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, second.Heroes[0].ID, history[0].ID)
	require.Equal(t, first.Heroes[0].ID, history[2].ID)

	for i := 0; i < 6; i++ {
		_, err := svc.Mint(ctx, owner, MaxPerMint)
		require.NoError(t, err)
	}
	history, err = svc.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, maxHistorySize)
}

type brokenContract struct{ chain.Contract }

func (brokenContract) MintHeroes(context.Context, int) (chain.Receipt, error) {
	return chain.Receipt{}, errors.New("execution reverted")
}

func TestContractFailureMintsNothing(t *testing.T) {
	svc, l := newService(t, brokenContract{})
	ctx := context.Background()

	_, err := svc.Mint(ctx, owner, 2)
	require.Error(t, err)

	history, err := svc.History(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, history)
	txs, err := l.Recent(ctx, owner, 10)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func newStakingPair(t *testing.T) (*Service, *staking.Service, store.Store) {
	t.Helper()
	now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	gen, err := hero.NewGenerator(hero.DefaultTables(), hero.NewSeededSource(5), now)
	require.NoError(t, err)
	st := store.NewMemory()
	contract := chain.NewSimulator(rand.New(rand.NewSource(5)), 0)
	m := NewService(gen, contract, st, nil, 2_000_000)
	stk, err := staking.NewService(st, staking.DefaultRewardModel(), now, staking.WithHistory(m))
	require.NoError(t, err)
	return m, stk, st
}

func containsHero(list []hero.Attributes, id string) bool {
	for _, h := range list {
		if h.ID == id {
			return true
		}
	}
	return false
}

func TestStakedHeroSurvivesHistoryCap(t *testing.T) {
	m, stk, _ := newStakingPair(t)
	ctx := context.Background()

	first, err := m.Mint(ctx, owner, 1)
	require.NoError(t, err)
	id := first.Heroes[0].ID
	_, err = stk.StakeMany(ctx, owner, []string{id})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := m.Mint(ctx, owner, MaxPerMint)
		require.NoError(t, err)
	}
	history, err := m.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, maxHistorySize+1)
	require.True(t, containsHero(history, id))

	_, err = stk.Unstake(ctx, owner, id)
	require.NoError(t, err)
	avail, err := stk.AvailableHeroes(ctx, owner)
	require.NoError(t, err)
	require.True(t, containsHero(avail, id), "unstaked hero must be available again")

	// the next mint trims it like any other unstaked hero
	_, err = m.Mint(ctx, owner, 1)
	require.NoError(t, err)
	history, err = m.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, maxHistorySize)
}

func TestUnstakeRestoresTrimmedHero(t *testing.T) {
	m, stk, st := newStakingPair(t)
	ctx := context.Background()

	res, err := m.Mint(ctx, owner, 2)
	require.NoError(t, err)
	gone, kept := res.Heroes[1], res.Heroes[0]
	_, err = stk.StakeMany(ctx, owner, []string{gone.ID})
	require.NoError(t, err)

	// history lost the staked hero, as a concurrent mint could have done
	require.NoError(t, store.SaveList(ctx, st, store.Key(owner, store.KeyMintHistory), []hero.Attributes{kept}))

	_, err = stk.Unstake(ctx, owner, gone.ID)
	require.NoError(t, err)
	history, err := m.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, kept.ID, history[0].ID)
	require.Equal(t, gone.ID, history[1].ID)

	// restoring twice is a no-op
	require.NoError(t, m.Restore(ctx, owner, gone))
	history, err = m.History(ctx, owner)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestTrimHistoryKeepsOnlyListedOverflow(t *testing.T) {
	list := make([]hero.Attributes, maxHistorySize+3)
	for i := range list {
		list[i].ID = fmt.Sprintf("h%d", i)
	}
	out := trimHistory(list, map[string]struct{}{"h51": {}, "h3": {}})
	require.Len(t, out, maxHistorySize+1)
	require.Equal(t, "h51", out[maxHistorySize].ID)
}
