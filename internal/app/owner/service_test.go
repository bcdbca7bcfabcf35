package owner

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"hero-staking/internal/chain"
	"hero-staking/internal/hero"
	"hero-staking/internal/ledger"
	"hero-staking/internal/mint"
	"hero-staking/internal/staking"
	"hero-staking/internal/store"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0xAbCdEf0123456789abcdef0123456789ABCDEF01", want: "0xabcdef0123456789abcdef0123456789abcdef01"},
		{in: "bot-1", want: "bot-1"},
		{in: " alice_2 ", want: "alice_2"},
		{in: "", wantErr: true},
		{in: "a:b", wantErr: true},
		{in: "has space", wantErr: true},
		{in: string(make([]byte, 65)), wantErr: true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOwner) {
				t.Fatalf("Normalize(%q) err = %v, want ErrInvalidOwner", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("Normalize(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newService(t *testing.T) (*Service, *clock) {
	t.Helper()
	clk := &clock{t: time.UnixMilli(1_700_000_000_000)}
	st := store.NewMemory()
	gen, err := hero.NewGenerator(hero.DefaultTables(), hero.NewSeededSource(9), clk.Now)
	if err != nil {
		t.Fatal(err)
	}
	contract := chain.NewSimulator(rand.New(rand.NewSource(9)), 0)
	l := ledger.New(st, clk.Now)
	m := mint.NewService(gen, contract, st, l, 2_000_000)
	stk, err := staking.NewService(st, staking.DefaultRewardModel(), clk.Now,
		staking.WithRecorder(l), staking.WithContract(contract), staking.WithHistory(m))
	if err != nil {
		t.Fatal(err)
	}
	return NewService(m, stk, l, clk.Now), clk
}

func TestOwnerLifecycle(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()
	const addr = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

	minted, err := svc.Mint(ctx, addr, 2)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	ids := []string{minted.Heroes[0].ID}
	if _, err := svc.Stake(ctx, addr, ids); err != nil {
		t.Fatalf("stake: %v", err)
	}

	// Lowercase form addresses the same wallet.
	avail, err := svc.Available(ctx, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(avail.Items) != 1 || avail.Items[0].ID != minted.Heroes[1].ID {
		t.Fatalf("available = %+v", avail.Items)
	}

	clk.t = clk.t.Add(24 * time.Hour)
	view, err := svc.Staking(ctx, addr)
	if err != nil {
		t.Fatalf("staking: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].CurrentEarnings != view.Items[0].DailyReward {
		t.Fatalf("staking view = %+v", view.Items)
	}

	claim, err := svc.Claim(ctx, addr)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claim.ClaimedSTG != view.Items[0].DailyReward {
		t.Fatalf("claimed %d, want %d", claim.ClaimedSTG, view.Items[0].DailyReward)
	}

	if _, err := svc.Unstake(ctx, addr, "hero_missing"); !errors.Is(err, staking.ErrNotFound) {
		t.Fatalf("unstake missing err = %v", err)
	}

	txs, err := svc.Transactions(ctx, addr, 0)
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if txs.Limit != ledger.DefaultLimit || len(txs.Items) != 3 {
		t.Fatalf("tx = %+v", txs)
	}
	if txs.Items[0].Type != ledger.TxClaim || txs.Items[2].Type != ledger.TxMint {
		t.Fatalf("tx order = %s, %s", txs.Items[0].Type, txs.Items[2].Type)
	}

	stats, err := svc.Stats(ctx, addr)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalStaked != 1 || stats.TotalLifetimeEarnings != float64(claim.ClaimedSTG) {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestInvalidOwnerRejectedEverywhere(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	bad := "no/slashes"

	calls := map[string]func() error{
		"mint":      func() error { _, err := svc.Mint(ctx, bad, 1); return err },
		"heroes":    func() error { _, err := svc.Heroes(ctx, bad, HeroFilter{}); return err },
		"available": func() error { _, err := svc.Available(ctx, bad); return err },
		"staking":   func() error { _, err := svc.Staking(ctx, bad); return err },
		"stats":     func() error { _, err := svc.Stats(ctx, bad); return err },
		"stake":     func() error { _, err := svc.Stake(ctx, bad, []string{"x"}); return err },
		"unstake":   func() error { _, err := svc.Unstake(ctx, bad, "x"); return err },
		"claim":     func() error { _, err := svc.Claim(ctx, bad); return err },
		"tx":        func() error { _, err := svc.Transactions(ctx, bad, 5); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrInvalidOwner) {
			t.Fatalf("%s: err = %v, want ErrInvalidOwner", name, err)
		}
	}
}

func TestHeroesFilterByFactionAndRarity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	const addr = "collector"

	minted, err := svc.Mint(ctx, addr, 10)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	target := minted.Heroes[3]

	tests := []struct {
		name   string
		filter HeroFilter
	}{
		{name: "none", filter: HeroFilter{}},
		{name: "faction", filter: HeroFilter{Faction: target.Faction}},
		{name: "rarity", filter: HeroFilter{Rarity: target.Rarity}},
		{name: "both", filter: HeroFilter{Faction: target.Faction, Rarity: target.Rarity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Heroes(ctx, addr, tt.filter)
			if err != nil {
				t.Fatalf("heroes: %v", err)
			}
			want := 0
			for _, h := range minted.Heroes {
				if tt.filter.match(h) {
					want++
				}
			}
			if len(resp.Items) != want {
				t.Fatalf("got %d heroes, want %d", len(resp.Items), want)
			}
			found := false
			for _, h := range resp.Items {
				if tt.filter.Faction != "" && h.Faction != tt.filter.Faction {
					t.Fatalf("faction %s leaked through", h.Faction)
				}
				if tt.filter.Rarity != "" && h.Rarity != tt.filter.Rarity {
					t.Fatalf("rarity %s leaked through", h.Rarity)
				}
				found = found || h.ID == target.ID
			}
			if !found {
				t.Fatalf("hero %s missing", target.ID)
			}
		})
	}
}

func TestHeroesRejectsUnknownFilter(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for _, f := range []HeroFilter{{Faction: "pirates"}, {Rarity: "ultra"}} {
		if _, err := svc.Heroes(ctx, "collector", f); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("filter %+v: want ErrInvalidFilter, got %v", f, err)
		}
	}
}
