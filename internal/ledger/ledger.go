// Package ledger keeps each owner's recent transaction history.
package ledger

import (
	"context"
	"sort"
	"time"

	"hero-staking/internal/store"

	"github.com/rs/zerolog/log"
)

type TxType string

const (
	TxMint    TxType = "mint"
	TxStake   TxType = "stake"
	TxUnstake TxType = "unstake"
	TxClaim   TxType = "claim"
	TxBattle  TxType = "battle"
)

// Entry is one wallet transaction. AmountSTG is negative for spend and
// positive for rewards.
type Entry struct {
	ID        string         `json:"id"`
	Type      TxType         `json:"type"`
	AmountSTG int64          `json:"amountSTG"`
	Hash      string         `json:"hash,omitempty"`
	TokenIDs  []int64        `json:"tokenIds,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Meta      map[string]any `json:"meta,omitempty"`
}

const (
	maxEntries   = 100
	DefaultLimit = 10
)

// Observer is told about every entry after it is persisted.
type Observer func(owner string, e Entry)

type Ledger struct {
	store     store.Store
	now       func() time.Time
	locks     store.KeyedMutex
	observers []Observer
}

func New(st store.Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: st, now: now}
}

// Subscribe registers fn for every recorded entry. Call it before the
// ledger is shared; observers must not block.
func (l *Ledger) Subscribe(fn Observer) {
	if fn != nil {
		l.observers = append(l.observers, fn)
	}
}

// Record prepends e to the owner's history, keeping the latest 100. ID and
// Timestamp are filled in when empty.
func (l *Ledger) Record(ctx context.Context, owner string, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = store.NewID("tx")
	}
	if e.Timestamp == 0 {
		e.Timestamp = l.now().UnixMilli()
	}

	unlock := l.locks.Lock(owner)
	defer unlock()

	key := store.Key(owner, store.KeyTxHistory)
	list, err := store.LoadList[Entry](ctx, l.store, key)
	if err != nil {
		return Entry{}, err
	}
	list = append([]Entry{e}, list...)
	if len(list) > maxEntries {
		list = list[:maxEntries]
	}
	if err := store.SaveList(ctx, l.store, key, list); err != nil {
		return Entry{}, err
	}
	log.Debug().Str("owner", owner).Str("tx_id", e.ID).Str("type", string(e.Type)).Int64("amount_stg", e.AmountSTG).Msg("tx recorded")
	for _, fn := range l.observers {
		fn(owner, e)
	}
	return e, nil
}

func (l *Ledger) RecordMint(ctx context.Context, owner string, totalCostSTG int64, tokenIDs []int64, hash string) (Entry, error) {
	if totalCostSTG > 0 {
		totalCostSTG = -totalCostSTG
	}
	return l.Record(ctx, owner, Entry{
		Type:      TxMint,
		AmountSTG: totalCostSTG,
		Hash:      hash,
		TokenIDs:  tokenIDs,
	})
}

// Recent returns up to limit entries, newest first. limit <= 0 means
// DefaultLimit.
func (l *Ledger) Recent(ctx context.Context, owner string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	list, err := store.LoadList[Entry](ctx, l.store, store.Key(owner, store.KeyTxHistory))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp > list[j].Timestamp })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
