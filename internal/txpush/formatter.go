package txpush

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hero-staking/internal/ledger"
	"hero-staking/internal/txpush/platforms"
)

const (
	colorSpend   = 0xE74C3C
	colorReward  = 0x2ECC71
	colorNeutral = 0x95A5A6
)

func formatEntry(owner string, e ledger.Entry) platforms.Message {
	color := colorNeutral
	switch {
	case e.AmountSTG < 0:
		color = colorSpend
	case e.AmountSTG > 0:
		color = colorReward
	}
	fields := []platforms.Field{
		{Name: "Amount", Value: formatSTG(e.AmountSTG), Inline: true},
		{Name: "Type", Value: string(e.Type), Inline: true},
	}
	if len(e.TokenIDs) > 0 {
		ids := make([]string, 0, len(e.TokenIDs))
		for _, id := range e.TokenIDs {
			ids = append(ids, "#"+strconv.FormatInt(id, 10))
		}
		fields = append(fields, platforms.Field{Name: "Tokens", Value: strings.Join(ids, " ")})
	}
	if e.Hash != "" {
		fields = append(fields, platforms.Field{Name: "Tx", Value: e.Hash})
	}
	return platforms.Message{
		Title:     titleFor(e.Type),
		Color:     color,
		Timestamp: time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339),
		Footer:    owner,
		Fields:    fields,
		Payload:   Event{Owner: owner, Entry: e},
	}
}

func titleFor(t ledger.TxType) string {
	switch t {
	case ledger.TxMint:
		return "Heroes minted"
	case ledger.TxStake:
		return "Heroes staked"
	case ledger.TxUnstake:
		return "Hero unstaked"
	case ledger.TxClaim:
		return "Rewards claimed"
	case ledger.TxBattle:
		return "Battle settled"
	default:
		return string(t)
	}
}

func formatSTG(v int64) string {
	if v > 0 {
		return fmt.Sprintf("+%d STG", v)
	}
	return fmt.Sprintf("%d STG", v)
}
