package hero

import (
	"errors"
	"testing"
)

func TestDefaultTablesValid(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestTablesValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{name: "probabilities off by a typo", mutate: func(tb *Tables) {
			c := tb.Rarity[RarityRare]
			c.Probability = 0.26
			tb.Rarity[RarityRare] = c
		}},
		{name: "missing rarity", mutate: func(tb *Tables) { delete(tb.Rarity, RarityEpic) }},
		{name: "missing faction", mutate: func(tb *Tables) { delete(tb.Faction, FactionVoidReavers) }},
		{name: "inverted range", mutate: func(tb *Tables) {
			c := tb.Rarity[RarityCommon]
			c.SpeedRange = Range{Min: 70, Max: 40}
			tb.Rarity[RarityCommon] = c
		}},
		{name: "ability pool too small", mutate: func(tb *Tables) {
			f := tb.Faction[FactionAstralConclave]
			f.Abilities = f.Abilities[:4]
			tb.Faction[FactionAstralConclave] = f
		}},
		{name: "duplicate ability", mutate: func(tb *Tables) {
			f := tb.Faction[FactionMechanicalEmpire]
			f.Abilities = append([]string(nil), f.Abilities...)
			f.Abilities[1] = f.Abilities[0]
			tb.Faction[FactionMechanicalEmpire] = f
		}},
		{name: "no classes", mutate: func(tb *Tables) {
			f := tb.Faction[FactionVoidReavers]
			f.Classes = nil
			tb.Faction[FactionVoidReavers] = f
		}},
		{name: "missing image", mutate: func(tb *Tables) { delete(tb.Images[FactionAstralConclave], RarityMythic) }},
		{name: "unknown rarity", mutate: func(tb *Tables) { tb.Rarity["ultra"] = RarityConfig{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := DefaultTables()
			tt.mutate(&tb)
			err := tb.Validate()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfiguration", err)
			}
			if _, err := NewGenerator(tb, NewSeededSource(1), nil); !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("NewGenerator() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestRarityRank(t *testing.T) {
	if RarityCommon.Rank() != 0 || RarityMythic.Rank() != 4 {
		t.Fatalf("unexpected ranks: common=%d mythic=%d", RarityCommon.Rank(), RarityMythic.Rank())
	}
	if Rarity("ultra").Valid() {
		t.Fatal("unknown rarity reported valid")
	}
}
