package hero

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator draws heroes from Tables. It is safe for concurrent use; all
// draws share one Source.
type Generator struct {
	tables Tables
	now    func() time.Time

	mu  sync.Mutex
	src Source
}

func NewGenerator(tables Tables, src Source, now func() time.Time) (*Generator, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSeededSource(0)
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{tables: tables, src: src, now: now}, nil
}

func (g *Generator) Tables() Tables { return g.tables }

// Generate draws one hero.
func (g *Generator) Generate() Attributes {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generate()
}

// GenerateMany draws count independent heroes. Heroes in one batch are not
// deduplicated against each other.
func (g *Generator) GenerateMany(count int) []Attributes {
	if count <= 0 {
		return []Attributes{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Attributes, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.generate())
	}
	return out
}

func (g *Generator) generate() Attributes {
	rarity := g.drawRarity()
	faction := Factions[intn(g.src, len(Factions))]
	fcfg := g.tables.Faction[faction]
	rcfg := g.tables.rarityConfig(rarity)
	class := fcfg.Classes[intn(g.src, len(fcfg.Classes))]

	health := between(g.src, rcfg.HealthRange)
	attack := between(g.src, rcfg.AttackRange)
	defense := between(g.src, rcfg.DefenseRange)
	speed := between(g.src, rcfg.SpeedRange)

	abilities := g.drawAbilities(fcfg.Abilities, rcfg.AbilityCount)
	name := fmt.Sprintf("%s #%04d", class, 1+intn(g.src, 9999))

	now := g.now()
	id := ulid.MustNew(ulid.Timestamp(now), sourceReader{src: g.src})

	return Attributes{
		ID:          "hero_" + strings.ToLower(id.String()),
		Name:        name,
		Faction:     faction,
		Rarity:      rarity,
		Class:       class,
		Power:       ComputePower(health, attack, defense, speed),
		Health:      health,
		Attack:      attack,
		Defense:     defense,
		Speed:       speed,
		Abilities:   abilities,
		Image:       g.image(faction, rarity),
		Background:  background(fcfg, rarity),
		Description: describe(fcfg, rcfg, class, len(abilities)),
		MintedAt:    now.UnixMilli(),
	}
}

// drawRarity walks the cumulative distribution in table order. A draw equal
// to a boundary stays in the lower tier. Rounding can leave a draw above the
// final cumulative sum; that lands on common.
func (g *Generator) drawRarity() Rarity {
	draw := g.src.Float64()
	cumulative := 0.0
	for _, r := range Rarities {
		cumulative += g.tables.Rarity[r].Probability
		if draw <= cumulative {
			return r
		}
	}
	return RarityCommon
}

// drawAbilities shuffles a copy of the pool (Fisher-Yates) and keeps the
// first n, so entries are distinct.
func (g *Generator) drawAbilities(pool []string, n int) []string {
	shuffled := append([]string(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intn(g.src, i+1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (g *Generator) image(f Faction, r Rarity) string {
	if img := g.tables.Images[f][r]; img != "" {
		return img
	}
	return "/placeholder.svg"
}

func background(fcfg FactionConfig, r Rarity) string {
	if len(fcfg.Backgrounds) == 0 {
		return ""
	}
	rank := r.Rank()
	if rank < 0 {
		rank = 0
	}
	return fcfg.Backgrounds[rank%len(fcfg.Backgrounds)]
}

func describe(fcfg FactionConfig, rcfg RarityConfig, class string, abilities int) string {
	return fmt.Sprintf("A %s %s of the %s, wielding %d powerful abilities.",
		strings.ToLower(rcfg.Name), class, fcfg.Name, abilities)
}
