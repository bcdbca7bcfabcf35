package hero

import (
	"fmt"
	"math"
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type RarityConfig struct {
	Name         string  `json:"name"`
	Probability  float64 `json:"probability"`
	PowerRange   Range   `json:"power_range"`
	HealthRange  Range   `json:"health_range"`
	AttackRange  Range   `json:"attack_range"`
	DefenseRange Range   `json:"defense_range"`
	SpeedRange   Range   `json:"speed_range"`
	AbilityCount int     `json:"ability_count"`
}

type FactionConfig struct {
	Name        string   `json:"name"`
	Classes     []string `json:"classes"`
	Abilities   []string `json:"abilities"`
	Backgrounds []string `json:"backgrounds"`
}

// Tables holds every balance table the generator reads.
type Tables struct {
	Rarity  map[Rarity]RarityConfig
	Faction map[Faction]FactionConfig
	Images  map[Faction]map[Rarity]string
}

const probabilityTolerance = 1e-9

// DefaultTables returns the launch balance tables.
func DefaultTables() Tables {
	return Tables{
		Rarity: map[Rarity]RarityConfig{
			RarityCommon: {
				Name: "Common", Probability: 0.60,
				PowerRange: Range{300, 500}, HealthRange: Range{80, 120}, AttackRange: Range{60, 90},
				DefenseRange: Range{50, 80}, SpeedRange: Range{40, 70}, AbilityCount: 2,
			},
			RarityRare: {
				Name: "Rare", Probability: 0.25,
				PowerRange: Range{500, 750}, HealthRange: Range{120, 160}, AttackRange: Range{90, 130},
				DefenseRange: Range{80, 120}, SpeedRange: Range{70, 100}, AbilityCount: 3,
			},
			RarityEpic: {
				Name: "Epic", Probability: 0.10,
				PowerRange: Range{750, 1000}, HealthRange: Range{160, 200}, AttackRange: Range{130, 170},
				DefenseRange: Range{120, 160}, SpeedRange: Range{100, 130}, AbilityCount: 4,
			},
			RarityLegendary: {
				Name: "Legendary", Probability: 0.04,
				PowerRange: Range{1000, 1300}, HealthRange: Range{200, 250}, AttackRange: Range{170, 220},
				DefenseRange: Range{160, 200}, SpeedRange: Range{130, 160}, AbilityCount: 5,
			},
			RarityMythic: {
				Name: "Mythic", Probability: 0.01,
				PowerRange: Range{1300, 1600}, HealthRange: Range{250, 300}, AttackRange: Range{220, 280},
				DefenseRange: Range{200, 250}, SpeedRange: Range{160, 200}, AbilityCount: 6,
			},
		},
		Faction: map[Faction]FactionConfig{
			FactionMechanicalEmpire: {
				Name:    "Mechanical Empire",
				Classes: []string{"Cyber Warrior", "Mech Guardian", "Quantum Engineer", "Nano Medic", "Plasma Gunner"},
				Abilities: []string{
					"Laser Shot", "Shield Recharge", "Plasma Slash", "Tactical Analysis", "Energy Shield",
					"Dual Barrage", "Nano Repair", "Holographic Command", "EMP", "Quantum Teleport",
					"Mechanical Dominion", "Energy Maul", "Hover Drones", "Holographic Shield", "Field Control",
				},
				Backgrounds: []string{
					"Cyber City Skyline", "Mech Factory Floor", "Quantum Laboratory", "Starship Bridge", "Nanofabrication Core",
				},
			},
			FactionAstralConclave: {
				Name:    "Astral Conclave",
				Classes: []string{"Starlight Mage", "Cosmic Priest", "Celestial Warlock", "Astral Guardian", "Galactic Sage"},
				Abilities: []string{
					"Starlight Bolt", "Meditative Recovery", "Crystal Burst", "Nebula Shield", "Energy Drain",
					"Stellar Scepter", "Planetary Orbit", "Cosmic Rune", "Energy Surge", "Spacetime Warp",
					"Blade of Stars", "Wings of the Galaxy", "Cosmic Burst", "Nebula Domain", "Light of Genesis",
				},
				Backgrounds: []string{
					"Starlight Temple", "Cosmic Observatory", "Crystal Garden", "Nebula Vortex", "Celestial Sanctum",
				},
			},
			FactionVoidReavers: {
				Name:    "Void Reavers",
				Classes: []string{"Void Warrior", "Shadow Assassin", "Corruption Warlock", "Void Warlord", "Chaos Lord"},
				Abilities: []string{
					"Shadow Blade", "Void Stealth", "Twinblade Assault", "Corrosive Miasma", "Shadow Step",
					"Death Scythe", "Bonewing Flight", "Necro Energy", "Void Tendrils", "Void Rift",
					"Void Greataxe", "Wings of Skulls", "Necro Vortex", "Chaos Field", "Doomsday Judgement",
				},
				Backgrounds: []string{
					"Void Rift", "Corroded Battlefield", "Bonespike Fortress", "Shadow Abyss", "Chaos Temple",
				},
			},
		},
		Images: defaultImages(),
	}
}

// There is no dedicated mythic art; mythic heroes reuse the legendary image.
func defaultImages() map[Faction]map[Rarity]string {
	out := make(map[Faction]map[Rarity]string, len(Factions))
	for _, f := range Factions {
		byRarity := make(map[Rarity]string, len(Rarities))
		for _, r := range Rarities {
			art := r
			if r == RarityMythic {
				art = RarityLegendary
			}
			byRarity[r] = fmt.Sprintf("/nft/%s-%s-1.png", f, art)
		}
		out[f] = byRarity
	}
	return out
}

// Validate reports the first problem that would make generation silently
// fall back to defaults.
func (t Tables) Validate() error {
	sum := 0.0
	maxAbilities := 0
	for _, r := range Rarities {
		cfg, ok := t.Rarity[r]
		if !ok {
			return fmt.Errorf("%w: rarity %q has no config", ErrInvalidConfiguration, r)
		}
		if cfg.Probability < 0 {
			return fmt.Errorf("%w: rarity %q has negative probability", ErrInvalidConfiguration, r)
		}
		if cfg.AbilityCount < 0 {
			return fmt.Errorf("%w: rarity %q has negative ability count", ErrInvalidConfiguration, r)
		}
		for name, rg := range map[string]Range{
			"health": cfg.HealthRange, "attack": cfg.AttackRange,
			"defense": cfg.DefenseRange, "speed": cfg.SpeedRange,
		} {
			if rg.Min > rg.Max || rg.Min < 0 {
				return fmt.Errorf("%w: rarity %q %s range [%d,%d]", ErrInvalidConfiguration, r, name, rg.Min, rg.Max)
			}
		}
		sum += cfg.Probability
		if cfg.AbilityCount > maxAbilities {
			maxAbilities = cfg.AbilityCount
		}
	}
	if len(t.Rarity) != len(Rarities) {
		return fmt.Errorf("%w: unknown rarity in table", ErrInvalidConfiguration)
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("%w: rarity probabilities sum to %v", ErrInvalidConfiguration, sum)
	}
	for _, f := range Factions {
		cfg, ok := t.Faction[f]
		if !ok {
			return fmt.Errorf("%w: faction %q has no config", ErrInvalidConfiguration, f)
		}
		if len(cfg.Classes) == 0 {
			return fmt.Errorf("%w: faction %q has no classes", ErrInvalidConfiguration, f)
		}
		if len(cfg.Backgrounds) == 0 {
			return fmt.Errorf("%w: faction %q has no backgrounds", ErrInvalidConfiguration, f)
		}
		if len(cfg.Abilities) < maxAbilities {
			return fmt.Errorf("%w: faction %q has %d abilities, rarities need up to %d",
				ErrInvalidConfiguration, f, len(cfg.Abilities), maxAbilities)
		}
		seen := make(map[string]struct{}, len(cfg.Abilities))
		for _, a := range cfg.Abilities {
			if _, dup := seen[a]; dup {
				return fmt.Errorf("%w: faction %q lists ability %q twice", ErrInvalidConfiguration, f, a)
			}
			seen[a] = struct{}{}
		}
		for _, r := range Rarities {
			if t.Images[f][r] == "" {
				return fmt.Errorf("%w: no image for %s/%s", ErrInvalidConfiguration, f, r)
			}
		}
	}
	if len(t.Faction) != len(Factions) {
		return fmt.Errorf("%w: unknown faction in table", ErrInvalidConfiguration)
	}
	return nil
}

func (t Tables) rarityConfig(r Rarity) RarityConfig {
	if cfg, ok := t.Rarity[r]; ok {
		return cfg
	}
	return t.Rarity[RarityCommon]
}
