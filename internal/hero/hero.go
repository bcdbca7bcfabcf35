// Package hero generates collectible heroes from weighted balance tables.
package hero

type Faction string

const (
	FactionMechanicalEmpire Faction = "mechanical-empire"
	FactionAstralConclave   Faction = "astral-conclave"
	FactionVoidReavers      Faction = "void-reavers"
)

// Factions lists every faction in table order.
var Factions = []Faction{FactionMechanicalEmpire, FactionAstralConclave, FactionVoidReavers}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Rarities lists every tier from most to least common. Weighted draws walk
// the table in this order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

// Rank orders rarities, common being 0. Unknown rarities rank -1.
func (r Rarity) Rank() int {
	for i, v := range Rarities {
		if v == r {
			return i
		}
	}
	return -1
}

func (r Rarity) Valid() bool { return r.Rank() >= 0 }

func (f Faction) Valid() bool {
	for _, v := range Factions {
		if v == f {
			return true
		}
	}
	return false
}

// Attributes is a minted hero. Everything except TokenID is fixed at
// generation time.
type Attributes struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Faction     Faction  `json:"faction"`
	Rarity      Rarity   `json:"rarity"`
	Class       string   `json:"class"`
	Power       int64    `json:"power"`
	Health      int64    `json:"health"`
	Attack      int64    `json:"attack"`
	Defense     int64    `json:"defense"`
	Speed       int64    `json:"speed"`
	Abilities   []string `json:"abilities"`
	Image       string   `json:"image"`
	Background  string   `json:"background"`
	Description string   `json:"description"`
	MintedAt    int64    `json:"mintedAt"`
	TokenID     *int64   `json:"tokenId,omitempty"`
}

// ComputePower derives the composite power score from the four base stats.
func ComputePower(health, attack, defense, speed int64) int64 {
	// floor((2h + 3a + 2d + 1.5s) / 2), scaled by 2 to stay in integers.
	return (health*4 + attack*6 + defense*4 + speed*3) / 4
}
