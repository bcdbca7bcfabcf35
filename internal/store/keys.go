package store

const (
	KeyMintHistory     = "mintHistory"
	KeyStakedHeroes    = "stakedHeroes"
	KeyStakingEarnings = "stakingEarnings"
	KeyTxHistory       = "txHistory"
)

// Key scopes a logical key to one owner.
func Key(owner, name string) string {
	return owner + ":" + name
}
