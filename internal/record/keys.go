// Package record provides access to the external player record store:
// per-player statistics, keyed data, inventory, and item grants. All
// player state lives there; this service only reads and writes through
// the Store interface.
package record

// Statistic names. These must match the record store schema
// byte-for-byte.
const (
	StatKills = "kills"
	StatXP    = "xp"
	StatLevel = "level"
)

// Keyed-data names.
const (
	DataHP        = "hp"
	DataMaxHP     = "maxhp"
	DataEquipment = "equipment"
)

// Catalog and currency literals.
const (
	// ItemStartingPack is the bundle granted on first login.
	ItemStartingPack = "StartingPack"

	// CurrencyCredits is the game's virtual currency code.
	CurrencyCredits = "CR"

	// UnpackClass marks bundle items that are consumed immediately
	// after being granted, depositing their contents.
	UnpackClass = "unpack"
)
