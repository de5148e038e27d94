package record

import (
	"context"
	"strings"
)

// ItemInstance is one granted item in a player's inventory.
type ItemInstance struct {
	ItemID        string `json:"item_id"`
	InstanceID    string `json:"instance_id"`
	Class         string `json:"class,omitempty"`
	RemainingUses int    `json:"remaining_uses,omitempty"`
}

// IsUnpack reports whether the item is an unpack-class bundle that
// should be consumed immediately after being granted.
func (i *ItemInstance) IsUnpack() bool {
	return strings.Contains(i.Class, UnpackClass)
}

// Inventory is a player's items and virtual currency balances.
type Inventory struct {
	Items    []ItemInstance `json:"items"`
	Currency map[string]int `json:"currency"`
}

// Empty reports whether the inventory holds no items and no credits.
// A brand-new player is detected by an empty inventory.
func (inv *Inventory) Empty() bool {
	return len(inv.Items) == 0 && inv.Currency[CurrencyCredits] == 0
}

// Store is the adapter interface over the external player record
// service. Every call is a synchronous remote round-trip; any failure
// is an infrastructure error and must abort the calling operation
// rather than be retried (a retried grant can double-grant).
type Store interface {
	// Statistics reads the named numeric statistics. Statistics the
	// player does not have yet are simply absent from the result.
	Statistics(ctx context.Context, playerID string, names ...string) (map[string]int, error)

	// UpdateStatistics writes the given statistics in one batched
	// update.
	UpdateStatistics(ctx context.Context, playerID string, stats map[string]int) error

	// Data reads the named keyed-data entries. Missing keys are absent
	// from the result.
	Data(ctx context.Context, playerID string, keys ...string) (map[string]string, error)

	// UpdateData writes the given keyed-data entries with private
	// visibility, merging with the player's existing keys. Keys not
	// present in the map are left untouched. Returns the store's data
	// version after the write.
	UpdateData(ctx context.Context, playerID string, data map[string]string) (uint32, error)

	// Inventory reads the player's items and currency balances.
	Inventory(ctx context.Context, playerID string) (*Inventory, error)

	// Grant grants the given catalog items, consuming any unpack-class
	// bundles immediately so their contents are deposited. Returns the
	// granted instances.
	Grant(ctx context.Context, playerID string, itemIDs ...string) ([]ItemInstance, error)
}
