package progression

import "github.com/halcyon-games/progression/internal/record"

// CombatResponse describes what a resolved combat event changed. When
// validation fails only ErrorMessage is set. Level and HitPoints are
// present only if at least one level-up occurred.
type CombatResponse struct {
	ErrorMessage string `json:"errorMessage,omitempty"`

	Kills        int      `json:"kills"`
	Experience   int      `json:"experience"`
	ItemsGranted []string `json:"itemsGranted"`
	Level        *int     `json:"level,omitempty"`
	HitPoints    *int     `json:"hitPoints,omitempty"`
}

// LoginResponse is the player's state snapshot returned at login.
type LoginResponse struct {
	DidGrantStartingPack bool                  `json:"didGrantStartingPack"`
	PlayerHP             int                   `json:"playerHP"`
	Equipment            map[string]string     `json:"equipment"`
	Experience           int                   `json:"experience"`
	Level                int                   `json:"level"`
	Inventory            []record.ItemInstance `json:"inventory"`
}

// ReturnToBaseResponse reports the player's restored hit points.
type ReturnToBaseResponse struct {
	MaxHP int `json:"maxHP"`
}

// EquipPair assigns an item instance to an equipment slot.
type EquipPair struct {
	Slot string `json:"slot"`
	Item string `json:"item"`
}

// EquipRequest carries either a single slot assignment or a batch.
type EquipRequest struct {
	Single   *EquipPair  `json:"single,omitempty"`
	Multiple []EquipPair `json:"multiple,omitempty"`
}

// Pairs flattens the request into one list of assignments.
func (r *EquipRequest) Pairs() []EquipPair {
	var pairs []EquipPair
	if r.Single != nil {
		pairs = append(pairs, *r.Single)
	}
	pairs = append(pairs, r.Multiple...)
	return pairs
}

// EquipResponse is the record store's keyed-data write result.
type EquipResponse struct {
	DataVersion uint32 `json:"dataVersion"`
}
