package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/halcyon-games/progression/internal/record"
)

// ErrNoAssignments is returned for an equip request that names no
// slot/item pairs.
var ErrNoAssignments = errors.New("equip request contains no slot assignments")

// EquipItem merges the requested slot assignments into the player's
// equipment map. The request's values win for slots they name;
// unspecified slots are left untouched. The merged map is persisted in
// a single keyed-data write.
func (e *Engine) EquipItem(ctx context.Context, playerID string, req *EquipRequest) (*EquipResponse, error) {
	pairs := req.Pairs()
	if len(pairs) == 0 {
		return nil, ErrNoAssignments
	}

	data, err := e.players.Data(ctx, playerID, record.DataEquipment)
	if err != nil {
		return nil, fmt.Errorf("fetching equipment: %w", err)
	}

	equipment := map[string]string{}
	if raw, ok := data[record.DataEquipment]; ok && raw != "" {
		err = json.Unmarshal([]byte(raw), &equipment)
		if err != nil {
			return nil, fmt.Errorf("decoding equipment: %w", err)
		}
	}

	for _, p := range pairs {
		equipment[p.Slot] = p.Item
	}

	merged, err := json.Marshal(equipment)
	if err != nil {
		return nil, fmt.Errorf("encoding equipment: %w", err)
	}

	version, err := e.players.UpdateData(ctx, playerID, map[string]string{
		record.DataEquipment: string(merged),
	})
	if err != nil {
		return nil, fmt.Errorf("updating equipment: %w", err)
	}

	e.writeEvent(ctx, playerID, eventEquippedItem, req)

	return &EquipResponse{DataVersion: version}, nil
}
