package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/halcyon-games/progression/internal/record"
)

// Login prepares a player's session state. A brand-new player — empty
// inventory and zero credits — receives the starting pack, and a
// player without vitals has them initialized to the starting HP.
// Statistics default to starting level and zero experience when
// absent.
func (e *Engine) Login(ctx context.Context, playerID string) (*LoginResponse, error) {
	inv, err := e.players.Inventory(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}

	didGrant := false
	if inv.Empty() {
		_, err = e.players.Grant(ctx, playerID, e.cfg.StartingPack)
		if err != nil {
			return nil, fmt.Errorf("granting starting pack: %w", err)
		}
		// Re-fetch so the response reflects the unpacked grant.
		inv, err = e.players.Inventory(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("fetching inventory after grant: %w", err)
		}
		didGrant = true
	}

	data, err := e.players.Data(ctx, playerID, record.DataHP, record.DataMaxHP, record.DataEquipment)
	if err != nil {
		return nil, fmt.Errorf("fetching player data: %w", err)
	}

	playerHP := 0
	if _, ok := data[record.DataHP]; !ok {
		hp := strconv.Itoa(e.cfg.StartingHP)
		_, err = e.players.UpdateData(ctx, playerID, map[string]string{
			record.DataHP:    hp,
			record.DataMaxHP: hp,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing vitals: %w", err)
		}
		playerHP = e.cfg.StartingHP
	} else {
		playerHP = intData(data, record.DataHP, e.cfg.StartingHP)
	}

	equipment := map[string]string{}
	if raw, ok := data[record.DataEquipment]; ok && raw != "" {
		err = json.Unmarshal([]byte(raw), &equipment)
		if err != nil {
			return nil, fmt.Errorf("decoding equipment: %w", err)
		}
	}

	stats, err := e.players.Statistics(ctx, playerID, record.StatXP, record.StatLevel)
	if err != nil {
		return nil, fmt.Errorf("fetching statistics: %w", err)
	}
	level := stats[record.StatLevel]
	if level == 0 {
		level = e.cfg.StartingLevel
	}

	return &LoginResponse{
		DidGrantStartingPack: didGrant,
		PlayerHP:             playerHP,
		Equipment:            equipment,
		Experience:           stats[record.StatXP],
		Level:                level,
		Inventory:            inv.Items,
	}, nil
}
