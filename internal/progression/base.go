package progression

import (
	"context"
	"fmt"
	"strconv"

	"github.com/halcyon-games/progression/internal/record"
)

// ReturnToBase fully heals the player. When current HP already equals
// max HP no write is issued; the call is idempotent. A travel
// telemetry event is recorded either way.
func (e *Engine) ReturnToBase(ctx context.Context, playerID string) (*ReturnToBaseResponse, error) {
	data, err := e.players.Data(ctx, playerID, record.DataHP, record.DataMaxHP)
	if err != nil {
		return nil, fmt.Errorf("fetching vitals: %w", err)
	}

	maxHP := intData(data, record.DataMaxHP, e.cfg.StartingHP)
	hp := intData(data, record.DataHP, -1)

	if hp != maxHP {
		_, err = e.players.UpdateData(ctx, playerID, map[string]string{
			record.DataHP: strconv.Itoa(maxHP),
		})
		if err != nil {
			return nil, fmt.Errorf("restoring hit points: %w", err)
		}
	}

	e.writeEvent(ctx, playerID, eventTraveledToBase, nil)

	return &ReturnToBaseResponse{MaxHP: maxHP}, nil
}
