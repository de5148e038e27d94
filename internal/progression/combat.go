package progression

import (
	"context"
	"fmt"
	"strconv"

	"github.com/halcyon-games/progression/internal/game"
	"github.com/halcyon-games/progression/internal/record"
)

// ResolveCombat validates a submitted combat event against reference
// data and applies its rewards: kill and experience statistics, any
// level-ups the new total crosses, vitals, and item grants. A request
// that fails validation returns a response carrying only the error
// message; no player-store write is attempted. Remote-call failures
// abort immediately with whatever already committed left in place —
// they are never retried, since retrying a grant can double-grant.
func (e *Engine) ResolveCombat(ctx context.Context, playerID string, req *game.CombatRequest) (*CombatResponse, error) {
	data, err := e.content.GameData(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching reference data: %w", err)
	}

	group, verr := game.ValidateCombat(req, data)
	if verr != nil {
		return &CombatResponse{ErrorMessage: verr.Message}, nil
	}

	stats, err := e.players.Statistics(ctx, playerID, record.StatKills, record.StatXP, record.StatLevel)
	if err != nil {
		return nil, fmt.Errorf("fetching statistics: %w", err)
	}
	vitals, err := e.players.Data(ctx, playerID, record.DataHP, record.DataMaxHP)
	if err != nil {
		return nil, fmt.Errorf("fetching vitals: %w", err)
	}

	level := stats[record.StatLevel]
	if level == 0 {
		level = e.cfg.StartingLevel
	}
	kills := stats[record.StatKills] + len(group.Enemies)
	xp := stats[record.StatXP] + game.GroupXP(group, &data.Enemies)
	maxHP := intData(vitals, record.DataMaxHP, e.cfg.StartingHP)

	ups := game.ResolveLevelUps(data.Levels, level, xp)

	statUpdates := map[string]int{
		record.StatKills: kills,
		record.StatXP:    xp,
	}
	dataUpdates := map[string]string{}
	granted := []string{}

	resp := &CombatResponse{
		Kills:      kills,
		Experience: xp,
	}

	if len(ups) > 0 {
		hpGain := 0
		for _, up := range ups {
			hpGain += up.HP
			if up.Item != "" {
				granted = append(granted, up.Item)
			}
		}
		newLevel := ups[len(ups)-1].Level
		newMax := maxHP + hpGain

		statUpdates[record.StatLevel] = newLevel
		dataUpdates[record.DataHP] = strconv.Itoa(newMax)
		dataUpdates[record.DataMaxHP] = strconv.Itoa(newMax)

		resp.Level = &newLevel
		resp.HitPoints = &newMax
	} else {
		// Without a level-up the client-reported HP is the only record
		// of damage taken during combat, so it is trusted here — and
		// only here.
		hp := req.PlayerHP
		if hp < 0 {
			hp = 0
		}
		if hp > maxHP {
			hp = maxHP
		}
		dataUpdates[record.DataHP] = strconv.Itoa(hp)
	}

	err = e.players.UpdateStatistics(ctx, playerID, statUpdates)
	if err != nil {
		return nil, fmt.Errorf("updating statistics: %w", err)
	}
	_, err = e.players.UpdateData(ctx, playerID, dataUpdates)
	if err != nil {
		return nil, fmt.Errorf("updating vitals: %w", err)
	}

	if group.DropTable != "" && group.DropChance > 0 && e.roll() <= group.DropChance {
		item, err := e.content.EvaluateDropTable(ctx, group.DropTable)
		if err != nil {
			return nil, fmt.Errorf("resolving loot: %w", err)
		}
		granted = append(granted, item)
	}

	if len(granted) > 0 {
		_, err = e.players.Grant(ctx, playerID, granted...)
		if err != nil {
			return nil, fmt.Errorf("granting items: %w", err)
		}
	}
	resp.ItemsGranted = granted

	e.writeEvent(ctx, playerID, eventCombatResolved, map[string]string{
		"planet":     req.Planet,
		"area":       req.Area,
		"enemyGroup": req.EnemyGroup,
	})

	return resp, nil
}
