package game

import "fmt"

// CombatRequest is a client-submitted claim that an enemy group was
// defeated. PlayerHP is the client's reported remaining hit points;
// it is only trusted when no level-up occurs.
type CombatRequest struct {
	Planet     string `json:"planet"`
	Area       string `json:"area"`
	EnemyGroup string `json:"enemyGroup"`
	PlayerHP   int    `json:"playerHP"`
}

// ValidationError is a domain validation failure. It is expected,
// player-facing, and carried in the response body rather than treated
// as a system failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateCombat checks a combat request against reference data,
// short-circuiting on the first failure. It returns the matched group
// definition on success. The checks run in order: planet exists, area
// exists on that planet, the group is listed under the area, and the
// group has a full definition in enemy data.
func ValidateCombat(req *CombatRequest, data *Data) (*EnemyGroupDef, *ValidationError) {
	planet := data.Planet(req.Planet)
	if planet == nil {
		return nil, &ValidationError{fmt.Sprintf("Planet %s not found.", req.Planet)}
	}

	var area *Area
	for i := range planet.Areas {
		if planet.Areas[i].Name == req.Area {
			area = &planet.Areas[i]
			break
		}
	}
	if area == nil {
		return nil, &ValidationError{fmt.Sprintf("Area %s not found on planet %s.", req.Area, req.Planet)}
	}

	listed := false
	for _, g := range area.EnemyGroups {
		if g == req.EnemyGroup {
			listed = true
			break
		}
	}
	if !listed {
		return nil, &ValidationError{fmt.Sprintf("Enemy group %s not found in area %s on planet %s.", req.EnemyGroup, req.Area, req.Planet)}
	}

	group := data.Enemies.Group(req.EnemyGroup)
	if group == nil {
		return nil, &ValidationError{fmt.Sprintf("Enemy group %s not found.", req.EnemyGroup)}
	}

	return group, nil
}

// GroupXP returns the total experience yield of a group. Duplicate
// enemies each contribute their own yield; enemies missing from the
// reference data contribute nothing.
func GroupXP(group *EnemyGroupDef, enemies *EnemyData) int {
	total := 0
	for _, name := range group.Enemies {
		if e := enemies.Enemy(name); e != nil {
			total += e.XP
		}
	}
	return total
}
