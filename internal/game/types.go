package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Title data blob keys. These must match the reference store schema
// byte-for-byte.
const (
	TitleKeyPlanets = "Planets"
	TitleKeyEnemies = "Enemies"
	TitleKeyLevels  = "Levels"
)

// Area is a named region on a planet listing the enemy groups that can
// be fought there.
type Area struct {
	Name        string   `json:"name"`
	EnemyGroups []string `json:"enemyGroups"`
}

// Planet is a node in the world topology.
type Planet struct {
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// Enemy is a single enemy definition with its experience yield.
type Enemy struct {
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

// EnemyGroupDef is the full definition of an enemy group: the enemies
// it contains (duplicates allowed, each counts) and an optional drop
// table with its trigger chance.
type EnemyGroupDef struct {
	Name       string   `json:"name"`
	Enemies    []string `json:"enemies"`
	DropTable  string   `json:"droptable,omitempty"`
	DropChance float64  `json:"dropchance,omitempty"`
}

// EnemyData is the decoded Enemies title blob.
type EnemyData struct {
	Enemies     []Enemy         `json:"enemies"`
	EnemyGroups []EnemyGroupDef `json:"enemyGroups"`
}

// Enemy returns the enemy definition with the given name, or nil.
func (d *EnemyData) Enemy(name string) *Enemy {
	for i := range d.Enemies {
		if d.Enemies[i].Name == name {
			return &d.Enemies[i]
		}
	}
	return nil
}

// Group returns the enemy group definition with the given name, or nil.
func (d *EnemyData) Group(name string) *EnemyGroupDef {
	for i := range d.EnemyGroups {
		if d.EnemyGroups[i].Name == name {
			return &d.EnemyGroups[i]
		}
	}
	return nil
}

// LevelDef is one rung of the leveling ladder. XP is the cumulative
// experience required to hold the level, HP the hit points granted on
// reaching it, Item an optional item reward.
type LevelDef struct {
	Level int    `json:"level"`
	XP    int    `json:"xp"`
	HP    int    `json:"hp"`
	Item  string `json:"item,omitempty"`
}

// Data is a full decoded set of reference data, immutable for the
// duration of a request.
type Data struct {
	Planets []Planet   `json:"planets"`
	Enemies EnemyData  `json:"enemies"`
	Levels  []LevelDef `json:"levels"`
}

// Planet returns the planet with the given name, or nil.
func (d *Data) Planet(name string) *Planet {
	for i := range d.Planets {
		if d.Planets[i].Name == name {
			return &d.Planets[i]
		}
	}
	return nil
}

// Validate checks the reference data for internal consistency. Enemy
// groups must only list defined enemies, and the level ladder must be
// ordered with non-decreasing thresholds.
func (d *Data) Validate() error {
	el := errors.NewErrorList()

	for _, g := range d.Enemies.EnemyGroups {
		if g.Name == "" {
			el.Add(fmt.Errorf("enemy group with empty name"))
		}
		if len(g.Enemies) == 0 {
			el.Add(fmt.Errorf("enemy group %q has no enemies", g.Name))
		}
		for _, e := range g.Enemies {
			if d.Enemies.Enemy(e) == nil {
				el.Add(fmt.Errorf("enemy group %q references unknown enemy %q", g.Name, e))
			}
		}
		if g.DropChance < 0 || g.DropChance > 1 {
			el.Add(fmt.Errorf("enemy group %q drop chance %v out of range", g.Name, g.DropChance))
		}
	}

	for i, l := range d.Levels {
		if i == 0 {
			continue
		}
		prev := d.Levels[i-1]
		if l.Level != prev.Level+1 {
			el.Add(fmt.Errorf("level ladder skips from %d to %d", prev.Level, l.Level))
		}
		if l.XP < prev.XP {
			el.Add(fmt.Errorf("level %d requires less experience than level %d", l.Level, prev.Level))
		}
	}

	return el.Err()
}
