package game

// LevelUp is a single threshold crossing granting hit points and
// optionally an item.
type LevelUp struct {
	Level int
	HP    int
	Item  string
}

// levelDef returns the definition for the given level, or nil if the
// ladder has no such rung.
func levelDef(table []LevelDef, level int) *LevelDef {
	for i := range table {
		if table[i].Level == level {
			return &table[i]
		}
	}
	return nil
}

// ResolveLevelUps walks the ladder one level at a time from the
// player's current level, emitting a LevelUp for each consecutive
// threshold the total experience meets. Levels are never skipped: a
// single large award still crosses thresholds in sequence. The walk
// stops at the first unmet threshold, or when the next level has no
// definition (max level). Pure and deterministic.
func ResolveLevelUps(table []LevelDef, level, xp int) []LevelUp {
	var ups []LevelUp
	for {
		next := levelDef(table, level+1)
		if next == nil || xp < next.XP {
			return ups
		}
		ups = append(ups, LevelUp{
			Level: next.Level,
			HP:    next.HP,
			Item:  next.Item,
		})
		level = next.Level
	}
}
