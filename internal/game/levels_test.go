package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestResolveLevelUps(t *testing.T) {
	table := []LevelDef{
		{Level: 1, XP: 0},
		{Level: 2, XP: 100, HP: 10, Item: "blaster-mk2"},
		{Level: 3, XP: 300, HP: 15},
	}

	tests := map[string]struct {
		level  int
		xp     int
		expect []LevelUp
	}{
		"threshold not met": {
			level: 1,
			xp:    50,
		},
		"one level up": {
			level: 1,
			xp:    250,
			expect: []LevelUp{
				{Level: 2, HP: 10, Item: "blaster-mk2"},
			},
		},
		"exact threshold counts": {
			level: 1,
			xp:    100,
			expect: []LevelUp{
				{Level: 2, HP: 10, Item: "blaster-mk2"},
			},
		},
		"two levels from one award": {
			level: 1,
			xp:    350,
			expect: []LevelUp{
				{Level: 2, HP: 10, Item: "blaster-mk2"},
				{Level: 3, HP: 15},
			},
		},
		"already at max level": {
			level: 3,
			xp:    1000000,
		},
		"above ladder": {
			level: 7,
			xp:    1000000,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ups := ResolveLevelUps(table, tt.level, tt.xp)

			testutil.AssertEqual(t, "level up count", len(ups), len(tt.expect))
			for i := range tt.expect {
				if i >= len(ups) {
					break
				}
				testutil.AssertEqual(t, "level", ups[i].Level, tt.expect[i].Level)
				testutil.AssertEqual(t, "hp", ups[i].HP, tt.expect[i].HP)
				testutil.AssertEqual(t, "item", ups[i].Item, tt.expect[i].Item)
			}
		})
	}
}

func TestResolveLevelUps_Deterministic(t *testing.T) {
	table := []LevelDef{
		{Level: 1, XP: 0},
		{Level: 2, XP: 100, HP: 10},
		{Level: 3, XP: 300, HP: 15},
	}

	first := ResolveLevelUps(table, 1, 350)
	second := ResolveLevelUps(table, 1, 350)

	testutil.AssertEqual(t, "count", len(first), len(second))
	for i := range first {
		testutil.AssertEqual(t, "level", first[i].Level, second[i].Level)
	}
}

func TestResolveLevelUps_EmptyTable(t *testing.T) {
	ups := ResolveLevelUps(nil, 1, 500)
	testutil.AssertEqual(t, "level up count", len(ups), 0)
}
