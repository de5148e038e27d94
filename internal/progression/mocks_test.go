package progression

import (
	"context"

	"github.com/halcyon-games/progression/internal/game"
	"github.com/halcyon-games/progression/internal/record"
	"github.com/halcyon-games/progression/internal/title"
)

// mockContent implements title.Store with canned data.
type mockContent struct {
	data    *game.Data
	dataErr error

	lootItem  string
	lootErr   error
	evaluated []string
}

var _ title.Store = (*mockContent)(nil)

func (m *mockContent) GameData(ctx context.Context) (*game.Data, error) {
	if m.dataErr != nil {
		return nil, m.dataErr
	}
	return m.data, nil
}

func (m *mockContent) EvaluateDropTable(ctx context.Context, tableID string) (string, error) {
	m.evaluated = append(m.evaluated, tableID)
	if m.lootErr != nil {
		return "", m.lootErr
	}
	return m.lootItem, nil
}

// mockPlayers implements record.Store, returning canned reads and
// recording every write so tests can assert exactly what was (or was
// not) mutated.
type mockPlayers struct {
	stats    map[string]int
	statsErr error

	data    map[string]string
	dataErr error

	// invQueue is returned front-first by Inventory; the last entry is
	// reused once exhausted.
	invQueue []*record.Inventory
	invErr   error

	granted []record.ItemInstance

	updateStatsErr error
	updateDataErr  error
	grantErr       error
	version        uint32

	statUpdates []map[string]int
	dataUpdates []map[string]string
	grants      [][]string
}

var _ record.Store = (*mockPlayers)(nil)

// writes counts every mutation issued against the store.
func (m *mockPlayers) writes() int {
	return len(m.statUpdates) + len(m.dataUpdates) + len(m.grants)
}

func (m *mockPlayers) Statistics(ctx context.Context, playerID string, names ...string) (map[string]int, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	out := map[string]int{}
	for _, name := range names {
		if v, ok := m.stats[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}

func (m *mockPlayers) UpdateStatistics(ctx context.Context, playerID string, stats map[string]int) error {
	if m.updateStatsErr != nil {
		return m.updateStatsErr
	}
	m.statUpdates = append(m.statUpdates, stats)
	return nil
}

func (m *mockPlayers) Data(ctx context.Context, playerID string, keys ...string) (map[string]string, error) {
	if m.dataErr != nil {
		return nil, m.dataErr
	}
	out := map[string]string{}
	for _, key := range keys {
		if v, ok := m.data[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (m *mockPlayers) UpdateData(ctx context.Context, playerID string, data map[string]string) (uint32, error) {
	if m.updateDataErr != nil {
		return 0, m.updateDataErr
	}
	m.dataUpdates = append(m.dataUpdates, data)
	return m.version, nil
}

func (m *mockPlayers) Inventory(ctx context.Context, playerID string) (*record.Inventory, error) {
	if m.invErr != nil {
		return nil, m.invErr
	}
	if len(m.invQueue) == 0 {
		return &record.Inventory{Currency: map[string]int{}}, nil
	}
	inv := m.invQueue[0]
	if len(m.invQueue) > 1 {
		m.invQueue = m.invQueue[1:]
	}
	return inv, nil
}

func (m *mockPlayers) Grant(ctx context.Context, playerID string, itemIDs ...string) ([]record.ItemInstance, error) {
	if m.grantErr != nil {
		return nil, m.grantErr
	}
	m.grants = append(m.grants, itemIDs)
	return m.granted, nil
}

type recordedEvent struct {
	playerID string
	event    string
}

// mockEvents implements EventWriter.
type mockEvents struct {
	events []recordedEvent
	err    error
}

func (m *mockEvents) Write(ctx context.Context, playerID, event string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, recordedEvent{playerID: playerID, event: event})
	return nil
}
