package progression

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/halcyon-games/progression/internal/record"
)

func TestEquipItem_MergesIntoExistingMap(t *testing.T) {
	players := &mockPlayers{
		data:    map[string]string{record.DataEquipment: `{"head":"A"}`},
		version: 7,
	}
	events := &mockEvents{}
	e := NewEngine(Config{}, &mockContent{}, players, events)

	resp, err := e.EquipItem(context.Background(), "p-1", &EquipRequest{
		Multiple: []EquipPair{{Slot: "feet", Item: "B"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "data version", resp.DataVersion, uint32(7))
	testutil.AssertEqual(t, "data updates", len(players.dataUpdates), 1)

	var persisted map[string]string
	err = json.Unmarshal([]byte(players.dataUpdates[0][record.DataEquipment]), &persisted)
	if err != nil {
		t.Fatalf("decoding persisted equipment: %v", err)
	}

	// Existing slots survive the merge.
	testutil.AssertEqual(t, "head", persisted["head"], "A")
	testutil.AssertEqual(t, "feet", persisted["feet"], "B")
	testutil.AssertEqual(t, "slot count", len(persisted), 2)

	testutil.AssertEqual(t, "events", len(events.events), 1)
	testutil.AssertEqual(t, "event name", events.events[0].event, "equipped_item")
}

func TestEquipItem_SingleAndBatch(t *testing.T) {
	tests := map[string]struct {
		req      EquipRequest
		existing string
		expSlots map[string]string
	}{
		"single pair creates map": {
			req:      EquipRequest{Single: &EquipPair{Slot: "head", Item: "helm-1"}},
			expSlots: map[string]string{"head": "helm-1"},
		},
		"request overwrites same slot": {
			req:      EquipRequest{Multiple: []EquipPair{{Slot: "head", Item: "helm-2"}}},
			existing: `{"head":"helm-1","feet":"boots-1"}`,
			expSlots: map[string]string{"head": "helm-2", "feet": "boots-1"},
		},
		"single and batch combined": {
			req: EquipRequest{
				Single:   &EquipPair{Slot: "head", Item: "helm-1"},
				Multiple: []EquipPair{{Slot: "feet", Item: "boots-1"}, {Slot: "hands", Item: "gloves-1"}},
			},
			expSlots: map[string]string{"head": "helm-1", "feet": "boots-1", "hands": "gloves-1"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			players := &mockPlayers{data: map[string]string{}}
			if tt.existing != "" {
				players.data[record.DataEquipment] = tt.existing
			}
			e := NewEngine(Config{}, &mockContent{}, players, &mockEvents{})

			_, err := e.EquipItem(context.Background(), "p-1", &tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var persisted map[string]string
			err = json.Unmarshal([]byte(players.dataUpdates[0][record.DataEquipment]), &persisted)
			if err != nil {
				t.Fatalf("decoding persisted equipment: %v", err)
			}

			testutil.AssertEqual(t, "slot count", len(persisted), len(tt.expSlots))
			for slot, item := range tt.expSlots {
				testutil.AssertEqual(t, slot, persisted[slot], item)
			}
		})
	}
}

func TestEquipItem_EmptyRequest(t *testing.T) {
	players := &mockPlayers{}
	e := NewEngine(Config{}, &mockContent{}, players, &mockEvents{})

	_, err := e.EquipItem(context.Background(), "p-1", &EquipRequest{})
	if !errors.Is(err, ErrNoAssignments) {
		t.Fatalf("expected ErrNoAssignments, got %v", err)
	}
	testutil.AssertEqual(t, "writes", players.writes(), 0)
}

func TestEquipItem_WriteFailure(t *testing.T) {
	players := &mockPlayers{updateDataErr: errors.New("record service unavailable")}
	events := &mockEvents{}
	e := NewEngine(Config{}, &mockContent{}, players, events)

	_, err := e.EquipItem(context.Background(), "p-1", &EquipRequest{
		Single: &EquipPair{Slot: "head", Item: "helm-1"},
	})
	if err == nil {
		t.Fatal("expected an infrastructure error")
	}
	testutil.AssertEqual(t, "events", len(events.events), 0)
}
