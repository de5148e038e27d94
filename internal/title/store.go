// Package title provides read-only access to static game content: the
// world topology, enemy definitions, and the leveling ladder, plus the
// drop-table evaluator. Content is served either by the remote
// reference data service or, for local deployments, from JSON assets
// on disk.
package title

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/halcyon-games/progression/internal/game"
)

// Store is the adapter interface over the reference data store.
type Store interface {
	// GameData reads the full set of reference data for one request.
	GameData(ctx context.Context) (*game.Data, error)

	// EvaluateDropTable resolves one random item from the named drop
	// table. The selection semantics are owned by the evaluator; the
	// engine only sees a single item identifier.
	EvaluateDropTable(ctx context.Context, tableID string) (string, error)
}

// decodeGameData decodes the raw title blobs into reference entities.
// The blobs are keyed by the fixed title data keys and each contain a
// JSON document.
func decodeGameData(blobs map[string]string) (*game.Data, error) {
	data := &game.Data{}

	planets, ok := blobs[game.TitleKeyPlanets]
	if !ok {
		return nil, fmt.Errorf("title data missing %q", game.TitleKeyPlanets)
	}
	var planetDoc struct {
		Planets []game.Planet `json:"planets"`
	}
	if err := json.Unmarshal([]byte(planets), &planetDoc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", game.TitleKeyPlanets, err)
	}
	data.Planets = planetDoc.Planets

	enemies, ok := blobs[game.TitleKeyEnemies]
	if !ok {
		return nil, fmt.Errorf("title data missing %q", game.TitleKeyEnemies)
	}
	if err := json.Unmarshal([]byte(enemies), &data.Enemies); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", game.TitleKeyEnemies, err)
	}

	levels, ok := blobs[game.TitleKeyLevels]
	if !ok {
		return nil, fmt.Errorf("title data missing %q", game.TitleKeyLevels)
	}
	var levelDoc struct {
		Levels []game.LevelDef `json:"levels"`
	}
	if err := json.Unmarshal([]byte(levels), &levelDoc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", game.TitleKeyLevels, err)
	}
	data.Levels = levelDoc.Levels

	return data, nil
}
