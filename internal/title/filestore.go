package title

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"

	"github.com/halcyon-games/progression/internal/game"
)

// dropTableKey is the on-disk document holding drop tables. It only
// exists in file-backed deployments; the production evaluator lives in
// the reference data service.
const dropTableKey = "DropTables"

// dropEntry is one weighted entry in a file-backed drop table.
type dropEntry struct {
	Item   string `json:"item"`
	Weight int    `json:"weight"`
}

// titleAsset is the on-disk document envelope, one JSON file per
// title data key.
type titleAsset struct {
	Version uint            `json:"version"`
	Key     string          `json:"key"`
	Spec    json.RawMessage `json:"spec"`
}

func (a *titleAsset) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}
	if a.Key == "" {
		el.Add(fmt.Errorf("key must be set"))
	}
	if len(a.Spec) == 0 {
		el.Add(fmt.Errorf("spec must be set"))
	}

	switch a.Key {
	case "", game.TitleKeyPlanets, game.TitleKeyEnemies, game.TitleKeyLevels, dropTableKey:
	default:
		el.Add(fmt.Errorf("unknown title data key %q", a.Key))
	}

	return el.Err()
}

// FileStore serves reference data from JSON asset files in a
// directory, for local and dev deployments. It implements Store. The
// data is loaded and validated once at construction; the store is
// read-only afterwards.
type FileStore struct {
	data   *game.Data
	tables map[string][]dropEntry

	pick func(n int) int
}

type FileStoreOpt func(*FileStore)

// WithPickFunc overrides the random index selection used by drop-table
// evaluation.
func WithPickFunc(pick func(n int) int) FileStoreOpt {
	return func(s *FileStore) {
		s.pick = pick
	}
}

// NewFileStore loads every .json asset under path. Each file carries
// one title data document; duplicate keys are an error.
func NewFileStore(path string, opts ...FileStoreOpt) (*FileStore, error) {
	s := &FileStore{
		tables: map[string][]dropEntry{},
		pick:   rand.IntN,
	}

	for _, opt := range opts {
		opt(s)
	}

	blobs := map[string]string{}

	err := filepath.Walk(path, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		asset, err := loadAsset(p)
		if err != nil {
			return err
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(p), err)
		}

		if _, ok := blobs[asset.Key]; ok {
			return fmt.Errorf("duplicate title data key: %s", asset.Key)
		}
		blobs[asset.Key] = string(asset.Spec)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if raw, ok := blobs[dropTableKey]; ok {
		var doc struct {
			Tables map[string][]dropEntry `json:"tables"`
		}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", dropTableKey, err)
		}
		s.tables = doc.Tables
	}

	data, err := decodeGameData(blobs)
	if err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validating reference data: %w", err)
	}
	s.data = data

	return s, nil
}

func loadAsset(path string) (*titleAsset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var asset titleAsset
	err = json.Unmarshal(jsonData, &asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return &asset, nil
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) GameData(ctx context.Context) (*game.Data, error) {
	return s.data, nil
}

// EvaluateDropTable picks one entry from the named table, weighted by
// entry weight.
func (s *FileStore) EvaluateDropTable(ctx context.Context, tableID string) (string, error) {
	entries, ok := s.tables[tableID]
	if !ok {
		return "", fmt.Errorf("drop table %q not found", tableID)
	}

	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return "", fmt.Errorf("drop table %q has no weighted entries", tableID)
	}

	roll := s.pick(total)
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		roll -= e.Weight
		if roll < 0 {
			return e.Item, nil
		}
	}

	// Unreachable: roll < total and weights sum to total.
	return entries[len(entries)-1].Item, nil
}
