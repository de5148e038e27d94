// Package progression is the server-authoritative progression engine.
// It turns raw client-submitted events into validated, consistent
// mutations of the player's record: combat resolution, leveling,
// inventory grants, and equipment changes. All player state lives in
// the external record store; all static content comes from the
// reference data store.
package progression

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/halcyon-games/progression/internal/record"
	"github.com/halcyon-games/progression/internal/title"
)

// Defaults for a brand-new player.
const (
	DefaultStartingHP    = 100
	DefaultStartingLevel = 1
)

// EventWriter records telemetry events. Writes are fire-and-forget:
// the engine logs failures and never fails a request over them.
type EventWriter interface {
	Write(ctx context.Context, playerID, event string, payload any) error
}

// Telemetry event names.
const (
	eventCombatResolved = "combat_resolved"
	eventTraveledToBase = "traveled_to_base"
	eventEquippedItem   = "equipped_item"
)

// Config holds the engine's starting-state values.
type Config struct {
	// StartingHP is both current and max HP for a player whose vitals
	// have never been initialized.
	StartingHP int

	// StartingLevel is the level assumed when the level statistic is
	// absent.
	StartingLevel int

	// StartingPack is the catalog item granted on first login.
	StartingPack string
}

// Engine orchestrates the progression operations. Each call is one
// sequential unit of work: reads first, pure computation, then writes.
// There is no cross-request locking; per-player consistency relies on
// the record store's own atomicity.
type Engine struct {
	cfg     Config
	content title.Store
	players record.Store
	events  EventWriter

	// roll produces the drop-chance roll in [0, 1). Injectable for
	// deterministic tests.
	roll func() float64
}

type EngineOpt func(*Engine)

// WithRollFunc overrides the drop-chance roll source.
func WithRollFunc(roll func() float64) EngineOpt {
	return func(e *Engine) {
		e.roll = roll
	}
}

// NewEngine creates a progression engine over the two external stores
// and the telemetry writer.
func NewEngine(cfg Config, content title.Store, players record.Store, events EventWriter, opts ...EngineOpt) *Engine {
	if cfg.StartingHP == 0 {
		cfg.StartingHP = DefaultStartingHP
	}
	if cfg.StartingLevel == 0 {
		cfg.StartingLevel = DefaultStartingLevel
	}
	if cfg.StartingPack == "" {
		cfg.StartingPack = record.ItemStartingPack
	}

	e := &Engine{
		cfg:     cfg,
		content: content,
		players: players,
		events:  events,
		roll:    rand.Float64,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// writeEvent records a telemetry event, logging on failure instead of
// propagating it.
func (e *Engine) writeEvent(ctx context.Context, playerID, event string, payload any) {
	if e.events == nil {
		return
	}
	if err := e.events.Write(ctx, playerID, event, payload); err != nil {
		slog.WarnContext(ctx, "writing telemetry event", "event", event, "player", playerID, "error", err)
	}
}

// intData parses a keyed-data value as an integer, falling back to def
// when the key is absent or unparseable.
func intData(data map[string]string, key string, def int) int {
	raw, ok := data[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
