package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/halcyon-games/progression/internal/progression"
)

// EngineConfig sets the starting state for brand-new players. Zero
// values fall back to the engine defaults.
type EngineConfig struct {
	StartingHP    int    `json:"starting_hp"`
	StartingLevel int    `json:"starting_level"`
	StartingPack  string `json:"starting_pack"`
}

func (c *EngineConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartingHP < 0 {
		el.Add(fmt.Errorf("starting_hp must not be negative"))
	}
	if c.StartingLevel < 0 {
		el.Add(fmt.Errorf("starting_level must not be negative"))
	}

	return el.Err()
}

func (c *EngineConfig) engineConfig() progression.Config {
	return progression.Config{
		StartingHP:    c.StartingHP,
		StartingLevel: c.StartingLevel,
		StartingPack:  c.StartingPack,
	}
}
