package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Listener ListenerConfig `json:"listener"`
	Nats     NatsConfig     `json:"nats"`
	Title    TitleConfig    `json:"title"`
	Record   RecordConfig   `json:"record"`
	Engine   EngineConfig   `json:"engine"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Listener.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Title.validate())
	el.Add(c.Record.validate())
	el.Add(c.Engine.validate())

	return el.Err()
}
