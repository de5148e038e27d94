package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/halcyon-games/progression/internal/record"
)

type RecordConfig struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}

func (c *RecordConfig) validate() error {
	el := errors.NewErrorList()

	if c.URL == "" {
		el.Add(fmt.Errorf("url is required"))
	}
	if c.Secret == "" {
		el.Add(fmt.Errorf("secret is required"))
	}

	return el.Err()
}

func (c *RecordConfig) BuildClient() *record.Client {
	return record.NewClient(c.URL, c.Secret)
}
