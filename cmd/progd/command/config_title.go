package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/halcyon-games/progression/internal/title"
)

// TitleConfig selects where reference data comes from: the remote
// reference data service (url) or local JSON assets (asset_path) for
// dev deployments. Exactly one must be set.
type TitleConfig struct {
	URL       string `json:"url,omitempty"`
	Secret    string `json:"secret,omitempty"`
	AssetPath string `json:"asset_path,omitempty"`
}

func (c *TitleConfig) validate() error {
	el := errors.NewErrorList()

	if c.URL == "" && c.AssetPath == "" {
		el.Add(fmt.Errorf("one of url or asset_path is required"))
	}
	if c.URL != "" && c.AssetPath != "" {
		el.Add(fmt.Errorf("url and asset_path are mutually exclusive"))
	}
	if c.URL != "" && c.Secret == "" {
		el.Add(fmt.Errorf("secret is required with url"))
	}
	if c.AssetPath != "" {
		_, err := os.Stat(c.AssetPath)
		if err != nil {
			el.Add(fmt.Errorf("invalid asset_path %q: %w", c.AssetPath, err))
		}
	}

	return el.Err()
}

func (c *TitleConfig) BuildStore() (title.Store, error) {
	if c.URL != "" {
		return title.NewClient(c.URL, c.Secret), nil
	}

	store, err := title.NewFileStore(c.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("loading title assets: %w", err)
	}
	return store, nil
}
