package title

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/halcyon-games/progression/internal/game"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote reference data service over HTTP/JSON.
// It implements Store.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

type ClientOpt func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a reference data service client.
func NewClient(baseURL, secret string, opts ...ClientOpt) *Client {
	c := &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ Store = (*Client)(nil)

func (c *Client) GameData(ctx context.Context) (*game.Data, error) {
	req := struct {
		Keys []string `json:"keys"`
	}{Keys: []string{game.TitleKeyPlanets, game.TitleKeyEnemies, game.TitleKeyLevels}}

	var resp struct {
		Data map[string]string `json:"data"`
	}

	err := c.post(ctx, "/v1/title/data", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("reading title data: %w", err)
	}

	return decodeGameData(resp.Data)
}

func (c *Client) EvaluateDropTable(ctx context.Context, tableID string) (string, error) {
	req := struct {
		TableID string `json:"table_id"`
	}{TableID: tableID}

	var resp struct {
		ItemID string `json:"item_id"`
	}

	err := c.post(ctx, "/v1/title/drop-tables/evaluate", req, &resp)
	if err != nil {
		return "", fmt.Errorf("evaluating drop table %q: %w", tableID, err)
	}
	if resp.ItemID == "" {
		return "", fmt.Errorf("drop table %q returned no item", tableID)
	}
	return resp.ItemID, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Secret-Key", c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling reference data service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reference data service returned %d: %s", resp.StatusCode, body)
	}

	err = json.NewDecoder(resp.Body).Decode(respBody)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
