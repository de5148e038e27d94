package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote player record service over HTTP/JSON.
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

// NewClient creates a record service client. The secret is sent as the
// X-Secret-Key header on every request.
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

func (c *Client) Statistics(ctx context.Context, playerID string, names ...string) (map[string]int, error) {
	req := struct {
		Names []string `json:"names"`
	}{Names: names}

	var resp struct {
		Statistics []struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		} `json:"statistics"`
	}

	err := c.post(ctx, c.playerPath(playerID, "statistics/get"), req, &resp)
	if err != nil {
		return nil, fmt.Errorf("reading statistics: %w", err)
	}

	stats := make(map[string]int, len(resp.Statistics))
	for _, s := range resp.Statistics {
		stats[s.Name] = s.Value
	}
	return stats, nil
}

func (c *Client) UpdateStatistics(ctx context.Context, playerID string, stats map[string]int) error {
	type update struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	req := struct {
		Statistics []update `json:"statistics"`
	}{}
	for name, value := range stats {
		req.Statistics = append(req.Statistics, update{Name: name, Value: value})
	}

	err := c.post(ctx, c.playerPath(playerID, "statistics/update"), req, nil)
	if err != nil {
		return fmt.Errorf("updating statistics: %w", err)
	}
	return nil
}

func (c *Client) Data(ctx context.Context, playerID string, keys ...string) (map[string]string, error) {
	req := struct {
		Keys []string `json:"keys"`
	}{Keys: keys}

	var resp struct {
		Data map[string]string `json:"data"`
	}

	err := c.post(ctx, c.playerPath(playerID, "data/get"), req, &resp)
	if err != nil {
		return nil, fmt.Errorf("reading player data: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) UpdateData(ctx context.Context, playerID string, data map[string]string) (uint32, error) {
	req := struct {
		Data       map[string]string `json:"data"`
		Permission string            `json:"permission"`
	}{
		Data:       data,
		Permission: "private",
	}

	var resp struct {
		Version uint32 `json:"version"`
	}

	err := c.post(ctx, c.playerPath(playerID, "data/update"), req, &resp)
	if err != nil {
		return 0, fmt.Errorf("updating player data: %w", err)
	}
	return resp.Version, nil
}

func (c *Client) Inventory(ctx context.Context, playerID string) (*Inventory, error) {
	var resp Inventory

	err := c.post(ctx, c.playerPath(playerID, "inventory"), struct{}{}, &resp)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	if resp.Currency == nil {
		resp.Currency = map[string]int{}
	}
	return &resp, nil
}

func (c *Client) Grant(ctx context.Context, playerID string, itemIDs ...string) ([]ItemInstance, error) {
	req := struct {
		ItemIDs []string `json:"item_ids"`
	}{ItemIDs: itemIDs}

	var resp struct {
		Results []ItemInstance `json:"results"`
	}

	err := c.post(ctx, c.playerPath(playerID, "inventory/grant"), req, &resp)
	if err != nil {
		return nil, fmt.Errorf("granting items: %w", err)
	}

	// Bundles of the unpack class are consumed right away so their
	// contents land in the inventory.
	for _, item := range resp.Results {
		if !item.IsUnpack() {
			continue
		}
		err := c.consume(ctx, playerID, item.InstanceID, item.RemainingUses)
		if err != nil {
			return nil, fmt.Errorf("unpacking %s: %w", item.ItemID, err)
		}
	}

	return resp.Results, nil
}

func (c *Client) consume(ctx context.Context, playerID, instanceID string, count int) error {
	req := struct {
		InstanceID string `json:"instance_id"`
		Count      int    `json:"count"`
	}{
		InstanceID: instanceID,
		Count:      count,
	}

	err := c.post(ctx, c.playerPath(playerID, "inventory/consume"), req, nil)
	if err != nil {
		return fmt.Errorf("consuming item: %w", err)
	}
	return nil
}

func (c *Client) playerPath(playerID, op string) string {
	return fmt.Sprintf("/v1/players/%s/%s", url.PathEscape(playerID), op)
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
		return fmt.Errorf("calling record service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("record service returned %d: %s", resp.StatusCode, body)
	}

	if respBody == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(respBody)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
