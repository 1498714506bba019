package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ybbus/httpretry"

	"github.com/commercedata/shopsync/internal/config"
)

const defaultAPIVersion = "2024-07"

// Client is a thin Admin GraphQL client for one shop.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a client from tenant credentials.
func NewClient(cfg config.ShopifyConfig) *Client {
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	return &Client{
		httpClient: httpretry.NewDefaultClient(),
		endpoint:   fmt.Sprintf("https://%s/admin/api/%s/graphql.json", cfg.ShopURL, version),
		token:      cfg.APIToken,
	}
}

// Execute posts one GraphQL document and returns the raw response body.
func (c *Client) Execute(ctx context.Context, query string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify api returned %d: %s", resp.StatusCode, raw)
	}
	return raw, nil
}
