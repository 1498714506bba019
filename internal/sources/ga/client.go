package ga

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

const baseURL = "https://analyticsdata.googleapis.com/v1beta"

// Client is a thin GA4 Data API client for one property.
type Client struct {
	httpClient *http.Client
	propertyID string
	token      string
}

// NewClient creates a client from tenant credentials.
func NewClient(cfg config.AnalyticsConfig) *Client {
	return &Client{
		httpClient: httpretry.NewDefaultClient(),
		propertyID: cfg.PropertyID,
		token:      cfg.AccessToken,
	}
}

// RunReport fetches channel/date/source session metrics over a closed
// date range.
func (c *Client) RunReport(ctx context.Context, startDate, endDate string) ([]byte, error) {
	body := map[string]any{
		"dimensions": []map[string]string{
			{"name": "sessionDefaultChannelGroup"},
			{"name": "date"},
			{"name": "sessionSource"},
		},
		"metrics": []map[string]string{
			{"name": "sessions"},
			{"name": "addToCarts"},
			{"name": "checkouts"},
			{"name": "transactions"},
			{"name": "totalRevenue"},
		},
		"dateRanges": []map[string]string{
			{"startDate": startDate, "endDate": endDate},
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode report request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/properties/%s:runReport", baseURL, c.propertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics api returned %d: %s", resp.StatusCode, raw)
	}
	return raw, nil
}
