package klaviyo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ybbus/httpretry"

	"github.com/commercedata/shopsync/internal/config"
)

const (
	baseURL     = "https://a.klaviyo.com/api"
	apiRevision = "2024-10-15"
)

// Client is a thin Klaviyo REST client for one account.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient creates a client from tenant credentials.
func NewClient(cfg config.KlaviyoConfig) *Client {
	return &Client{
		httpClient: httpretry.NewDefaultClient(),
		apiKey:     cfg.APIKey,
	}
}

// FetchCampaigns retrieves one page of sent email campaigns scheduled
// at or after startDate. cursor is the links.next URL of the previous
// page; empty for the first page.
func (c *Client) FetchCampaigns(ctx context.Context, startDate, cursor string) ([]byte, error) {
	endpoint := cursor
	if endpoint == "" {
		filter := fmt.Sprintf(
			"and(equals(messages.channel,'email'),equals(status,'Sent'),greater-or-equal(scheduled_at,%sT00:00:00Z))",
			startDate,
		)
		params := url.Values{}
		params.Set("filter", filter)
		params.Set("fields[campaign-message]", "content.subject,content.preview_text")
		params.Set("include", "campaign-messages")
		endpoint = baseURL + "/campaigns?" + params.Encode()
	}

	return c.get(ctx, endpoint)
}

// FetchStats runs a campaign-values report over the given campaign ids.
func (c *Client) FetchStats(ctx context.Context, campaignIDs []string, conversionMetricID string) ([]byte, error) {
	quoted := make([]string, len(campaignIDs))
	for i, id := range campaignIDs {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	filter := fmt.Sprintf("contains-any(campaign_id,[%s])", strings.Join(quoted, ","))

	body := map[string]any{
		"data": map[string]any{
			"type": "campaign-values-report",
			"attributes": map[string]any{
				"timeframe": map[string]string{"key": "last_365_days"},
				"statistics": []string{
					"unsubscribes", "clicks_unique", "conversions", "delivered",
					"recipients", "bounced", "opens_unique", "spam_complaints",
				},
				"filter":               filter,
				"conversion_metric_id": conversionMetricID,
			},
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode report request: %w", err)
	}

	return c.post(ctx, baseURL+"/campaign-values-reports", encoded)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Klaviyo-API-Key "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Revision", apiRevision)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("klaviyo request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("klaviyo api returned %d: %s", resp.StatusCode, raw)
	}
	return raw, nil
}
