package gtm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// Client talks to the server-side tag collector (GTM server container,
// measurement-protocol style endpoint).
type Client struct {
	endpoint   string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(endpoint, apiSecret string) *Client {
	return &Client{
		endpoint:  endpoint,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Collect(ctx context.Context, tag queue.TagPayload) error {
	if c.endpoint == "" {
		// Collector not configured; nothing to forward.
		return nil
	}

	clientID := tag.FunnelID
	if tag.LeadID != nil {
		clientID = *tag.LeadID
	}

	params := map[string]any{"funnel_id": tag.FunnelID}
	if tag.PageID != nil {
		params["page_id"] = *tag.PageID
	}
	for k, v := range tag.Params {
		params[k] = v
	}

	payload, err := json.Marshal(collectRequest{
		ClientID: clientID,
		Events:   []collectEvent{{Name: tag.Event, Params: params}},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/mp/collect?api_secret=%s", c.endpoint, c.apiSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("gtm")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		middleware.RecordIntegrationError("gtm")
		return fmt.Errorf("collector rejected tag: %d - %s", resp.StatusCode, string(body))
	}

	return nil
}
