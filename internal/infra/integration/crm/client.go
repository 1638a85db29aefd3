package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// Client forwards converted leads to the CRM's inbound leads endpoint.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiToken: os.Getenv("CRM_API_TOKEN"),
		baseURL:  os.Getenv("CRM_BASE_URL"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ForwardLead(ctx context.Context, tag queue.TagPayload) error {
	if c.apiToken == "" || c.baseURL == "" {
		log.Println("⚠️ CRM: not configured, skipping lead forward")
		return nil
	}

	lead := inboundLead{
		Name:     stringParam(tag.Params, "name"),
		Email:    stringParam(tag.Params, "email"),
		Phone:    stringParam(tag.Params, "phone"),
		Source:   tag.FunnelID,
		Campaign: stringParam(tag.Params, "utm_campaign"),
	}
	if tag.LeadID != nil {
		lead.LeadID = *tag.LeadID
	}

	payload, _ := json.Marshal(lead)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inbound/leads", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("crm")
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("crm")
		return fmt.Errorf("crm rejected lead: %d - %s", resp.StatusCode, string(body))
	}

	var result inboundLeadResponse
	if err := json.Unmarshal(body, &result); err == nil && result.ID != "" {
		log.Printf("✅ CRM: lead forwarded as #%s (%s)", result.ID, lead.Email)
	}

	return nil
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}
