package plainly

import (
	"context"
	"net/http"

	"github.com/koios/plainly-mcp/pkg/models"
)

// ListWebhooks lists the registered webhooks
func (c *Client) ListWebhooks(ctx context.Context) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	if err := c.do(ctx, http.MethodGet, "/webhooks", nil, nil, &webhooks); err != nil {
		return nil, err
	}
	return webhooks, nil
}

// CreateWebhook registers a callback URL for render events
func (c *Client) CreateWebhook(ctx context.Context, req models.CreateWebhookRequest) (*models.Webhook, error) {
	if req.Events == nil {
		req.Events = []string{}
	}
	var webhook models.Webhook
	if err := c.do(ctx, http.MethodPost, "/webhooks", nil, req, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// DeleteWebhook removes a webhook
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/webhooks/%s", webhookID), nil, nil, nil)
}
