package plainly

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/koios/plainly-mcp/pkg/models"
)

// CreateRender starts a render
func (c *Client) CreateRender(ctx context.Context, req models.RenderRequest) (*models.Render, error) {
	var render models.Render
	if err := c.do(ctx, http.MethodPost, "/renders", nil, req, &render); err != nil {
		return nil, err
	}
	return &render, nil
}

// GetRender fetches the current state of a render
func (c *Client) GetRender(ctx context.Context, renderID string) (*models.Render, error) {
	var render models.Render
	if err := c.do(ctx, http.MethodGet, pathf("/renders/%s", renderID), nil, nil, &render); err != nil {
		return nil, err
	}
	return &render, nil
}

// ListRenders lists renders. Zero-valued filters are omitted from the query.
func (c *Client) ListRenders(ctx context.Context, opts models.ListRendersOptions) ([]models.Render, error) {
	query := url.Values{}
	if opts.ProjectID != "" {
		query.Set("projectId", opts.ProjectID)
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	setPaging(query, opts.Limit, opts.Offset)

	var renders []models.Render
	if err := c.do(ctx, http.MethodGet, "/renders", query, nil, &renders); err != nil {
		return nil, err
	}
	return renders, nil
}

// CancelRender cancels a pending or processing render
func (c *Client) CancelRender(ctx context.Context, renderID string) error {
	return c.do(ctx, http.MethodPost, pathf("/renders/%s/cancel", renderID), nil, nil, nil)
}

// DeleteRender deletes a render
func (c *Client) DeleteRender(ctx context.Context, renderID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/renders/%s", renderID), nil, nil, nil)
}

// RetryRender restarts a failed render
func (c *Client) RetryRender(ctx context.Context, renderID string) (*models.Render, error) {
	var render models.Render
	if err := c.do(ctx, http.MethodPost, pathf("/renders/%s/retry", renderID), nil, nil, &render); err != nil {
		return nil, err
	}
	return &render, nil
}

type batchRenderBody struct {
	Renders []models.RenderRequest `json:"renders"`
}

// BatchRender starts several renders in one request
func (c *Client) BatchRender(ctx context.Context, reqs []models.RenderRequest) ([]models.Render, error) {
	if reqs == nil {
		reqs = []models.RenderRequest{}
	}
	var renders []models.Render
	if err := c.do(ctx, http.MethodPost, "/renders/batch", nil, batchRenderBody{Renders: reqs}, &renders); err != nil {
		return nil, err
	}
	return renders, nil
}

func setPaging(query url.Values, limit, offset int) {
	if limit != 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset != 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
}
