package plainly

import (
	"context"
	"net/http"
	"net/url"

	"github.com/koios/plainly-mcp/pkg/models"
)

// ListAssets lists registered assets. Zero-valued filters are omitted.
func (c *Client) ListAssets(ctx context.Context, opts models.ListAssetsOptions) ([]models.Asset, error) {
	query := url.Values{}
	if opts.Type != "" {
		query.Set("type", string(opts.Type))
	}
	setPaging(query, opts.Limit, opts.Offset)

	var assets []models.Asset
	if err := c.do(ctx, http.MethodGet, "/assets", query, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// UploadAsset registers media hosted at req.URL
func (c *Client) UploadAsset(ctx context.Context, req models.UploadAssetRequest) (*models.Asset, error) {
	var asset models.Asset
	if err := c.do(ctx, http.MethodPost, "/assets", nil, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/assets/%s", assetID), nil, nil, nil)
}
