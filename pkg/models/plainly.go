package models

import "encoding/json"

// Project represents a Plainly project. Projects are managed from the Plainly dashboard only.
type Project struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	AspectRatio string                 `json:"aspectRatio,omitempty"`
	Duration    *float64               `json:"duration,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`

	raw json.RawMessage
}

// Template represents a parameterized video design owned by a project
type Template struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"projectId"`
	Name         string                 `json:"name"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
	Parameters   map[string]interface{} `json:"parameters"`
	AspectRatios []string               `json:"aspectRatios,omitempty"`
	PreviewURL   string                 `json:"previewUrl,omitempty"`

	raw json.RawMessage
}

// RenderOutput holds optional output directives for a render
type RenderOutput struct {
	Format     string `json:"format,omitempty"`
	Quality    string `json:"quality,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// RenderRequest represents a request to render a video from a project template
type RenderRequest struct {
	ProjectID  string                 `json:"projectId"`
	TemplateID string                 `json:"templateId,omitempty"`
	Parameters map[string]interface{} `json:"parameters"`
	Output     *RenderOutput          `json:"output,omitempty"`
	Webhook    string                 `json:"webhook,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// RenderStatus is the lifecycle state of a render, owned by the remote service
type RenderStatus string

const (
	RenderStatusPending    RenderStatus = "pending"
	RenderStatusProcessing RenderStatus = "processing"
	RenderStatusCompleted  RenderStatus = "completed"
	RenderStatusFailed     RenderStatus = "failed"
)

// RenderStatuses lists every status a render can report
var RenderStatuses = []RenderStatus{
	RenderStatusPending,
	RenderStatusProcessing,
	RenderStatusCompleted,
	RenderStatusFailed,
}

// Render represents a single video generation job
type Render struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"projectId"`
	TemplateID   string                 `json:"templateId,omitempty"`
	Status       RenderStatus           `json:"status"`
	Progress     *float64               `json:"progress,omitempty"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
	CompletedAt  string                 `json:"completedAt,omitempty"`
	VideoURL     string                 `json:"videoUrl,omitempty"`
	ThumbnailURL string                 `json:"thumbnailUrl,omitempty"`
	Error        string                 `json:"error,omitempty"`
	Parameters   map[string]interface{} `json:"parameters"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`

	raw json.RawMessage
}

// AssetType is the media kind of a registered asset
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
	AssetTypeAudio AssetType = "audio"
)

// Asset represents a pointer to externally hosted media
type Asset struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      AssetType              `json:"type"`
	URL       string                 `json:"url"`
	Size      int64                  `json:"size"`
	CreatedAt string                 `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	raw json.RawMessage
}

// RenderStats is computed locally from a render listing. Durations are in milliseconds.
type RenderStats struct {
	TotalRenders     int     `json:"totalRenders"`
	CompletedRenders int     `json:"completedRenders"`
	FailedRenders    int     `json:"failedRenders"`
	PendingRenders   int     `json:"pendingRenders"`
	TotalDuration    float64 `json:"totalDuration"`
	AverageDuration  float64 `json:"averageDuration"`
}

// Webhook represents a callback URL notified on render lifecycle events
type Webhook struct {
	ID        string   `json:"id,omitempty"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"createdAt,omitempty"`

	raw json.RawMessage
}

// ListRendersOptions filters a render listing. Zero values are not sent.
type ListRendersOptions struct {
	ProjectID string
	Status    RenderStatus
	Limit     int
	Offset    int
}

// ListAssetsOptions filters an asset listing. Zero values are not sent.
type ListAssetsOptions struct {
	Type   AssetType
	Limit  int
	Offset int
}

// RenderStatsOptions scopes a statistics computation. Dates are ISO 8601.
type RenderStatsOptions struct {
	ProjectID string
	StartDate string
	EndDate   string
}

// UploadAssetRequest registers already hosted media as an asset
type UploadAssetRequest struct {
	Name     string                 `json:"name"`
	URL      string                 `json:"url"`
	Type     AssetType              `json:"type"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// CreateWebhookRequest represents the body of a webhook registration
type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Active *bool    `json:"active,omitempty"`
}

// ProjectChanges carries the fields a caller asked to change on a project
type ProjectChanges struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
