package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koios/plainly-mcp/pkg/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Backend is the subset of the Plainly client the tools call
type Backend interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	CreateProject(ctx context.Context, changes models.ProjectChanges) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID string, changes models.ProjectChanges) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	ListTemplates(ctx context.Context, projectID string) ([]models.Template, error)
	GetTemplate(ctx context.Context, projectID, templateID string) (*models.Template, error)

	CreateRender(ctx context.Context, req models.RenderRequest) (*models.Render, error)
	GetRender(ctx context.Context, renderID string) (*models.Render, error)
	ListRenders(ctx context.Context, opts models.ListRendersOptions) ([]models.Render, error)
	CancelRender(ctx context.Context, renderID string) error
	DeleteRender(ctx context.Context, renderID string) error
	RetryRender(ctx context.Context, renderID string) (*models.Render, error)
	BatchRender(ctx context.Context, reqs []models.RenderRequest) ([]models.Render, error)

	ListAssets(ctx context.Context, opts models.ListAssetsOptions) ([]models.Asset, error)
	UploadAsset(ctx context.Context, req models.UploadAssetRequest) (*models.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error

	GetRenderStats(ctx context.Context, opts models.RenderStatsOptions) (*models.RenderStats, error)

	ListWebhooks(ctx context.Context) ([]models.Webhook, error)
	CreateWebhook(ctx context.Context, req models.CreateWebhookRequest) (*models.Webhook, error)
	DeleteWebhook(ctx context.Context, webhookID string) error
}

// EventPublisher receives the outcome of every state-changing tool call
type EventPublisher interface {
	PublishToolEvent(ctx context.Context, event *models.ToolEvent) error
}

// Registry dispatches tool calls by name. It is immutable after New.
type Registry struct {
	backend   Backend
	publisher EventPublisher
	logger    *zap.Logger
	entries   map[string]*entry
	order     []*entry
}

// Option configures a Registry
type Option func(*Registry)

// WithPublisher publishes a ToolEvent after each mutating tool call
func WithPublisher(p EventPublisher) Option {
	return func(r *Registry) {
		r.publisher = p
	}
}

// New builds the tool table and compiles every input schema
func New(backend Backend, logger *zap.Logger, opts ...Option) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		backend: backend,
		logger:  logger,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, e := range r.catalog() {
		validator, err := compileSchema(e.tool.Name, e.schema)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for %s: %w", e.tool.Name, err)
		}
		e.validator = validator
		e.tool.InputSchema = e.schema
		r.entries[e.tool.Name] = e
		r.order = append(r.order, e)
	}

	return r, nil
}

// Tools returns the tool descriptors in catalog order
func (r *Registry) Tools() []*mcp.Tool {
	tools := make([]*mcp.Tool, 0, len(r.order))
	for _, e := range r.order {
		tools = append(tools, e.tool)
	}
	return tools
}

// Has reports whether name is in the catalog
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Register installs every tool on the MCP server
func (r *Registry) Register(server *mcp.Server) {
	for _, e := range r.order {
		name := e.tool.Name
		server.AddTool(e.tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var raw json.RawMessage
			if req != nil && req.Params != nil {
				raw = req.Params.Arguments
			}
			return r.Call(ctx, name, raw), nil
		})
	}
}

// Call runs a tool. Failures are reported inside the result, never as an error.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) *mcp.CallToolResult {
	e, ok := r.entries[name]
	if !ok {
		r.logger.Warn("Unknown tool requested", zap.String("tool", name))
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	if err := e.validator.validate(args); err != nil {
		r.logger.Debug("Rejected tool arguments", zap.String("tool", name), zap.Error(err))
		return errorResult(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
	}

	start := time.Now()
	text, err := e.handler(ctx, args)
	if e.mutates {
		r.publish(ctx, name, err)
	}
	if err != nil {
		r.logger.Info("Tool call failed",
			zap.String("tool", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return errorResult(err.Error())
	}

	r.logger.Debug("Tool call completed",
		zap.String("tool", name),
		zap.Duration("duration", time.Since(start)))
	return textResult(text)
}

func (r *Registry) publish(ctx context.Context, tool string, callErr error) {
	if r.publisher == nil {
		return
	}
	event := &models.ToolEvent{
		Type:       models.ToolEventType,
		ID:         uuid.NewString(),
		Tool:       tool,
		Success:    callErr == nil,
		OccurredAt: time.Now().UTC(),
	}
	if callErr != nil {
		event.Error = callErr.Error()
	}
	if err := r.publisher.PublishToolEvent(ctx, event); err != nil {
		r.logger.Warn("Failed to publish tool event",
			zap.String("tool", tool),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "❌ Error: " + message}},
		IsError: true,
	}
}
