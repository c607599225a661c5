package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type handlerFunc func(ctx context.Context, args json.RawMessage) (string, error)

type entry struct {
	tool      *mcp.Tool
	schema    *jsonschema.Schema
	validator *argValidator
	handler   handlerFunc
	mutates   bool
}

// bind decodes already validated arguments into A before calling fn
func bind[A any](fn func(ctx context.Context, args A) (string, error)) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (string, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
		}
		return fn(ctx, args)
	}
}

func (r *Registry) catalog() []*entry {
	tool := func(name, description string, schema *jsonschema.Schema, mutates bool, h handlerFunc) *entry {
		return &entry{
			tool:    &mcp.Tool{Name: name, Description: description},
			schema:  schema,
			handler: h,
			mutates: mutates,
		}
	}

	projectID := func(description string) *jsonschema.Schema {
		return objectSchema(map[string]*jsonschema.Schema{
			"projectId": stringProp(description),
		}, "projectId")
	}
	renderID := func(description string) *jsonschema.Schema {
		return objectSchema(map[string]*jsonschema.Schema{
			"renderId": stringProp(description),
		}, "renderId")
	}

	return []*entry{
		// Projects
		tool("list_projects", "List all Plainly projects",
			objectSchema(nil), false, bind(r.listProjects)),
		tool("get_project", "Get details of a specific project",
			projectID("Project ID"), false, bind(r.getProject)),
		tool("create_project", "Create a new video project",
			objectSchema(map[string]*jsonschema.Schema{
				"name":        stringProp("Project name"),
				"description": stringProp("Project description"),
				"metadata":    freeObjectProp("Additional metadata"),
			}, "name"), true, bind(r.createProject)),
		tool("update_project", "Update an existing project",
			objectSchema(map[string]*jsonschema.Schema{
				"projectId":   stringProp("Project ID"),
				"name":        stringProp("New project name"),
				"description": stringProp("New description"),
				"metadata":    freeObjectProp("Updated metadata"),
			}, "projectId"), true, bind(r.updateProject)),
		tool("delete_project", "Delete a project",
			projectID("Project ID to delete"), true, bind(r.deleteProject)),

		// Templates
		tool("list_templates", "List all templates for a project",
			projectID("Project ID"), false, bind(r.listTemplates)),
		tool("get_template", "Get template details including parameters and preview",
			objectSchema(map[string]*jsonschema.Schema{
				"projectId":  stringProp("Project ID"),
				"templateId": stringProp("Template ID"),
			}, "projectId", "templateId"), false, bind(r.getTemplate)),

		// Renders
		tool("create_render", "Create a new video render with custom parameters",
			renderRequestSchema(), true, bind(r.createRender)),
		tool("get_render", "Check render status and get video URL when complete",
			renderID("Render ID"), false, bind(r.getRender)),
		tool("list_renders", "List renders with optional filtering",
			objectSchema(map[string]*jsonschema.Schema{
				"projectId": stringProp("Filter by project ID"),
				"status":    enumProp("Filter by status (pending, processing, completed, failed)", renderStatusEnum()...),
				"limit":     integerProp("Maximum results (default: 50)"),
				"offset":    integerProp("Pagination offset"),
			}), false, bind(r.listRenders)),
		tool("cancel_render", "Cancel a pending or processing render",
			renderID("Render ID to cancel"), true, bind(r.cancelRender)),
		tool("delete_render", "Delete a render and its associated video",
			renderID("Render ID to delete"), true, bind(r.deleteRender)),
		tool("retry_render", "Retry a failed render with the same parameters",
			renderID("Failed render ID"), true, bind(r.retryRender)),
		tool("batch_render", "Render multiple videos at once",
			objectSchema(map[string]*jsonschema.Schema{
				"renders": {
					Type:        "array",
					Description: "Array of render requests",
					Items:       renderRequestSchema(),
				},
			}, "renders"), true, bind(r.batchRender)),

		// Assets
		tool("list_assets", "List uploaded assets (images, videos, audio)",
			objectSchema(map[string]*jsonschema.Schema{
				"type":   enumProp("Filter by type (image, video, audio)", assetTypes...),
				"limit":  integerProp("Maximum results"),
				"offset": integerProp("Pagination offset"),
			}), false, bind(r.listAssets)),
		tool("upload_asset", "Register an asset URL for use in renders",
			objectSchema(map[string]*jsonschema.Schema{
				"name":     stringProp("Asset name"),
				"url":      stringProp("Public URL of the asset"),
				"type":     enumProp("Asset type", assetTypes...),
				"metadata": freeObjectProp("Additional metadata"),
			}, "name", "url", "type"), true, bind(r.uploadAsset)),
		tool("delete_asset", "Delete an asset",
			objectSchema(map[string]*jsonschema.Schema{
				"assetId": stringProp("Asset ID"),
			}, "assetId"), true, bind(r.deleteAsset)),

		// Analytics
		tool("get_render_stats", "Get render statistics and analytics",
			objectSchema(map[string]*jsonschema.Schema{
				"projectId": stringProp("Filter by project"),
				"startDate": stringProp("Start date (ISO 8601)"),
				"endDate":   stringProp("End date (ISO 8601)"),
			}), false, bind(r.getRenderStats)),

		// Webhooks
		tool("list_webhooks", "List all configured webhooks",
			objectSchema(nil), false, bind(r.listWebhooks)),
		tool("create_webhook", "Create a new webhook for render notifications",
			objectSchema(map[string]*jsonschema.Schema{
				"url": stringProp("Webhook URL"),
				"events": {
					Type:        "array",
					Description: "Events to trigger webhook",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"active": booleanProp("Webhook active status"),
			}, "url", "events"), true, bind(r.createWebhook)),
		tool("delete_webhook", "Delete a webhook",
			objectSchema(map[string]*jsonschema.Schema{
				"webhookId": stringProp("Webhook ID"),
			}, "webhookId"), true, bind(r.deleteWebhook)),
	}
}
