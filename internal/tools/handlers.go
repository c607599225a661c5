package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/koios/plainly-mcp/internal/format"
	"github.com/koios/plainly-mcp/pkg/models"
)

type noArgs struct{}

type projectArgs struct {
	ProjectID string `json:"projectId"`
}

type projectChangesArgs struct {
	ProjectID   string                 `json:"projectId"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (a projectChangesArgs) changes() models.ProjectChanges {
	return models.ProjectChanges{Name: a.Name, Description: a.Description, Metadata: a.Metadata}
}

type templateArgs struct {
	ProjectID  string `json:"projectId"`
	TemplateID string `json:"templateId"`
}

type renderArgs struct {
	RenderID string `json:"renderId"`
}

// Numbers arrive as JSON numbers; the schema guarantees integral values within int range
type listRendersArgs struct {
	ProjectID string  `json:"projectId"`
	Status    string  `json:"status"`
	Limit     float64 `json:"limit"`
	Offset    float64 `json:"offset"`
}

type batchRenderArgs struct {
	Renders []models.RenderRequest `json:"renders"`
}

type listAssetsArgs struct {
	Type   string  `json:"type"`
	Limit  float64 `json:"limit"`
	Offset float64 `json:"offset"`
}

type assetArgs struct {
	AssetID string `json:"assetId"`
}

type statsArgs struct {
	ProjectID string `json:"projectId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type webhookArgs struct {
	WebhookID string `json:"webhookId"`
}

// Projects

func (r *Registry) listProjects(ctx context.Context, _ noArgs) (string, error) {
	projects, err := r.backend.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	return format.JSON(projects), nil
}

func (r *Registry) getProject(ctx context.Context, args projectArgs) (string, error) {
	project, err := r.backend.GetProject(ctx, args.ProjectID)
	if err != nil {
		return "", err
	}
	return format.JSON(project), nil
}

func (r *Registry) createProject(ctx context.Context, args projectChangesArgs) (string, error) {
	project, err := r.backend.CreateProject(ctx, args.changes())
	if err != nil {
		return "", err
	}
	return "✅ Project created successfully!\n\n" + format.JSON(project), nil
}

func (r *Registry) updateProject(ctx context.Context, args projectChangesArgs) (string, error) {
	project, err := r.backend.UpdateProject(ctx, args.ProjectID, args.changes())
	if err != nil {
		return "", err
	}
	return "✅ Project updated successfully!\n\n" + format.JSON(project), nil
}

func (r *Registry) deleteProject(ctx context.Context, args projectArgs) (string, error) {
	if err := r.backend.DeleteProject(ctx, args.ProjectID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Project %s deleted successfully!", args.ProjectID), nil
}

// Templates

func (r *Registry) listTemplates(ctx context.Context, args projectArgs) (string, error) {
	templates, err := r.backend.ListTemplates(ctx, args.ProjectID)
	if err != nil {
		return "", err
	}
	return format.JSON(templates), nil
}

func (r *Registry) getTemplate(ctx context.Context, args templateArgs) (string, error) {
	template, err := r.backend.GetTemplate(ctx, args.ProjectID, args.TemplateID)
	if err != nil {
		return "", err
	}
	return format.JSON(template), nil
}

// Renders

func (r *Registry) createRender(ctx context.Context, req models.RenderRequest) (string, error) {
	render, err := r.backend.CreateRender(ctx, req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🎬 Render started!\n\nRender ID: %s\nStatus: %s\n\n%s",
		render.ID, render.Status, format.JSON(render)), nil
}

func (r *Registry) getRender(ctx context.Context, args renderArgs) (string, error) {
	render, err := r.backend.GetRender(ctx, args.RenderID)
	if err != nil {
		return "", err
	}
	return renderStatusText(render), nil
}

func renderStatusText(render *models.Render) string {
	emoji := "⏳"
	switch render.Status {
	case models.RenderStatusCompleted:
		emoji = "✅"
	case models.RenderStatusFailed:
		emoji = "❌"
	case models.RenderStatusProcessing:
		emoji = "🔄"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Render Status: %s\n\n", emoji, strings.ToUpper(string(render.Status)))
	fmt.Fprintf(&b, "Render ID: %s\n", render.ID)
	if render.Progress != nil && *render.Progress != 0 {
		fmt.Fprintf(&b, "Progress: %s%%\n", strconv.FormatFloat(*render.Progress, 'f', -1, 64))
	}
	if render.VideoURL != "" {
		fmt.Fprintf(&b, "\n📹 Video URL: %s\n", render.VideoURL)
	}
	if render.ThumbnailURL != "" {
		fmt.Fprintf(&b, "🖼️ Thumbnail: %s\n", render.ThumbnailURL)
	}
	if render.Error != "" {
		fmt.Fprintf(&b, "\n⚠️ Error: %s\n", render.Error)
	}
	b.WriteString("\n")
	b.WriteString(format.JSON(render))
	return b.String()
}

func (r *Registry) listRenders(ctx context.Context, args listRendersArgs) (string, error) {
	renders, err := r.backend.ListRenders(ctx, models.ListRendersOptions{
		ProjectID: args.ProjectID,
		Status:    models.RenderStatus(args.Status),
		Limit:     int(args.Limit),
		Offset:    int(args.Offset),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Found %d render(s)\n\n%s", len(renders), format.JSON(renders)), nil
}

func (r *Registry) cancelRender(ctx context.Context, args renderArgs) (string, error) {
	if err := r.backend.CancelRender(ctx, args.RenderID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Render %s cancelled successfully!", args.RenderID), nil
}

func (r *Registry) deleteRender(ctx context.Context, args renderArgs) (string, error) {
	if err := r.backend.DeleteRender(ctx, args.RenderID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Render %s deleted successfully!", args.RenderID), nil
}

func (r *Registry) retryRender(ctx context.Context, args renderArgs) (string, error) {
	render, err := r.backend.RetryRender(ctx, args.RenderID)
	if err != nil {
		return "", err
	}
	return "🔄 Render retry initiated!\n\n" + format.JSON(render), nil
}

func (r *Registry) batchRender(ctx context.Context, args batchRenderArgs) (string, error) {
	renders, err := r.backend.BatchRender(ctx, args.Renders)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🎬 Batch render started for %d video(s)!\n\n%s", len(renders), format.JSON(renders)), nil
}

// Assets

func (r *Registry) listAssets(ctx context.Context, args listAssetsArgs) (string, error) {
	assets, err := r.backend.ListAssets(ctx, models.ListAssetsOptions{
		Type:   models.AssetType(args.Type),
		Limit:  int(args.Limit),
		Offset: int(args.Offset),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Found %d asset(s)\n\n%s", len(assets), format.JSON(assets)), nil
}

func (r *Registry) uploadAsset(ctx context.Context, req models.UploadAssetRequest) (string, error) {
	asset, err := r.backend.UploadAsset(ctx, req)
	if err != nil {
		return "", err
	}
	return "✅ Asset uploaded successfully!\n\n" + format.JSON(asset), nil
}

func (r *Registry) deleteAsset(ctx context.Context, args assetArgs) (string, error) {
	if err := r.backend.DeleteAsset(ctx, args.AssetID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Asset %s deleted successfully!", args.AssetID), nil
}

// Analytics

func (r *Registry) getRenderStats(ctx context.Context, args statsArgs) (string, error) {
	stats, err := r.backend.GetRenderStats(ctx, models.RenderStatsOptions{
		ProjectID: args.ProjectID,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 Render Statistics\n\n%s\n\n%s", statsTable(stats), format.JSON(stats)), nil
}

func statsTable(stats *models.RenderStats) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total renders", stats.TotalRenders},
		{"Completed", stats.CompletedRenders},
		{"Failed", stats.FailedRenders},
		{"Pending", stats.PendingRenders},
		{"Total duration (ms)", strconv.FormatFloat(stats.TotalDuration, 'f', 0, 64)},
		{"Average duration (ms)", strconv.FormatFloat(stats.AverageDuration, 'f', 0, 64)},
	})
	return t.Render()
}

// Webhooks

func (r *Registry) listWebhooks(ctx context.Context, _ noArgs) (string, error) {
	webhooks, err := r.backend.ListWebhooks(ctx)
	if err != nil {
		return "", err
	}
	return format.JSON(webhooks), nil
}

func (r *Registry) createWebhook(ctx context.Context, req models.CreateWebhookRequest) (string, error) {
	webhook, err := r.backend.CreateWebhook(ctx, req)
	if err != nil {
		return "", err
	}
	return "✅ Webhook created successfully!\n\n" + format.JSON(webhook), nil
}

func (r *Registry) deleteWebhook(ctx context.Context, args webhookArgs) (string, error) {
	if err := r.backend.DeleteWebhook(ctx, args.WebhookID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Webhook %s deleted successfully!", args.WebhookID), nil
}
