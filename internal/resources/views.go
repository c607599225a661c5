package resources

import (
	"context"
	"fmt"

	"github.com/koios/plainly-mcp/pkg/models"
	"golang.org/x/sync/errgroup"
)

const recentRendersLimit = 20

type projectSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CreatedAt   string   `json:"createdAt"`
	AspectRatio string   `json:"aspectRatio,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
}

func (r *Registry) readProjects(ctx context.Context) (interface{}, error) {
	projects, err := r.reader.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]projectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = projectSummary{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, AspectRatio: p.AspectRatio, Duration: p.Duration}
	}
	return struct {
		Total    int              `json:"total"`
		Projects []projectSummary `json:"projects"`
	}{len(summaries), summaries}, nil
}

type recentRender struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"projectId"`
	Status       models.RenderStatus `json:"status"`
	CreatedAt    string              `json:"createdAt"`
	VideoURL     string              `json:"videoUrl,omitempty"`
	ThumbnailURL string              `json:"thumbnailUrl,omitempty"`
}

func (r *Registry) readRecentRenders(ctx context.Context) (interface{}, error) {
	renders, err := r.reader.ListRenders(ctx, models.ListRendersOptions{Limit: recentRendersLimit})
	if err != nil {
		return nil, err
	}
	out := make([]recentRender, len(renders))
	for i, rd := range renders {
		out[i] = recentRender{ID: rd.ID, ProjectID: rd.ProjectID, Status: rd.Status, CreatedAt: rd.CreatedAt, VideoURL: rd.VideoURL, ThumbnailURL: rd.ThumbnailURL}
	}
	return struct {
		Total   int            `json:"total"`
		Renders []recentRender `json:"renders"`
	}{len(out), out}, nil
}

type completedRender struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"projectId"`
	CompletedAt  string                 `json:"completedAt,omitempty"`
	VideoURL     string                 `json:"videoUrl,omitempty"`
	ThumbnailURL string                 `json:"thumbnailUrl,omitempty"`
	Parameters   map[string]interface{} `json:"parameters"`
}

func (r *Registry) readCompletedRenders(ctx context.Context) (interface{}, error) {
	renders, err := r.reader.ListRenders(ctx, models.ListRendersOptions{Status: models.RenderStatusCompleted})
	if err != nil {
		return nil, err
	}
	out := make([]completedRender, len(renders))
	for i, rd := range renders {
		out[i] = completedRender{ID: rd.ID, ProjectID: rd.ProjectID, CompletedAt: rd.CompletedAt, VideoURL: rd.VideoURL, ThumbnailURL: rd.ThumbnailURL, Parameters: rd.Parameters}
	}
	return struct {
		Total            int               `json:"total"`
		CompletedRenders []completedRender `json:"completedRenders"`
	}{len(out), out}, nil
}

type failedRender struct {
	ID         string                 `json:"id"`
	ProjectID  string                 `json:"projectId"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  string                 `json:"createdAt"`
	Parameters map[string]interface{} `json:"parameters"`
}

func (r *Registry) readFailedRenders(ctx context.Context) (interface{}, error) {
	renders, err := r.reader.ListRenders(ctx, models.ListRendersOptions{Status: models.RenderStatusFailed})
	if err != nil {
		return nil, err
	}
	out := make([]failedRender, len(renders))
	for i, rd := range renders {
		out[i] = failedRender{ID: rd.ID, ProjectID: rd.ProjectID, Error: rd.Error, CreatedAt: rd.CreatedAt, Parameters: rd.Parameters}
	}
	return struct {
		Total         int            `json:"total"`
		FailedRenders []failedRender `json:"failedRenders"`
	}{len(out), out}, nil
}

type queuedRender struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"projectId"`
	Status    models.RenderStatus `json:"status"`
	Progress  *float64            `json:"progress,omitempty"`
	CreatedAt string              `json:"createdAt"`
}

// readPendingRenders fetches pending and processing renders concurrently;
// pending ones are listed first
func (r *Registry) readPendingRenders(ctx context.Context) (interface{}, error) {
	var pending, processing []models.Render
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = r.reader.ListRenders(gctx, models.ListRendersOptions{Status: models.RenderStatusPending})
		return err
	})
	g.Go(func() error {
		var err error
		processing, err = r.reader.ListRenders(gctx, models.ListRendersOptions{Status: models.RenderStatusProcessing})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]queuedRender, 0, len(pending)+len(processing))
	for _, group := range [][]models.Render{pending, processing} {
		for _, rd := range group {
			out = append(out, queuedRender{ID: rd.ID, ProjectID: rd.ProjectID, Status: rd.Status, Progress: rd.Progress, CreatedAt: rd.CreatedAt})
		}
	}
	return struct {
		Total           int            `json:"total"`
		PendingCount    int            `json:"pendingCount"`
		ProcessingCount int            `json:"processingCount"`
		Renders         []queuedRender `json:"renders"`
	}{len(out), len(pending), len(processing), out}, nil
}

type assetSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Type      models.AssetType `json:"type"`
	URL       string           `json:"url"`
	Size      int64            `json:"size"`
	CreatedAt string           `json:"createdAt"`
}

func (r *Registry) readAssets(ctx context.Context) (interface{}, error) {
	assets, err := r.reader.ListAssets(ctx, models.ListAssetsOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]assetSummary, len(assets))
	for i, a := range assets {
		out[i] = assetSummary{ID: a.ID, Name: a.Name, Type: a.Type, URL: a.URL, Size: a.Size, CreatedAt: a.CreatedAt}
	}
	return struct {
		Total  int            `json:"total"`
		Assets []assetSummary `json:"assets"`
	}{len(out), out}, nil
}

type statsOverview struct {
	TotalRenders     int     `json:"totalRenders"`
	CompletedRenders int     `json:"completedRenders"`
	FailedRenders    int     `json:"failedRenders"`
	PendingRenders   int     `json:"pendingRenders"`
	SuccessRate      string  `json:"successRate"`
	TotalDuration    float64 `json:"totalDuration"`
	AverageDuration  float64 `json:"averageDuration"`
}

func (r *Registry) readStatsOverview(ctx context.Context) (interface{}, error) {
	stats, err := r.reader.GetRenderStats(ctx, models.RenderStatsOptions{})
	if err != nil {
		return nil, err
	}
	return struct {
		Overview statsOverview `json:"overview"`
	}{statsOverview{
		TotalRenders:     stats.TotalRenders,
		CompletedRenders: stats.CompletedRenders,
		FailedRenders:    stats.FailedRenders,
		PendingRenders:   stats.PendingRenders,
		SuccessRate:      successRate(stats),
		TotalDuration:    stats.TotalDuration,
		AverageDuration:  stats.AverageDuration,
	}}, nil
}

func successRate(stats *models.RenderStats) string {
	if stats.TotalRenders == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(stats.CompletedRenders)/float64(stats.TotalRenders)*100)
}

func (r *Registry) readWebhooks(ctx context.Context) (interface{}, error) {
	webhooks, err := r.reader.ListWebhooks(ctx)
	if err != nil {
		return nil, err
	}
	if webhooks == nil {
		webhooks = []models.Webhook{}
	}
	return struct {
		Total    int              `json:"total"`
		Webhooks []models.Webhook `json:"webhooks"`
	}{len(webhooks), webhooks}, nil
}

func (r *Registry) readProject(ctx context.Context, projectID string) (interface{}, error) {
	var (
		project   *models.Project
		templates []models.Template
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = r.reader.GetProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		templates, err = r.reader.ListTemplates(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []models.Template{}
	}
	return struct {
		Project        *models.Project   `json:"project"`
		Templates      []models.Template `json:"templates"`
		TemplatesCount int               `json:"templatesCount"`
	}{project, templates, len(templates)}, nil
}

func (r *Registry) readRender(ctx context.Context, renderID string) (interface{}, error) {
	return r.reader.GetRender(ctx, renderID)
}
