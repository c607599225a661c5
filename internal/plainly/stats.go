package plainly

import (
	"context"
	"fmt"
	"time"

	"github.com/koios/plainly-mcp/pkg/models"
)

// GetRenderStats aggregates statistics from the render listing.
// The API has no stats endpoint, so the reduction happens here.
func (c *Client) GetRenderStats(ctx context.Context, opts models.RenderStatsOptions) (*models.RenderStats, error) {
	start, err := parseBound(opts.StartDate, false)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate %q: %v", ErrInvalidDate, opts.StartDate, err)
	}
	end, err := parseBound(opts.EndDate, true)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate %q: %v", ErrInvalidDate, opts.EndDate, err)
	}

	renders, err := c.ListRenders(ctx, models.ListRendersOptions{ProjectID: opts.ProjectID})
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(filterByCreated(renders, start, end))
	return &stats, nil
}

// ComputeStats reduces a render listing. Only completed renders whose
// createdAt and completedAt both parse contribute to the durations.
func ComputeStats(renders []models.Render) models.RenderStats {
	stats := models.RenderStats{TotalRenders: len(renders)}

	var timed int
	for _, r := range renders {
		switch r.Status {
		case models.RenderStatusCompleted:
			stats.CompletedRenders++
		case models.RenderStatusFailed:
			stats.FailedRenders++
		case models.RenderStatusPending, models.RenderStatusProcessing:
			stats.PendingRenders++
		}

		if r.Status != models.RenderStatusCompleted {
			continue
		}
		created, ok := parseTimestamp(r.CreatedAt)
		if !ok {
			continue
		}
		completed, ok := parseTimestamp(r.CompletedAt)
		if !ok {
			continue
		}
		stats.TotalDuration += float64(completed.Sub(created).Milliseconds())
		timed++
	}

	if timed > 0 {
		stats.AverageDuration = stats.TotalDuration / float64(timed)
	}
	return stats
}

// filterByCreated keeps renders created within [start, end]. Renders with an
// unparseable createdAt are dropped once any bound is set.
func filterByCreated(renders []models.Render, start, end time.Time) []models.Render {
	if start.IsZero() && end.IsZero() {
		return renders
	}
	kept := make([]models.Render, 0, len(renders))
	for _, r := range renders {
		created, ok := parseTimestamp(r.CreatedAt)
		if !ok {
			continue
		}
		if !start.IsZero() && created.Before(start) {
			continue
		}
		if !end.IsZero() && created.After(end) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseBound parses a date filter. A date-only end bound covers the whole day.
func parseBound(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, ok := parseTimestamp(value)
	if !ok {
		return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date", value)
	}
	if endOfDay && len(value) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
