package plainly

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/koios/plainly-mcp/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	renders := []models.Render{
		{ID: "a", Status: models.RenderStatusCompleted, CreatedAt: "2024-01-01T00:00:00Z", CompletedAt: "2024-01-01T00:01:00Z"},
		{ID: "b", Status: models.RenderStatusCompleted, CreatedAt: "2024-01-01T00:00:00Z", CompletedAt: "2024-01-01T00:03:00Z"},
		{ID: "c", Status: models.RenderStatusCompleted, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "d", Status: models.RenderStatusFailed, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "e", Status: models.RenderStatusPending},
		{ID: "f", Status: models.RenderStatusProcessing},
	}

	stats := ComputeStats(renders)
	assert.Equal(t, 6, stats.TotalRenders)
	assert.Equal(t, 3, stats.CompletedRenders)
	assert.Equal(t, 1, stats.FailedRenders)
	assert.Equal(t, 2, stats.PendingRenders)
	assert.Equal(t, float64(240000), stats.TotalDuration)
	assert.Equal(t, float64(120000), stats.AverageDuration)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, models.RenderStats{}, stats)
}

func TestGetRenderStats(t *testing.T) {
	var projectID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		projectID = r.URL.Query().Get("projectId")
		w.Write([]byte(`[
			{"id":"old","status":"completed","createdAt":"2023-12-31T23:59:59Z","completedAt":"2024-01-01T00:00:10Z"},
			{"id":"in","status":"completed","createdAt":"2024-01-05T10:00:00Z","completedAt":"2024-01-05T10:00:30Z"},
			{"id":"edge","status":"failed","createdAt":"2024-01-31T23:00:00Z"},
			{"id":"late","status":"pending","createdAt":"2024-02-01T00:00:00Z"}
		]`))
	})

	stats, err := client.GetRenderStats(context.Background(), models.RenderStatsOptions{
		ProjectID: "p1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", projectID)
	assert.Equal(t, 2, stats.TotalRenders)
	assert.Equal(t, 1, stats.CompletedRenders)
	assert.Equal(t, 1, stats.FailedRenders)
	assert.Equal(t, 0, stats.PendingRenders)
	assert.Equal(t, float64(30000), stats.AverageDuration)
}

func TestGetRenderStatsInvalidDate(t *testing.T) {
	client := New("k")

	_, err := client.GetRenderStats(context.Background(), models.RenderStatsOptions{StartDate: "yesterday"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.True(t, strings.HasPrefix(err.Error(), `invalid date: startDate "yesterday"`), err.Error())
	assert.NotContains(t, err.Error(), "Plainly API Error")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))

	_, err = client.GetRenderStats(context.Background(), models.RenderStatsOptions{EndDate: "2024-13-45"})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), `endDate "2024-13-45"`)
}
