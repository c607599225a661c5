package plainly

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koios/plainly-mcp/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redirectTransport sends every request to target while keeping path and query
type redirectTransport struct {
	target *url.URL
}

func (t redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return New("test-key", WithTransport(redirectTransport{target: target}))
}

func TestClientSendsAuthAndContentType(t *testing.T) {
	var gotAuth, gotType, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":"p1","name":"Promo","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`))
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)

	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("test-key:")), gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "/api/v2/projects", gotPath)
}

func TestListRendersQuery(t *testing.T) {
	t.Run("zero values omitted", func(t *testing.T) {
		var rawQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})

		_, err := client.ListRenders(context.Background(), models.ListRendersOptions{})
		require.NoError(t, err)
		assert.Empty(t, rawQuery)
	})

	t.Run("status only", func(t *testing.T) {
		var rawQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})

		_, err := client.ListRenders(context.Background(), models.ListRendersOptions{Status: models.RenderStatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, "status=completed", rawQuery)
	})

	t.Run("filters sent", func(t *testing.T) {
		var query url.Values
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Write([]byte(`[]`))
		})

		_, err := client.ListRenders(context.Background(), models.ListRendersOptions{
			ProjectID: "p1",
			Status:    models.RenderStatusFailed,
			Limit:     5,
			Offset:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, "p1", query.Get("projectId"))
		assert.Equal(t, "failed", query.Get("status"))
		assert.Equal(t, "5", query.Get("limit"))
		assert.Equal(t, "10", query.Get("offset"))
	})
}

func TestBatchRenderBody(t *testing.T) {
	var body map[string][]map[string]interface{}
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`[{"id":"r1","status":"pending"},{"id":"r2","status":"pending"}]`))
	})

	renders, err := client.BatchRender(context.Background(), []models.RenderRequest{
		{ProjectID: "p1", Parameters: map[string]interface{}{"name": "Ann"}},
		{ProjectID: "p1", Parameters: map[string]interface{}{"name": "Bob"}},
	})
	require.NoError(t, err)
	assert.Len(t, renders, 2)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/v2/renders/batch", path)
	require.Len(t, body["renders"], 2)
	assert.Equal(t, "p1", body["renders"][0]["projectId"])
}

func TestCancelAndRetryUseEmptyPost(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		paths = append(paths, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/retry") {
			w.Write([]byte(`{"id":"r1","status":"pending"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.CancelRender(context.Background(), "r1"))
	render, err := client.RetryRender(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, models.RenderStatusPending, render.Status)
	assert.Equal(t, []string{"/api/v2/renders/r1/cancel", "/api/v2/renders/r1/retry"}, paths)
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "json body",
			status: http.StatusNotFound,
			body:   "{\n  \"message\": \"Render not found\"\n}",
			want:   `Plainly API Error: 404 - {"message":"Render not found"}`,
		},
		{
			name:   "plain text body",
			status: http.StatusBadGateway,
			body:   "Bad Gateway",
			want:   `Plainly API Error: 502 - "Bad Gateway"`,
		},
		{
			name:   "empty body",
			status: http.StatusUnauthorized,
			want:   "Plainly API Error: 401 - Request failed with status code 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetRender(context.Background(), "missing")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target, _ := url.Parse(srv.URL)
	srv.Close()

	client := New("k", WithTransport(redirectTransport{target: target}))
	_, err := client.ListAssets(context.Background(), models.ListAssetsOptions{})
	require.Error(t, err)
	assert.Equal(t, "Plainly API Error: No response received", err.Error())
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestCancelledContextIsNoResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListWebhooks(ctx)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestUndecodableResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetProject(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Plainly API Error: failed to decode response"))
}

func TestUnsupportedProjectOperations(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	ctx := context.Background()

	_, err := client.CreateProject(ctx, models.ProjectChanges{Name: "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "Creating projects via API is not supported by Plainly.")
	assert.Contains(t, err.Error(), "use list_projects to get the project ID")

	_, err = client.UpdateProject(ctx, "p1", models.ProjectChanges{Name: "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "Updating projects via API is not supported by Plainly. Please update projects through the Plainly dashboard at https://app.plainlyvideos.com.", err.Error())

	err = client.DeleteProject(ctx, "p1")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "Deleting projects via API is not supported by Plainly. Please delete projects through the Plainly dashboard at https://app.plainlyvideos.com.", err.Error())

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestPathEscaping(t *testing.T) {
	var rawPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	})

	_, err := client.GetTemplate(context.Background(), "p 1", "t/2")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/projects/p%201/templates/t%2F2", rawPath)
}
