package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/koios/plainly-mcp/internal/plainly"
	"github.com/koios/plainly-mcp/internal/prompts"
	"github.com/koios/plainly-mcp/internal/resources"
	"github.com/koios/plainly-mcp/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

// stubPlainlyAPI serves a tiny fixed slice of the Plainly API
func stubPlainlyAPI(t *testing.T) *plainly.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Promo","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`))
	})
	mux.HandleFunc("GET /api/v2/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Project not found"}`))
			return
		}
		w.Write([]byte(`{"id":"p1","name":"Promo","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`))
	})
	mux.HandleFunc("GET /api/v2/projects/{id}/templates", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"t1","projectId":"p1","name":"Square","parameters":{}}]`))
	})
	mux.HandleFunc("POST /api/v2/renders", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"r1","projectId":"p1","status":"pending","parameters":{}}`))
	})
	mux.HandleFunc("GET /api/v2/renders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"` + r.PathValue("id") + `","projectId":"p1","status":"processing","progress":0,"outputFormat":{"ext":"mp4"},"parameters":{}}`))
	})
	mux.HandleFunc("GET /api/v2/webhooks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"w1","url":"https://x/hook","events":["render.completed"],"active":true,"secret":"s","failureCount":3}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return plainly.New("test-key", plainly.WithTransport(redirectTransport{target: target}))
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	client := stubPlainlyAPI(t)
	logger := zap.NewNop()

	toolRegistry, err := tools.New(client, logger)
	require.NoError(t, err)
	promptRegistry, err := prompts.New(logger)
	require.NoError(t, err)

	return New(toolRegistry, resources.New(client, logger), promptRegistry, logger, opts...)
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func textOf(t *testing.T, content []mcp.Content) string {
	t.Helper()
	require.Len(t, content, 1)
	text, ok := content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", content[0])
	return text.Text
}

func TestServerIdentityAndCatalogs(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	init := cs.InitializeResult()
	require.NotNil(t, init)
	assert.Equal(t, Name, init.ServerInfo.Name)
	assert.Equal(t, Version, init.ServerInfo.Version)

	toolList, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, toolList.Tools, 21)

	resourceList, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, resourceList.Resources, 8)

	templateList, err := cs.ListResourceTemplates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, templateList.ResourceTemplates, 2)

	promptList, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, promptList.Prompts, 8)
}

func TestCallToolOverProtocol(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "create_render",
		Arguments: map[string]interface{}{"projectId": "p1", "parameters": map[string]interface{}{"title": "Hi"}},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res.Content), "🎬 Render started!\n\nRender ID: r1\nStatus: pending")

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_project",
		Arguments: map[string]interface{}{"projectId": "missing"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, `❌ Error: Plainly API Error: 404 - {"message":"Project not found"}`, textOf(t, res.Content))

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_project",
		Arguments: map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res.Content), "❌ Error: Invalid arguments for get_project")
}

func TestReadResourceOverProtocol(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "plainly://projects/p1"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &doc))
	assert.Equal(t, float64(1), doc["templatesCount"])

	res, err = cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "plainly://projects"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &doc))
	assert.Equal(t, float64(1), doc["total"])
}

func TestUnknownToolOverProtocol(t *testing.T) {
	cs := connect(t, newTestServer(t))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: "nope"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "❌ Error: Unknown tool: nope", textOf(t, res.Content))
}

func TestUnknownResourceOverProtocol(t *testing.T) {
	cs := connect(t, newTestServer(t))

	for _, uri := range []string{"plainly://nope", "plainly://projects/p1/extra"} {
		t.Run(uri, func(t *testing.T) {
			res, err := cs.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
			require.NoError(t, err)
			require.Len(t, res.Contents, 1)
			assert.Equal(t, "text/plain", res.Contents[0].MIMEType)
			assert.Equal(t, "Error reading resource: Unknown resource URI: "+uri, res.Contents[0].Text)
		})
	}
}

func TestRemoteFieldsReachOutput(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	t.Run("get_render", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get_render",
			Arguments: map[string]interface{}{"renderId": "r9"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := textOf(t, res.Content)
		assert.Contains(t, text, `"progress": 0`)
		assert.Contains(t, text, `"outputFormat": {`)
		assert.Contains(t, text, `"ext": "mp4"`)
	})

	t.Run("render resource", func(t *testing.T) {
		res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "plainly://renders/r9"})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &doc))
		assert.Equal(t, float64(0), doc["progress"])
		assert.Equal(t, map[string]interface{}{"ext": "mp4"}, doc["outputFormat"])
	})

	t.Run("list_webhooks", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "list_webhooks"})
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := textOf(t, res.Content)
		assert.Contains(t, text, `"secret": "s"`)
		assert.Contains(t, text, `"failureCount": 3`)
	})
}

func TestGetPromptOverProtocol(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	res, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "check-render-progress",
		Arguments: map[string]string{"projectId": "p1"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "for project p1")

	_, err = cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "setup-webhook",
		Arguments: map[string]string{"webhookUrl": "https://x/hook"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "events")
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, Name, body["service"])
		assert.NotContains(t, body, "dependencies")
	})

	t.Run("degraded dependency", func(t *testing.T) {
		s := newTestServer(t, WithHealthCheck("redis", func(context.Context) bool { return false }))
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, map[string]interface{}{"redis": "down"}, body["dependencies"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		s := newTestServer(t)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
