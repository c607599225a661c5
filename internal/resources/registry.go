package resources

import (
	"context"
	"fmt"
	"regexp"

	"github.com/koios/plainly-mcp/internal/format"
	"github.com/koios/plainly-mcp/pkg/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const jsonMIME = "application/json"

// Reader is the read-only subset of the Plainly client used by resources
type Reader interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	ListTemplates(ctx context.Context, projectID string) ([]models.Template, error)
	GetRender(ctx context.Context, renderID string) (*models.Render, error)
	ListRenders(ctx context.Context, opts models.ListRendersOptions) ([]models.Render, error)
	ListAssets(ctx context.Context, opts models.ListAssetsOptions) ([]models.Asset, error)
	GetRenderStats(ctx context.Context, opts models.RenderStatsOptions) (*models.RenderStats, error)
	ListWebhooks(ctx context.Context) ([]models.Webhook, error)
}

type readFunc func(ctx context.Context) (interface{}, error)

type fixedResource struct {
	resource *mcp.Resource
	read     readFunc
}

type templateResource struct {
	template *mcp.ResourceTemplate
	pattern  *regexp.Regexp
	read     func(ctx context.Context, id string) (interface{}, error)
}

// Registry serves the plainly:// resources
type Registry struct {
	reader    Reader
	logger    *zap.Logger
	fixed     []*fixedResource
	byURI     map[string]*fixedResource
	templates []*templateResource
}

// New creates a new resource registry
func New(reader Reader, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		reader: reader,
		logger: logger,
		byURI:  make(map[string]*fixedResource),
	}

	fixed := func(uri, name, description string, read readFunc) *fixedResource {
		return &fixedResource{
			resource: &mcp.Resource{URI: uri, Name: name, Description: description, MIMEType: jsonMIME},
			read:     read,
		}
	}
	r.fixed = []*fixedResource{
		fixed("plainly://projects", "All Projects", "List of all Plainly video projects", r.readProjects),
		fixed("plainly://renders/recent", "Recent Renders", "Most recent video renders across all projects", r.readRecentRenders),
		fixed("plainly://renders/completed", "Completed Renders", "All successfully completed renders", r.readCompletedRenders),
		fixed("plainly://renders/failed", "Failed Renders", "All failed renders for debugging", r.readFailedRenders),
		fixed("plainly://renders/pending", "Pending Renders", "Renders currently in queue or processing", r.readPendingRenders),
		fixed("plainly://assets", "All Assets", "Library of uploaded assets (images, videos, audio)", r.readAssets),
		fixed("plainly://stats/overview", "Statistics Overview", "Overall rendering statistics and metrics", r.readStatsOverview),
		fixed("plainly://webhooks", "Webhooks", "Configured webhook endpoints", r.readWebhooks),
	}
	for _, f := range r.fixed {
		r.byURI[f.resource.URI] = f
	}

	r.templates = []*templateResource{
		{
			template: &mcp.ResourceTemplate{
				URITemplate: "plainly://projects/{projectId}",
				Name:        "Project Details",
				Description: "A project with its templates",
				MIMEType:    jsonMIME,
			},
			pattern: regexp.MustCompile(`^plainly://projects/([^/]+)$`),
			read:    r.readProject,
		},
		{
			template: &mcp.ResourceTemplate{
				URITemplate: "plainly://renders/{renderId}",
				Name:        "Render Details",
				Description: "Full state of a single render",
				MIMEType:    jsonMIME,
			},
			pattern: regexp.MustCompile(`^plainly://renders/([^/]+)$`),
			read:    r.readRender,
		},
	}

	return r
}

// Resources returns the fixed resources in catalog order
func (r *Registry) Resources() []*mcp.Resource {
	out := make([]*mcp.Resource, len(r.fixed))
	for i, f := range r.fixed {
		out[i] = f.resource
	}
	return out
}

// Templates returns the parameterized resource templates
func (r *Registry) Templates() []*mcp.ResourceTemplate {
	out := make([]*mcp.ResourceTemplate, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.template
	}
	return out
}

// Register installs every resource and template on the MCP server
func (r *Registry) Register(server *mcp.Server) {
	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return r.Read(ctx, req.Params.URI), nil
	}
	for _, f := range r.fixed {
		server.AddResource(f.resource, handler)
	}
	for _, t := range r.templates {
		server.AddResourceTemplate(t.template, handler)
	}
}

// Read resolves uri. Failures are reported as a text/plain content, never as an error.
func (r *Registry) Read(ctx context.Context, uri string) *mcp.ReadResourceResult {
	value, err := r.resolve(ctx, uri)
	if err != nil {
		r.logger.Info("Resource read failed", zap.String("uri", uri), zap.Error(err))
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     "Error reading resource: " + err.Error(),
			}},
		}
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     format.JSON(value),
		}},
	}
}

// resolve checks fixed URIs before the templates, so plainly://renders/recent
// never reaches the render template.
func (r *Registry) resolve(ctx context.Context, uri string) (interface{}, error) {
	if f, ok := r.byURI[uri]; ok {
		return f.read(ctx)
	}
	for _, t := range r.templates {
		if m := t.pattern.FindStringSubmatch(uri); m != nil {
			return t.read(ctx, m[1])
		}
	}
	return nil, fmt.Errorf("Unknown resource URI: %s", uri)
}
