package prompts

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Registry serves the embedded prompt catalog
type Registry struct {
	logger      *zap.Logger
	definitions []*Definition
	byName      map[string]*Definition
}

// New loads the embedded catalog
func New(logger *zap.Logger) (*Registry, error) {
	defs, err := LoadCatalog(catalogYAML)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		logger:      logger,
		definitions: defs,
		byName:      make(map[string]*Definition, len(defs)),
	}
	for _, d := range defs {
		r.byName[d.Name] = d
	}
	return r, nil
}

// Prompts returns the prompt descriptors in catalog order
func (r *Registry) Prompts() []*mcp.Prompt {
	out := make([]*mcp.Prompt, 0, len(r.definitions))
	for _, d := range r.definitions {
		out = append(out, d.prompt())
	}
	return out
}

func (d *Definition) prompt() *mcp.Prompt {
	args := make([]*mcp.PromptArgument, 0, len(d.Arguments))
	for _, a := range d.Arguments {
		args = append(args, &mcp.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}
	return &mcp.Prompt{
		Name:        d.Name,
		Description: d.Description,
		Arguments:   args,
	}
}

// Register installs every prompt on the MCP server
func (r *Registry) Register(server *mcp.Server) {
	for _, d := range r.definitions {
		name := d.Name
		server.AddPrompt(d.prompt(), func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			var args map[string]string
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			return r.Get(ctx, name, args)
		})
	}
}

// Get renders a prompt. Unknown names and missing required arguments are errors.
func (r *Registry) Get(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	def, ok := r.byName[name]
	if !ok {
		r.logger.Warn("Unknown prompt requested", zap.String("prompt", name))
		return nil, fmt.Errorf("Error generating prompt: Unknown prompt: %s", name)
	}

	text, err := def.render(args)
	if err != nil {
		r.logger.Info("Prompt rendering failed", zap.String("prompt", name), zap.Error(err))
		return nil, fmt.Errorf("Error generating prompt: %w", err)
	}

	return &mcp.GetPromptResult{
		Description: def.Description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}
