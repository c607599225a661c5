package server

import (
	"context"

	"github.com/koios/plainly-mcp/internal/resources"
	"github.com/koios/plainly-mcp/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	methodCallTool     = "tools/call"
	methodReadResource = "resources/read"
)

// routeUnmatched sends tool calls and resource reads the SDK cannot route to
// the registries, so an unknown name or URI is answered with an error
// envelope instead of a JSON-RPC error.
func routeUnmatched(t *tools.Registry, r *resources.Registry) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			switch method {
			case methodCallTool:
				call, ok := req.(*mcp.CallToolRequest)
				if ok && call.Params != nil && !t.Has(call.Params.Name) {
					return t.Call(ctx, call.Params.Name, call.Params.Arguments), nil
				}
			case methodReadResource:
				read, ok := req.(*mcp.ReadResourceRequest)
				if !ok || read.Params == nil {
					break
				}
				// Registered resource handlers never fail, so an error here
				// means the SDK found no resource or template for the URI.
				result, err := next(ctx, method, req)
				if err != nil {
					return r.Read(ctx, read.Params.URI), nil
				}
				return result, nil
			}
			return next(ctx, method, req)
		}
	}
}
