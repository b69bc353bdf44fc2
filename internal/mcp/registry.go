package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// methodListResources is the MCP method whose results are extended with the
// entries of resource template list functions.
const methodListResources = "resources/list"

const methodCallTool = "tools/call"

// Registry aggregates the tool, resource, and prompt registries of a server.
type Registry struct {
	log       *slog.Logger
	tools     *ToolRegistry
	resources *ResourceRegistry
	prompts   *PromptRegistry
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		log:       log,
		tools:     NewToolRegistry(log),
		resources: NewResourceRegistry(log),
		prompts:   NewPromptRegistry(log),
	}
}

// Tools returns the tool registry.
func (r *Registry) Tools() *ToolRegistry { return r.tools }

// Resources returns the resource registry.
func (r *Registry) Resources() *ResourceRegistry { return r.resources }

// Prompts returns the prompt registry.
func (r *Registry) Prompts() *PromptRegistry { return r.prompts }

// Mount registers every entry on an SDK server and installs the middleware
// that adds template list entries to resources/list and answers calls to
// unregistered tools. Call it once, after all entries are registered.
func (r *Registry) Mount(server *mcp.Server) {
	r.tools.mount(server)
	r.resources.mount(server)
	r.prompts.mount(server)

	server.AddReceivingMiddleware(r.ListingMiddleware(), r.UnknownToolMiddleware())

	r.log.Debug("Mounted registry",
		"tools", len(r.tools.ListTools()),
		"resource_templates", len(r.resources.ListResourceTemplates()),
		"prompts", len(r.prompts.ListPrompts()),
	)
}

// ListingMiddleware appends the entries of resource template list functions to
// the last page of every resources/list result.
func (r *Registry) ListingMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			result, err := next(ctx, method, req)
			if err != nil || method != methodListResources {
				return result, err
			}

			list, ok := result.(*mcp.ListResourcesResult)
			if !ok || list.NextCursor != "" {
				return result, nil
			}

			list.Resources = append(list.Resources, r.resources.listedResources(ctx)...)

			return list, nil
		}
	}
}

// UnknownToolMiddleware answers tools/call for a name the registry does not
// hold with an error result, before the SDK rejects it as invalid params.
func (r *Registry) UnknownToolMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}

			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil || r.tools.has(call.Params.Name) {
				return next(ctx, method, req)
			}

			err := &errors.UnknownOperationError{Kind: errors.KindTool, Name: call.Params.Name}
			r.log.Warn("Rejected call to unknown tool", "tool", call.Params.Name)

			return ErrorResult(err.Error()), nil
		}
	}
}
