package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// ToolHandler executes a tool with arguments that already passed validation.
type ToolHandler func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error)

// TypedHandler adapts a handler taking a decoded input struct to a ToolHandler.
func TypedHandler[In any](fn func(ctx context.Context, in In) (*mcp.CallToolResult, error)) ToolHandler {
	return func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
		var in In

		if len(args) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("failed to decode arguments: %w", err)
			}
		}

		return fn(ctx, in)
	}
}

// toolEntry holds tool metadata and handler for the registry.
type toolEntry struct {
	tool    *mcp.Tool
	schema  *jsonschema.Schema
	handler ToolHandler
}

// ToolRegistry maps tool names to their descriptors and handlers.
type ToolRegistry struct {
	log   *slog.Logger
	mu    sync.RWMutex
	tools map[string]*toolEntry
	order []string
}

// NewToolRegistry creates an empty tool registry.
func NewToolRegistry(log *slog.Logger) *ToolRegistry {
	return &ToolRegistry{
		log:   log,
		tools: make(map[string]*toolEntry, 8),
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// AddTool registers a tool. The tool's InputSchema, if set, must be a
// *jsonschema.Schema. Registering the same name twice panics.
func (r *ToolRegistry) AddTool(tool *mcp.Tool, handler ToolHandler) {
	if tool == nil || tool.Name == "" {
		panic("mcp: tool must have a name")
	}

	if handler == nil {
		panic(fmt.Sprintf("mcp: tool %q has no handler", tool.Name))
	}

	schema, ok := tool.InputSchema.(*jsonschema.Schema)
	if !ok || schema == nil {
		if tool.InputSchema != nil {
			panic(fmt.Sprintf("mcp: tool %q input schema must be *jsonschema.Schema, got %T", tool.Name, tool.InputSchema))
		}

		schema = &jsonschema.Schema{Type: "object"}
		tool.InputSchema = schema
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		panic(fmt.Sprintf("mcp: tool %q already registered", tool.Name))
	}

	r.tools[tool.Name] = &toolEntry{
		tool:    tool,
		schema:  schema,
		handler: handler,
	}
	r.order = append(r.order, tool.Name)

	r.log.Debug("Registered tool", "name", tool.Name)
}

// ListTools returns every registered tool in registration order.
func (r *ToolRegistry) ListTools() []*mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}

	return tools
}

func (r *ToolRegistry) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tools[name]

	return exists
}

// CallTool executes a tool by name with the given raw JSON arguments.
//
// Unknown names return *errors.UnknownOperationError and malformed arguments
// return *errors.InvalidArgumentsError. A handler error is encoded in the
// returned result instead of being returned.
func (r *ToolRegistry) CallTool(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	r.mu.RLock()
	entry, exists := r.tools[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &errors.UnknownOperationError{Kind: errors.KindTool, Name: name}
	}

	if err := ValidateArguments(name, entry.schema, args); err != nil {
		return nil, err
	}

	result, err := entry.handler(ctx, args)
	if err != nil {
		r.log.Warn("Tool execution failed", "tool", name, "error", err)

		return ErrorResult("Tool execution failed: " + err.Error()), nil
	}

	if result == nil {
		return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
	}

	return result, nil
}

// mount registers every tool on an SDK server. Dispatch errors are reported as
// error results so the client sees the violating fields.
func (r *ToolRegistry) mount(server *mcp.Server) {
	for _, tool := range r.ListTools() {
		name := tool.Name

		server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}

			result, err := r.CallTool(ctx, name, args)
			if err != nil {
				//nolint:nilerr // Intentionally return nil error - error is encoded in the result
				return ErrorResult(err.Error()), nil
			}

			return result, nil
		})
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}
