package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/wagiedev/mcp-demo-server/internal/errors"
)

type echoInput struct {
	Text string `json:"text"`
}

func newEchoRegistry() *ToolRegistry {
	registry := NewToolRegistry(nopLogger())
	registry.AddTool(
		NewTool("echo", "echoes text", SimpleSchema(map[string]string{"text": "string"})),
		TypedHandler(func(_ context.Context, in echoInput) (*mcpgo.CallToolResult, error) {
			return TextResult("echo: " + in.Text), nil
		}),
	)

	return registry
}

func TestToolRegistry_ListAndCall(t *testing.T) {
	registry := newEchoRegistry()

	tools := registry.ListTools()
	require.Len(t, tools, 1)
	require.Equal(t, "echo", tools[0].Name)
	require.Equal(t, "echoes text", tools[0].Description)

	result, err := registry.CallTool(context.Background(), "echo", json.RawMessage(`{"text":"hello"}`))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "echo: hello", textOf(t, result.Content))
}

func TestToolRegistry_UnknownTool(t *testing.T) {
	registry := newEchoRegistry()

	_, err := registry.CallTool(context.Background(), "unknown", nil)

	unknown, ok := errorsAs[*sdkerrors.UnknownOperationError](err)
	require.True(t, ok)
	require.Equal(t, sdkerrors.KindTool, unknown.Kind)
	require.Equal(t, "unknown", unknown.Name)
}

func TestToolRegistry_InvalidArguments(t *testing.T) {
	registry := newEchoRegistry()

	_, err := registry.CallTool(context.Background(), "echo", json.RawMessage(`{"text": 7}`))

	invalid, ok := errorsAs[*sdkerrors.InvalidArgumentsError](err)
	require.True(t, ok)
	require.Equal(t, []string{"text"}, invalid.FieldNames())
}

func TestToolRegistry_HandlerError(t *testing.T) {
	registry := NewToolRegistry(nopLogger())
	registry.AddTool(
		NewTool("fails", "always fails", nil),
		func(context.Context, json.RawMessage) (*mcpgo.CallToolResult, error) {
			return nil, errors.New("boom")
		},
	)

	result, err := registry.CallTool(context.Background(), "fails", nil)

	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "Tool execution failed: boom", textOf(t, result.Content))
}

func TestToolRegistry_NilResultBecomesEmptyContent(t *testing.T) {
	registry := NewToolRegistry(nopLogger())
	registry.AddTool(
		NewTool("noop", "does nothing", nil),
		func(context.Context, json.RawMessage) (*mcpgo.CallToolResult, error) {
			return nil, nil
		},
	)

	result, err := registry.CallTool(context.Background(), "noop", nil)

	require.NoError(t, err)
	require.NotNil(t, result.Content)
	require.Empty(t, result.Content)
}

func TestToolRegistry_AddToolPanics(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		registry := newEchoRegistry()

		require.Panics(t, func() {
			registry.AddTool(NewTool("echo", "again", nil), TypedHandler(func(context.Context, echoInput) (*mcpgo.CallToolResult, error) {
				return nil, nil
			}))
		})
	})

	t.Run("missing handler", func(t *testing.T) {
		registry := NewToolRegistry(nopLogger())

		require.Panics(t, func() { registry.AddTool(NewTool("x", "", nil), nil) })
	})

	t.Run("foreign schema type", func(t *testing.T) {
		registry := NewToolRegistry(nopLogger())
		tool := &mcpgo.Tool{Name: "x", InputSchema: map[string]any{"type": "object"}}

		require.Panics(t, func() {
			registry.AddTool(tool, func(context.Context, json.RawMessage) (*mcpgo.CallToolResult, error) {
				return nil, nil
			})
		})
	})
}

func TestTypedHandler_DecodeError(t *testing.T) {
	handler := TypedHandler(func(_ context.Context, in echoInput) (*mcpgo.CallToolResult, error) {
		return TextResult(in.Text), nil
	})

	_, err := handler(context.Background(), json.RawMessage(`{"text":`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode arguments")
}

func TestResultHelpers(t *testing.T) {
	textResult := TextResult("ok")
	require.False(t, textResult.IsError)
	require.Equal(t, "ok", textOf(t, textResult.Content))

	errorResult := ErrorResult("failed")
	require.True(t, errorResult.IsError)
	require.Equal(t, "failed", textOf(t, errorResult.Content))

	schema := SimpleSchema(map[string]string{"x": "int"})
	tool := NewTool("sum", "adds values", schema)
	require.Equal(t, "sum", tool.Name)
	require.Equal(t, "adds values", tool.Description)
	require.Equal(t, schema, tool.InputSchema)
}
