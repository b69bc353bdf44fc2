package protocol

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the server goroutines to log into.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

type harness struct {
	session *mcp.ClientSession
	metrics *Metrics
	logs    *syncBuffer
	ids     chan string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctx := context.Background()
	h := &harness{metrics: NewMetrics(), logs: &syncBuffer{}, ids: make(chan string, 8)}
	log := slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	schema := &jsonschema.Schema{Type: "object"}

	server.AddTool(&mcp.Tool{Name: "echo", InputSchema: schema},
		func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			h.ids <- RequestIDFromContext(ctx)

			return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "ok"}}}, nil
		})
	server.AddTool(&mcp.Tool{Name: "broken", InputSchema: schema},
		func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "boom"}}, IsError: true}, nil
		})

	server.AddReceivingMiddleware(RequestLogging(log, h.metrics))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)

	h.session, err = client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.session.Close() })

	return h
}

func TestRequestLogging_AssignsRequestIDs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	for range 2 {
		_, err := h.session.CallTool(ctx, &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{}})
		require.NoError(t, err)
	}

	first, second := <-h.ids, <-h.ids
	require.Len(t, first, 26)
	require.Len(t, second, 26)
	require.NotEqual(t, first, second)

	require.Contains(t, h.logs.String(), "request_id="+first)
}

func TestRequestLogging_RecordsMetrics(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	_, err := h.session.CallTool(ctx, &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{}})
	require.NoError(t, err)

	result, err := h.session.CallTool(ctx, &mcp.CallToolParams{Name: "broken", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.True(t, result.IsError)

	require.InDelta(t, 1, testutil.ToFloat64(h.metrics.requests.WithLabelValues("tools/call", OutcomeOK)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(h.metrics.requests.WithLabelValues("tools/call", OutcomeToolError)), 0)

	require.Contains(t, h.logs.String(), "Tool returned an error result")
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	metrics.begin()
	metrics.end("tools/list", OutcomeOK, 0)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `mcp_demo_requests_total{method="tools/list",outcome="ok"} 1`), string(body))
	require.Contains(t, string(body), "mcp_demo_request_duration_seconds_bucket")
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var metrics *Metrics

	require.NotPanics(t, func() {
		metrics.begin()
		metrics.end("ping", OutcomeOK, 0)
	})
	require.Nil(t, metrics.Registry())

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 404, rec.Code)
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result mcp.Result
		err    error
		want   string
	}{
		{name: "error", err: errors.New("boom"), want: OutcomeError},
		{name: "tool error result", result: &mcp.CallToolResult{IsError: true}, want: OutcomeToolError},
		{name: "tool result", result: &mcp.CallToolResult{}, want: OutcomeOK},
		{name: "other result", result: &mcp.ListToolsResult{}, want: OutcomeOK},
		{name: "nil result", want: OutcomeOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, outcomeOf(tc.result, tc.err))
		})
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, RequestIDFromContext(context.Background()))
	require.Equal(t, "abc", RequestIDFromContext(WithRequestID(context.Background(), "abc")))
}
