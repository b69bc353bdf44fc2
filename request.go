package demoserver

import (
	"context"

	"github.com/wagiedev/mcp-demo-server/internal/protocol"
)

// RequestIDFromContext returns the ID the server assigned to the MCP request
// being handled, or "" outside a request. Log handlers receive the request
// context, so a custom slog.Handler can use it to correlate records.
func RequestIDFromContext(ctx context.Context) string {
	return protocol.RequestIDFromContext(ctx)
}
