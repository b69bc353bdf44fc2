package mcp

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func errorsAs[T error](err error) (T, bool) {
	return stderrors.AsType[T](err)
}

// connectClient mounts reg on a fresh SDK server and returns a client session
// talking to it over in-memory transports.
func connectClient(t *testing.T, reg *Registry) *mcpgo.ClientSession {
	t.Helper()

	ctx := context.Background()

	server := mcpgo.NewServer(&mcpgo.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	reg.Mount(server)

	serverTransport, clientTransport := mcpgo.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "client", Version: "v0.0.1"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func textOf(t *testing.T, content []mcpgo.Content) string {
	t.Helper()

	require.Len(t, content, 1)

	text, ok := content[0].(*mcpgo.TextContent)
	require.True(t, ok, "expected text content, got %T", content[0])

	return text.Text
}
