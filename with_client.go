package demoserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WithClient runs a server in-process, connects a client to it over
// in-memory transports, and calls fn with the client session.
//
// Both sessions are closed when fn returns. If closing fails, a warning is
// logged but does not override fn's error.
//
// Example usage:
//
//	err := demoserver.WithClient(ctx, func(cs *mcp.ClientSession) error {
//	    res, err := cs.CallTool(ctx, &mcp.CallToolParams{
//	        Name:      "add",
//	        Arguments: map[string]any{"a": 2, "b": 3},
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    // res.Content[0] is the text "5"
//	    return nil
//	},
//	    demoserver.WithLogger(log),
//	)
func WithClient(ctx context.Context, fn func(*mcp.ClientSession) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	srv := New(opts...)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := srv.Connect(ctx, serverTransport)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := serverSession.Close(); closeErr != nil {
			srv.log.Warn("failed to close server session", "error", closeErr)
		}
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "demoserver-client", Version: DefaultVersion}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return fmt.Errorf("failed to connect client: %w", err)
	}

	defer func() {
		if closeErr := clientSession.Close(); closeErr != nil {
			srv.log.Warn("failed to close client session", "error", closeErr)
		}
	}()

	return fn(clientSession)
}
