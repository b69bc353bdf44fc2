package demoserver

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-demo-server/internal/demo"
	"github.com/wagiedev/mcp-demo-server/internal/errors"
	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
	"github.com/wagiedev/mcp-demo-server/internal/protocol"
)

// Server is the demo MCP server with its built-in catalog registered.
type Server struct {
	log      *slog.Logger
	registry *internalmcp.Registry
	server   *mcp.Server
	metrics  *protocol.Metrics
}

// New creates a server with the calculator tools, the file and hello
// resources, and the review-code prompt.
func New(opts ...Option) *Server {
	o := applyOptions(opts)

	registry := internalmcp.NewRegistry(o.logger)
	demo.Register(registry, demo.Options{Logger: o.logger, CatalogRoot: o.catalogRoot})

	server := mcp.NewServer(&mcp.Implementation{Name: o.name, Version: o.version}, nil)
	registry.Mount(server)

	var metrics *protocol.Metrics
	if o.metrics {
		metrics = protocol.NewMetrics()
	}

	server.AddReceivingMiddleware(protocol.RequestLogging(o.logger, metrics))

	return &Server{
		log:      o.logger,
		registry: registry,
		server:   server,
		metrics:  metrics,
	}
}

// MCPServer returns the underlying go-sdk server, for transports such as
// the streamable HTTP handler that need it directly.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// MetricsHandler serves request metrics in the Prometheus format.
// Without WithMetrics it returns nil.
func (s *Server) MetricsHandler() http.Handler {
	if s.metrics == nil {
		return nil
	}

	return s.metrics.Handler()
}

// Connect attaches the server to transport once and returns the session.
// A failure is returned as *ConnectError; it is not retried.
func (s *Server) Connect(ctx context.Context, transport Transport) (*mcp.ServerSession, error) {
	if s == nil || s.server == nil {
		return nil, ErrServerNotConfigured
	}

	if transport == nil {
		return nil, &errors.ConnectError{Err: ErrTransportRequired}
	}

	session, err := s.server.Connect(ctx, transport, nil)
	if err != nil {
		s.log.Error("Failed to connect transport", "error", err)

		return nil, &errors.ConnectError{Err: err}
	}

	s.log.Debug("Connected transport", "session_id", session.ID())

	return session, nil
}

// Run connects to transport and serves until the client disconnects or ctx
// is cancelled. Both are a clean stop and return nil.
func (s *Server) Run(ctx context.Context, transport Transport) error {
	session, err := s.Connect(ctx, transport)
	if err != nil {
		return err
	}

	done := make(chan error, 1)

	go func() {
		done <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		s.log.Debug("Context done, closing session")

		_ = session.Close()
		<-done

		return nil
	case err := <-done:
		if err == nil || stderrors.Is(err, io.EOF) {
			s.log.Debug("Client disconnected")

			return nil
		}

		return fmt.Errorf("serve session: %w", err)
	}
}

// CallTool runs a tool in-process. args may be nil.
//
// Unlike a protocol call, unknown tools and invalid arguments return an
// error rather than an error result.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if s == nil || s.registry == nil {
		return nil, ErrServerNotConfigured
	}

	var raw json.RawMessage

	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, &errors.InvalidArgumentsError{Operation: name, Err: err}
		}

		raw = data
	}

	return s.registry.Tools().CallTool(ctx, name, raw)
}

// ReadResource reads a resource in-process.
func (s *Server) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	if s == nil || s.registry == nil {
		return nil, ErrServerNotConfigured
	}

	return s.registry.Resources().ReadResource(ctx, uri)
}

// GetPrompt renders a prompt in-process.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	if s == nil || s.registry == nil {
		return nil, ErrServerNotConfigured
	}

	return s.registry.Prompts().GetPrompt(ctx, name, args)
}

// ListTools returns the tool descriptors in registration order.
func (s *Server) ListTools() []*mcp.Tool {
	return s.registry.Tools().ListTools()
}

// ListResources returns the literal resources followed by the static file
// listing.
func (s *Server) ListResources(ctx context.Context) []*mcp.Resource {
	return s.registry.Resources().ListResources(ctx)
}

// ListResourceTemplates returns the resource template descriptors.
func (s *Server) ListResourceTemplates() []*mcp.ResourceTemplate {
	return s.registry.Resources().ListResourceTemplates()
}

// ListPrompts returns the prompt descriptors.
func (s *Server) ListPrompts() []*mcp.Prompt {
	return s.registry.Prompts().ListPrompts()
}
