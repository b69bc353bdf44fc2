package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	demoserver "github.com/wagiedev/mcp-demo-server"
	"github.com/wagiedev/mcp-demo-server/internal/config"
	"github.com/wagiedev/mcp-demo-server/internal/transport"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitServeFailed = 1
	ExitUsage       = 2
)

// ServeFunc runs the server for a resolved configuration until ctx is done.
type ServeFunc func(ctx context.Context, cfg *config.Config, log *slog.Logger, deps *Deps) error

// Deps holds the process resources the command uses. Zero fields fall back
// to the real process.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer

	// Environ replaces the process environment when non-nil.
	Environ map[string]string

	// StdioTransport creates the transport used for --transport stdio.
	StdioTransport func() mcp.Transport

	// Serve replaces the default serve loop.
	Serve ServeFunc
}

func (d *Deps) withDefaults() *Deps {
	out := *d

	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}

	if out.Stderr == nil {
		out.Stderr = os.Stderr
	}

	if out.StdioTransport == nil {
		out.StdioTransport = demoserver.NewStdioTransport
	}

	if out.Serve == nil {
		out.Serve = Serve
	}

	return &out
}

// usageError marks errors caused by invalid flags or configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// startError marks errors from connecting or serving.
type startError struct {
	err error
}

func (e *startError) Error() string { return e.err.Error() }

func (e *startError) Unwrap() error { return e.err }

// Execute runs the command line with args and returns the exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	d := deps.withDefaults()

	cmd, err := NewRootCommand(d)
	if err != nil {
		fmt.Fprintf(d.Stderr, "Error: %v\n", err)

		return ExitUsage
	}

	cmd.SetArgs(args)

	err = cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	if _, ok := stderrors.AsType[*startError](err); ok {
		fmt.Fprintf(d.Stderr, "Failed to start MCP server: %v\n", err)

		return ExitServeFailed
	}

	fmt.Fprintf(d.Stderr, "Error: %v\n", err)

	return ExitUsage
}

// NewRootCommand builds the root command. Flag defaults are taken from the
// environment so that explicit flags override it.
func NewRootCommand(deps *Deps) (*cobra.Command, error) {
	cfg, err := config.LoadFrom(deps.Environ)
	if err != nil {
		return nil, err
	}

	var transportKind string

	cmd := &cobra.Command{
		Use:   "mcp-demo-server",
		Short: "MCP server with calculator tools, file resources, and a code review prompt",
		Long: `mcp-demo-server serves the Model Context Protocol.

It exposes the add, subtract, and multiply tools, the file:///{+path} and
text://hello-world resources, and the review-code prompt.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Transport = config.TransportKind(transportKind)

			if err := cfg.Validate(); err != nil {
				return &usageError{err: err}
			}

			log, err := NewLogger(deps.Stderr, cfg)
			if err != nil {
				return &usageError{err: err}
			}

			if err := deps.Serve(cmd.Context(), cfg, log, deps); err != nil {
				return &startError{err: err}
			}

			return nil
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&transportKind, "transport", string(cfg.Transport), "transport to serve on: stdio or http")
	flags.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "listen address for the http transport")
	flags.Float64Var(&cfg.HTTPRateLimit, "http-rate-limit", cfg.HTTPRateLimit, "max /mcp requests per second for the http transport, 0 for unlimited")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, or error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flags.StringVar(&cfg.CatalogRoot, "catalog-root", cfg.CatalogRoot, "directory the static file listing points into")

	cmd.AddCommand(newVersionCommand())

	return cmd, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name and version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", demoserver.DefaultName, demoserver.DefaultVersion)
		},
	}
}

// NewLogger builds the process logger writing to w.
func NewLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(config.NormalizeLogLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Serve runs the demo server on the configured transport until ctx is done
// or, for stdio, the client disconnects.
func Serve(ctx context.Context, cfg *config.Config, log *slog.Logger, deps *Deps) error {
	opts := []demoserver.Option{
		demoserver.WithLogger(log),
		demoserver.WithCatalogRoot(cfg.CatalogRoot),
	}

	if cfg.Transport == config.TransportHTTP {
		opts = append(opts, demoserver.WithMetrics())
	}

	srv := demoserver.New(opts...)

	switch cfg.Transport {
	case config.TransportHTTP:
		httpServer := transport.NewHTTPServer(log, cfg.HTTPAddr, srv.MCPServer(), srv.MetricsHandler(),
			transport.WithRateLimit(cfg.HTTPRateLimit))

		return httpServer.ListenAndServe(ctx)
	default:
		log.Info("Serving MCP over stdio")

		return srv.Run(ctx, deps.StdioTransport())
	}
}
