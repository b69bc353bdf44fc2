package transport

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// MCPPath is the route of the streamable HTTP endpoint.
const MCPPath = "/mcp"

const shutdownTimeout = 5 * time.Second

// gin writes route debug output to stdout unless in release mode.
var releaseMode sync.Once

// HTTPServer exposes one MCP server over streamable HTTP.
type HTTPServer struct {
	log    *slog.Logger
	addr   string
	router *gin.Engine
}

// HTTPOption configures an HTTPServer.
type HTTPOption func(*httpOptions)

type httpOptions struct {
	rateLimit float64
}

// WithRateLimit limits /mcp to rps requests per second with a burst of twice
// that. Zero or less disables limiting.
func WithRateLimit(rps float64) HTTPOption {
	return func(o *httpOptions) {
		o.rateLimit = rps
	}
}

// NewHTTPServer creates an HTTP server for mcpServer listening on addr.
// metrics may be nil, in which case /metrics is not routed.
func NewHTTPServer(
	log *slog.Logger,
	addr string,
	mcpServer *mcp.Server,
	metrics http.Handler,
	opts ...HTTPOption,
) *HTTPServer {
	var o httpOptions
	for _, opt := range opts {
		opt(&o)
	}

	releaseMode.Do(func() { gin.SetMode(gin.ReleaseMode) })

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	mcpHandlers := []gin.HandlerFunc{gin.WrapH(streamable)}
	if o.rateLimit > 0 {
		mcpHandlers = append([]gin.HandlerFunc{rateLimiter(log, o.rateLimit)}, mcpHandlers...)
	}

	router.Any(MCPPath, mcpHandlers...)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	return &HTTPServer{log: log, addr: addr, router: router}
}

// Handler returns the routed handler, for mounting or tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled. A listen failure is returned immediately.
func (s *HTTPServer) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("Serving MCP over HTTP", "addr", ln.Addr().String(), "path", MCPPath)

		if err := srv.Serve(ln); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.log.Debug("Shutting down HTTP server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// rateLimiter rejects requests beyond rps with 429 Too Many Requests.
func rateLimiter(log *slog.Logger, rps float64) gin.HandlerFunc {
	burst := max(int(rps*2), 1)
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.Warn("Rate limit exceeded", "path", c.Request.URL.Path, "remote", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})

			return
		}

		c.Next()
	}
}
