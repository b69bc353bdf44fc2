package protocol

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RequestLogging returns a receiving middleware that tags each request with an
// ID, logs it, and records it in metrics. metrics may be nil.
func RequestLogging(log *slog.Logger, metrics *Metrics) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			id := NewRequestID()
			ctx = WithRequestID(ctx, id)

			metrics.begin()
			start := time.Now()

			result, err := next(ctx, method, req)

			elapsed := time.Since(start)
			outcome := outcomeOf(result, err)
			metrics.end(method, outcome, elapsed)

			switch outcome {
			case OutcomeError:
				log.Warn("Request failed",
					"method", method, "request_id", id, "duration", elapsed, "error", err)
			case OutcomeToolError:
				log.Warn("Tool returned an error result",
					"method", method, "request_id", id, "duration", elapsed)
			default:
				log.Debug("Handled request", "method", method, "request_id", id, "duration", elapsed)
			}

			return result, err
		}
	}
}

func outcomeOf(result mcp.Result, err error) string {
	if err != nil {
		return OutcomeError
	}

	if res, ok := result.(*mcp.CallToolResult); ok && res != nil && res.IsError {
		return OutcomeToolError
	}

	return OutcomeOK
}
