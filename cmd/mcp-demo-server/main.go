// Command mcp-demo-server serves the demo MCP catalog over stdio or HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wagiedev/mcp-demo-server/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], cli.Deps{})

	stop()
	os.Exit(code)
}
