package demoserver

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Transport is a go-sdk MCP transport. Use NewStdioTransport for the
// standard process transport, or mcp.NewInMemoryTransports in tests.
type Transport = mcp.Transport

// NewStdioTransport returns a transport over the process's stdin and stdout.
// Nothing else may write to stdout while it is in use.
func NewStdioTransport() Transport {
	return &mcp.StdioTransport{}
}
