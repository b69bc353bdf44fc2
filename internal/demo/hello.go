package demo

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
)

// HelloURI is the fixed address of the hello resource.
const HelloURI = "text://hello-world"

func helloResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "hello",
		URI:         HelloURI,
		Description: "A simple text resource that returns 'hello world'",
		MIMEType:    textMIMEType,
	}
}

func readHello(_ context.Context, uri *url.URL, _ internalmcp.Variables) (*mcp.ReadResourceResult, error) {
	return internalmcp.TextContents(uri.String(), "hello world", textMIMEType), nil
}
