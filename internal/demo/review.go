package demo

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
)

func reviewCodePrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "review-code",
		Description: "Generates a prompt to review code for best practices and potential issues",
		Arguments: []*mcp.PromptArgument{
			{Name: "code", Description: "The code to review", Required: true},
		},
	}
}

func reviewCode(_ context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	return internalmcp.UserMessage("Please review this code:\n\n" + args["code"]), nil
}
