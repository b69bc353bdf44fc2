package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// PromptGenerator builds the message sequence of a prompt from its arguments.
type PromptGenerator func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error)

type promptEntry struct {
	prompt    *mcp.Prompt
	generator PromptGenerator
}

// PromptRegistry maps prompt names to their descriptors and generators.
type PromptRegistry struct {
	log     *slog.Logger
	mu      sync.RWMutex
	prompts map[string]*promptEntry
	order   []string
}

// NewPromptRegistry creates an empty prompt registry.
func NewPromptRegistry(log *slog.Logger) *PromptRegistry {
	return &PromptRegistry{
		log:     log,
		prompts: make(map[string]*promptEntry, 4),
	}
}

// AddPrompt registers a prompt. Registering the same name twice panics.
func (r *PromptRegistry) AddPrompt(prompt *mcp.Prompt, generator PromptGenerator) {
	if prompt == nil || prompt.Name == "" {
		panic("mcp: prompt must have a name")
	}

	if generator == nil {
		panic(fmt.Sprintf("mcp: prompt %q has no generator", prompt.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.prompts[prompt.Name]; exists {
		panic(fmt.Sprintf("mcp: prompt %q already registered", prompt.Name))
	}

	r.prompts[prompt.Name] = &promptEntry{prompt: prompt, generator: generator}
	r.order = append(r.order, prompt.Name)

	r.log.Debug("Registered prompt", "name", prompt.Name)
}

// ListPrompts returns every registered prompt in registration order.
func (r *PromptRegistry) ListPrompts() []*mcp.Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prompts := make([]*mcp.Prompt, 0, len(r.order))
	for _, name := range r.order {
		prompts = append(prompts, r.prompts[name].prompt)
	}

	return prompts
}

// GetPrompt generates a prompt by name. Every argument declared Required must
// be present in args.
func (r *PromptRegistry) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	r.mu.RLock()
	entry, exists := r.prompts[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &errors.UnknownOperationError{Kind: errors.KindPrompt, Name: name}
	}

	var violations []errors.FieldError

	for _, arg := range entry.prompt.Arguments {
		if _, ok := args[arg.Name]; arg.Required && !ok {
			violations = append(violations, errors.FieldError{Field: arg.Name, Reason: "is required"})
		}
	}

	if len(violations) > 0 {
		slices.SortFunc(violations, func(a, b errors.FieldError) int {
			return strings.Compare(a.Field, b.Field)
		})

		return nil, &errors.InvalidArgumentsError{Operation: name, Fields: violations}
	}

	if args == nil {
		args = map[string]string{}
	}

	return entry.generator(ctx, args)
}

// mount registers every prompt on an SDK server.
func (r *PromptRegistry) mount(server *mcp.Server) {
	for _, prompt := range r.ListPrompts() {
		name := prompt.Name

		server.AddPrompt(prompt, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			var args map[string]string
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}

			return r.GetPrompt(ctx, name, args)
		})
	}
}

// UserMessage creates a GetPromptResult holding one user text message.
func UserMessage(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
