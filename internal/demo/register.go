package demo

import (
	"io"
	"log/slog"

	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
)

// Options configures the built-in catalog.
type Options struct {
	// Logger receives the file resource diagnostics. If nil, they are discarded.
	Logger *slog.Logger

	// CatalogRoot is the directory the static file listing points into.
	CatalogRoot string
}

// Register adds every built-in tool, resource, and prompt to reg.
func Register(reg *internalmcp.Registry, opts Options) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	RegisterCalculator(reg.Tools())

	files := NewFileResource(log, opts.CatalogRoot)
	reg.Resources().AddResourceTemplate(files.Template(), files.Read, files.List)
	reg.Resources().AddResource(helloResource(), readHello)

	reg.Prompts().AddPrompt(reviewCodePrompt(), reviewCode)
}
