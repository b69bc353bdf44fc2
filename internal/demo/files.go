package demo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
)

const (
	// FileURITemplate addresses any file by absolute path. Reserved expansion
	// lets the path variable span slashes.
	FileURITemplate = "file:///{+path}"

	// DefaultCatalogRoot is the directory the static file listing points into.
	DefaultCatalogRoot = "/srv/calc-server"

	textMIMEType = "text/plain"
	jsonMIMEType = "application/json"
)

// FileResource serves file contents as text.
//
// Read failures never escape: they are logged and returned as the text of
// an otherwise successful result.
type FileResource struct {
	log         *slog.Logger
	catalogRoot string
	readFile    func(name string) ([]byte, error)
}

// NewFileResource creates a file resource whose listing points into catalogRoot.
// An empty catalogRoot uses DefaultCatalogRoot.
func NewFileResource(log *slog.Logger, catalogRoot string) *FileResource {
	if catalogRoot == "" {
		catalogRoot = DefaultCatalogRoot
	}

	return &FileResource{
		log:         log,
		catalogRoot: catalogRoot,
		readFile:    os.ReadFile,
	}
}

// Template returns the resource template descriptor.
func (f *FileResource) Template() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "file",
		URITemplate: FileURITemplate,
		Description: "Reads the contents of a file as text",
		MIMEType:    textMIMEType,
	}
}

// Read resolves the file path from the URI and returns the file contents.
func (f *FileResource) Read(ctx context.Context, uri *url.URL, vars internalmcp.Variables) (*mcp.ReadResourceResult, error) {
	href := uri.String()

	text, err := f.readText(ctx, ResolvePath(uri, vars), href)
	if err != nil {
		f.log.ErrorContext(ctx, fmt.Sprintf("File read error for %s: %s", href, err))

		text = "Error reading file: " + err.Error()
	}

	return internalmcp.TextContents(href, text, textMIMEType), nil
}

func (f *FileResource) readText(ctx context.Context, filePath, href string) (string, error) {
	f.log.InfoContext(ctx, fmt.Sprintf("Reading file: %s (from URI: %s)", filePath, href))

	data, err := f.readFile(filePath)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// List returns the fixed catalog of example files. It does not touch the
// filesystem.
func (f *FileResource) List(context.Context) []*mcp.Resource {
	return []*mcp.Resource{
		{
			URI:         catalogURI(f.catalogRoot, "package.json"),
			Name:        "package.json",
			Description: "Package configuration file",
			MIMEType:    jsonMIMEType,
		},
		{
			URI:         catalogURI(f.catalogRoot, "tsconfig.json"),
			Name:        "tsconfig.json",
			Description: "TypeScript configuration file",
			MIMEType:    jsonMIMEType,
		},
	}
}

func catalogURI(root, name string) string {
	u := url.URL{Scheme: "file", Path: path.Join("/", root, name)}

	return u.String()
}

// ResolvePath determines the file path a URI refers to.
//
// The decoded URI path wins when non-empty, with "." and ".." segments
// removed. Otherwise the path template variable is used, its segments joined
// with "/" and made absolute.
func ResolvePath(uri *url.URL, vars internalmcp.Variables) string {
	if uri != nil && uri.Path != "" {
		return uri.ResolveReference(&url.URL{Path: uri.Path}).Path
	}

	filePath := strings.Join(vars["path"], "/")
	if filePath == "" {
		return ""
	}

	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}

	return filePath
}
