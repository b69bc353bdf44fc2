package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// Variables holds the values extracted from a URI by a resource template.
// List-valued variables keep every segment; scalar variables hold one value.
type Variables map[string][]string

// Get returns the first value of a variable.
func (v Variables) Get(name string) (string, bool) {
	values, ok := v[name]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// ResourceHandler produces the contents of a resource. uri is the requested
// URI; vars is nil for literal resources.
type ResourceHandler func(ctx context.Context, uri *url.URL, vars Variables) (*mcp.ReadResourceResult, error)

// ListFunc enumerates discoverable resources behind a template.
// It must not fail and must not have side effects.
type ListFunc func(ctx context.Context) []*mcp.Resource

type resourceEntry struct {
	resource *mcp.Resource
	handler  ResourceHandler
}

type templateEntry struct {
	template *mcp.ResourceTemplate
	compiled *uritemplate.Template
	handler  ResourceHandler
	list     ListFunc
}

// ResourceRegistry maps literal URIs and URI templates to resource handlers.
type ResourceRegistry struct {
	log       *slog.Logger
	mu        sync.RWMutex
	literals  map[string]*resourceEntry
	order     []string
	templates []*templateEntry
}

// NewResourceRegistry creates an empty resource registry.
func NewResourceRegistry(log *slog.Logger) *ResourceRegistry {
	return &ResourceRegistry{
		log:      log,
		literals: make(map[string]*resourceEntry, 4),
	}
}

// AddResource registers a resource served at a fixed URI.
// Registering the same URI twice panics.
func (r *ResourceRegistry) AddResource(resource *mcp.Resource, handler ResourceHandler) {
	if resource == nil || resource.URI == "" {
		panic("mcp: resource must have a URI")
	}

	if handler == nil {
		panic(fmt.Sprintf("mcp: resource %q has no handler", resource.URI))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.literals[resource.URI]; exists {
		panic(fmt.Sprintf("mcp: resource %q already registered", resource.URI))
	}

	r.literals[resource.URI] = &resourceEntry{resource: resource, handler: handler}
	r.order = append(r.order, resource.URI)

	r.log.Debug("Registered resource", "name", resource.Name, "uri", resource.URI)
}

// AddResourceTemplate registers a resource family addressed by an RFC 6570
// URI template. list may be nil. An invalid template panics.
func (r *ResourceRegistry) AddResourceTemplate(template *mcp.ResourceTemplate, handler ResourceHandler, list ListFunc) {
	if template == nil || template.URITemplate == "" {
		panic("mcp: resource template must have a URI template")
	}

	if handler == nil {
		panic(fmt.Sprintf("mcp: resource template %q has no handler", template.URITemplate))
	}

	compiled, err := uritemplate.New(template.URITemplate)
	if err != nil {
		panic(fmt.Sprintf("mcp: invalid resource template %q: %v", template.URITemplate, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.templates {
		if existing.template.URITemplate == template.URITemplate {
			panic(fmt.Sprintf("mcp: resource template %q already registered", template.URITemplate))
		}
	}

	r.templates = append(r.templates, &templateEntry{
		template: template,
		compiled: compiled,
		handler:  handler,
		list:     list,
	})

	r.log.Debug("Registered resource template", "name", template.Name, "uri_template", template.URITemplate)
}

// ReadResource resolves a URI to its handler and returns the contents.
//
// Literal URIs take precedence over templates; templates are tried in
// registration order. A URI nothing matches returns
// *errors.UnknownOperationError.
func (r *ResourceRegistry) ReadResource(ctx context.Context, rawURI string) (*mcp.ReadResourceResult, error) {
	uri, err := url.Parse(rawURI)
	if err != nil {
		return nil, &errors.InvalidArgumentsError{
			Operation: "resources/read",
			Fields:    []errors.FieldError{{Field: "uri", Reason: err.Error()}},
		}
	}

	handler, vars, ok := r.lookup(rawURI)
	if !ok {
		return nil, &errors.UnknownOperationError{Kind: errors.KindResource, Name: rawURI}
	}

	return handler(ctx, uri, vars)
}

func (r *ResourceRegistry) lookup(rawURI string) (ResourceHandler, Variables, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.literals[rawURI]; ok {
		return entry.handler, nil, true
	}

	for _, entry := range r.templates {
		values := entry.compiled.Match(rawURI)
		if values == nil {
			continue
		}

		return entry.handler, templateVariables(entry.compiled, values), true
	}

	return nil, nil, false
}

// templateVariables copies matched template values into Variables.
func templateVariables(compiled *uritemplate.Template, values uritemplate.Values) Variables {
	vars := make(Variables, len(compiled.Varnames()))

	for _, name := range compiled.Varnames() {
		value := values.Get(name)
		if !value.Valid() {
			continue
		}

		switch value.T {
		case uritemplate.ValueTypeList:
			vars[name] = value.List()
		case uritemplate.ValueTypeKV:
			vars[name] = value.KV()
		default:
			vars[name] = []string{value.String()}
		}
	}

	return vars
}

// ListResources returns the literal resources in registration order followed
// by the entries of every template's list function.
func (r *ResourceRegistry) ListResources(ctx context.Context) []*mcp.Resource {
	resources := r.literalResources()

	return append(resources, r.listedResources(ctx)...)
}

// ListResourceTemplates returns every registered template in registration order.
func (r *ResourceRegistry) ListResourceTemplates() []*mcp.ResourceTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]*mcp.ResourceTemplate, 0, len(r.templates))
	for _, entry := range r.templates {
		templates = append(templates, entry.template)
	}

	return templates
}

func (r *ResourceRegistry) literalResources() []*mcp.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resources := make([]*mcp.Resource, 0, len(r.order))
	for _, uri := range r.order {
		resources = append(resources, r.literals[uri].resource)
	}

	return resources
}

// listedResources runs the template list functions. These are the resources
// the SDK does not know about, so they are appended to resources/list.
func (r *ResourceRegistry) listedResources(ctx context.Context) []*mcp.Resource {
	r.mu.RLock()
	lists := make([]ListFunc, 0, len(r.templates))
	for _, entry := range r.templates {
		if entry.list != nil {
			lists = append(lists, entry.list)
		}
	}
	r.mu.RUnlock()

	var resources []*mcp.Resource
	for _, list := range lists {
		resources = append(resources, list(ctx)...)
	}

	return resources
}

// mount registers every resource and template on an SDK server.
func (r *ResourceRegistry) mount(server *mcp.Server) {
	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI

		result, err := r.ReadResource(ctx, uri)
		if _, unknown := stderrors.AsType[*errors.UnknownOperationError](err); unknown {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		return result, err
	}

	for _, resource := range r.literalResources() {
		server.AddResource(resource, handler)
	}

	for _, template := range r.ListResourceTemplates() {
		server.AddResourceTemplate(template, handler)
	}
}

// TextContents creates a ReadResourceResult with a single text entry.
func TextContents(uri, text, mimeType string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, Text: text, MIMEType: mimeType},
		},
	}
}
