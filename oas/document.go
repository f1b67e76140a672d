package oas

import (
	"slices"
	"strings"
)

// Document represents the subset of an OpenAPI Specification 2.0 (Swagger)
// document needed for validation.
// Reference: https://spec.openapis.org/oas/v2.0.html
type Document struct {
	Swagger     string               `yaml:"swagger,omitempty" json:"swagger,omitempty"`
	Info        *Info                `yaml:"info,omitempty" json:"info,omitempty"`
	BasePath    string               `yaml:"basePath,omitempty" json:"basePath,omitempty"`
	Paths       map[string]*PathItem `yaml:"paths" json:"paths"`
	Definitions map[string]Schema    `yaml:"definitions,omitempty" json:"definitions,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// PathItem describes the operations available on a single path template.
type PathItem struct {
	Get     *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty" json:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty" json:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty" json:"patch,omitempty"`
	// Parameters declared at path level. They are decoded for completeness
	// but are not merged into the operations' own parameter lists.
	Parameters []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Methods lists the lowercase HTTP methods a PathItem can declare, in
// document order.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Operation returns the operation declared for method, or nil.
// The method is matched on its lowercase form.
func (p *PathItem) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch strings.ToLower(method) {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	default:
		return nil
	}
}

// DeclaredMethods returns the lowercase methods that have an operation.
func (p *PathItem) DeclaredMethods() []string {
	var methods []string
	for _, m := range Methods {
		if p.Operation(m) != nil {
			methods = append(methods, m)
		}
	}
	return methods
}

// Operation is one (path, method) entry of the document.
type Operation struct {
	OperationID string               `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string               `yaml:"summary,omitempty" json:"summary,omitempty"`
	Parameters  []*Parameter         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty" json:"responses,omitempty"`
}

// Parameter locations recognised by the validator. Any other value,
// including the empty string, is ignored.
const (
	InBody  = "body"
	InQuery = "query"
)

// Parameter describes a single operation parameter.
// Body parameters carry a Schema; query parameters carry scalar keywords.
type Parameter struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	In          string `yaml:"in,omitempty" json:"in,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string `yaml:"format,omitempty" json:"format,omitempty"`
	Enum        []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Response describes a single declared response.
type Response struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Schema      Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Route pairs a path template with one of its declared methods.
type Route struct {
	Path      string
	Method    string
	Operation *Operation
}

// Routes returns every (path, method) pair in the document, sorted by path
// and then by method order.
func (d *Document) Routes() []Route {
	if d == nil {
		return nil
	}
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	var routes []Route
	for _, p := range paths {
		item := d.Paths[p]
		for _, m := range item.DeclaredMethods() {
			routes = append(routes, Route{Path: p, Method: m, Operation: item.Operation(m)})
		}
	}
	return routes
}
