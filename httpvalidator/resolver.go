package httpvalidator

import (
	"strings"

	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// Resolution is the outcome of looking up a route template and method in a
// document. It exposes the schema derivations for the matched operation.
type Resolution struct {
	// Path is the route template after basePath stripping, as found in the document.
	Path string

	// Method is the lowercase HTTP method.
	Method string

	// Operation is the matched operation entry.
	Operation *oas.Operation

	// definitions are injected into every body and response schema so that
	// "#/definitions/..." references resolve.
	definitions map[string]oas.Schema
}

// Resolve finds the operation declared for routeTemplate and method.
//
// routeTemplate must use {name} placeholders, exactly as written in the
// document's paths (optionally prefixed with the document's basePath).
// Matching is an exact lookup on the template string followed by an exact
// lookup on the lowercase method; no concrete URL matching is attempted.
// basePath is stripped as a plain string prefix, so a document declaring
// basePath "/" only resolves templates written as "//health".
//
// Returns a *oaserrors.SchemaNotFoundError when no entry exists.
func Resolve(doc *oas.Document, routeTemplate, method string) (*Resolution, error) {
	method = strings.ToLower(method)
	if doc == nil {
		return nil, &oaserrors.SchemaNotFoundError{Path: routeTemplate, Method: method, Message: "no schema document loaded"}
	}

	path := StripBasePath(doc.BasePath, routeTemplate)

	item, ok := doc.Paths[path]
	if !ok || item == nil {
		return nil, &oaserrors.SchemaNotFoundError{Path: path, Method: method, Message: "path is not declared"}
	}

	op := item.Operation(method)
	if op == nil {
		return nil, &oaserrors.SchemaNotFoundError{Path: path, Method: method, Message: "method is not declared for path"}
	}

	return &Resolution{
		Path:        path,
		Method:      method,
		Operation:   op,
		definitions: doc.Definitions,
	}, nil
}

// ResolveOperation is Resolve for callers that only need the operation.
func ResolveOperation(doc *oas.Document, routeTemplate, method string) (*oas.Operation, error) {
	res, err := Resolve(doc, routeTemplate, method)
	if err != nil {
		return nil, err
	}
	return res.Operation, nil
}

// StripBasePath removes basePath from the front of routeTemplate when
// basePath is set and is an exact prefix. Otherwise routeTemplate is
// returned verbatim. No slash normalization is done: with basePath "/" the
// template "/health" becomes "health".
func StripBasePath(basePath, routeTemplate string) string {
	if basePath != "" && strings.HasPrefix(routeTemplate, basePath) {
		return routeTemplate[len(basePath):]
	}
	return routeTemplate
}

// RouteTemplate converts a router rule written with angle-bracket
// placeholders ("/books/<isbn>", "/books/<int:id>") into the {name} form
// used by OpenAPI paths. Converter prefixes are dropped. Text without
// placeholders is returned unchanged.
func RouteTemplate(rule string) string {
	if !strings.Contains(rule, "<") {
		return rule
	}

	var b strings.Builder
	b.Grow(len(rule))
	for {
		start := strings.IndexByte(rule, '<')
		if start < 0 {
			b.WriteString(rule)
			break
		}
		end := strings.IndexByte(rule[start:], '>')
		if end < 0 {
			b.WriteString(rule)
			break
		}
		name := rule[start+1 : start+end]
		if i := strings.LastIndexByte(name, ':'); i >= 0 {
			name = name[i+1:]
		}
		b.WriteString(rule[:start])
		b.WriteByte('{')
		b.WriteString(name)
		b.WriteByte('}')
		rule = rule[start+end+1:]
	}
	return b.String()
}

// PatternTemplate extracts the path template from a net/http ServeMux
// pattern such as "PUT example.com/books/{isbn}". The method and host are
// dropped, "{$}" anchors are removed and "{name...}" wildcards become
// "{name}".
func PatternTemplate(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if i := strings.IndexAny(pattern, " \t"); i >= 0 {
		pattern = strings.TrimSpace(pattern[i+1:])
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		pattern = pattern[i:]
	}
	pattern = strings.ReplaceAll(pattern, "{$}", "")
	pattern = strings.ReplaceAll(pattern, "...}", "}")
	return pattern
}
