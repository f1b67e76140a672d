package httpvalidator

import (
	"slices"
	"strings"

	"github.com/erraggy/oasschema/oas"
)

// RouteMatcher maps concrete request paths back to the route templates
// declared in a document. It is used when the router does not expose the
// template it matched.
//
// Templates are returned with the document's basePath prepended, so they can
// be passed to Resolve unchanged. The prefix is concatenated verbatim: a
// basePath of "/" yields "//health", which no request path matches.
type RouteMatcher struct {
	routes []routeTemplate
}

type routeTemplate struct {
	template string
	segments []string

	// literal is the number of non-placeholder segments; more literal
	// segments win over placeholders.
	literal int
}

// NewRouteMatcher builds a matcher for every path declared in doc.
func NewRouteMatcher(doc *oas.Document) *RouteMatcher {
	m := &RouteMatcher{}
	if doc == nil {
		return m
	}
	for path := range doc.Paths {
		tmpl := doc.BasePath + path
		segs := splitPath(tmpl)
		literal := 0
		for _, s := range segs {
			if !isPlaceholder(s) {
				literal++
			}
		}
		m.routes = append(m.routes, routeTemplate{template: tmpl, segments: segs, literal: literal})
	}

	slices.SortFunc(m.routes, func(a, b routeTemplate) int {
		if a.literal != b.literal {
			return b.literal - a.literal
		}
		if len(a.template) != len(b.template) {
			return len(b.template) - len(a.template)
		}
		return strings.Compare(a.template, b.template)
	})
	return m
}

// Match returns the most specific template matching requestPath and the
// values captured by its placeholders.
func (m *RouteMatcher) Match(requestPath string) (template string, params map[string]string, found bool) {
	segs := splitPath(requestPath)
	for _, rt := range m.routes {
		if len(rt.segments) != len(segs) {
			continue
		}
		if p, ok := rt.match(segs); ok {
			return rt.template, p, true
		}
	}
	return "", nil, false
}

// Templates returns all templates in match order.
func (m *RouteMatcher) Templates() []string {
	out := make([]string, len(m.routes))
	for i, rt := range m.routes {
		out[i] = rt.template
	}
	return out
}

func (rt routeTemplate) match(segs []string) (map[string]string, bool) {
	var params map[string]string
	for i, want := range rt.segments {
		got := segs[i]
		if !isPlaceholder(want) {
			if want != got {
				return nil, false
			}
			continue
		}
		if got == "" {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[want[1:len(want)-1]] = got
	}
	return params, true
}

func isPlaceholder(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}

func splitPath(p string) []string {
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
