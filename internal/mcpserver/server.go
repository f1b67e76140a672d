// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasschema validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasschema"
	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/schemastore"
)

const serverInstructions = `oasschema MCP server: validates request and response payloads against a Swagger 2.0 document.

Requests are validated body first. If the JSON body does not satisfy the operation's body parameter, the query string is validated against the operation's query parameters instead; the stage field reports which contract was satisfied.

Every tool works on the document loaded at startup (OAS_FILE) unless spec.file or spec.content is given.

Key settings:
- OASSCHEMA_CACHE_ENABLED (default: true): cache documents supplied per call
- OASSCHEMA_CACHE_FILE_TTL (default: 15m): cache TTL for file documents
- OASSCHEMA_MAX_INLINE_SIZE (default: 10MiB): limit for spec.content
- OASSCHEMA_MAX_BODY_SIZE (default: 1MiB): limit for body text
- OASSCHEMA_ROUTE_LIMIT (default: 100): default page size for list_routes`

// toolset holds the state shared by tool handlers.
type toolset struct {
	// doc is the startup document; nil when none was loaded.
	doc *oas.Document
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. store may be nil, in which case every call
// must supply its own document.
func Run(ctx context.Context, store *schemastore.Store) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer(store).Run(ctx, &mcp.StdioTransport{})
}

func newServer(store *schemastore.Store) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasschema", Version: oasschema.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	ts := &toolset{}
	if store != nil {
		ts.doc = store.Document()
	}
	ts.register(server)
	return server
}

func (ts *toolset) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate a request against the operation declared for a route template and method. Give the route exactly as declared (e.g. /books/{isbn}, with basePath if the router includes it), the method, the JSON body text (omit for no body) and the raw query string. Returns valid, the stage reached (body-accepted, query-accepted, rejected, unresolved) and the violations.",
	}, ts.handleValidateRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_response",
		Description: "Validate a response payload against the schema declared for its status code, or the default response. No query fallback or coercion applies.",
	}, ts.handleValidateResponse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_operation",
		Description: "Look up the operation for a route template and method and return its body schema (with definitions), the synthesized query schema, and declared response codes. Use before validate_request to see what a request must contain.",
	}, ts.handleResolveOperation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_routes",
		Description: "List every declared route template and method with its operationId. Templates include the document's basePath. Use offset/limit to paginate.",
	}, ts.handleListRoutes)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.RouteLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.RouteLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
