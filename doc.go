// Package oasschema validates HTTP traffic against a Swagger 2.0 (OpenAPI 2.0)
// document.
//
// # Overview
//
// The module is split into small packages:
//
//   - oas: decode the document (JSON or YAML) into typed structures
//   - httpvalidator: resolve operations, derive schemas, coerce query values
//     and validate requests and responses; net/http middleware
//   - schemastore: load the document once at startup and share it
//   - oaserrors: error kinds for programmatic handling with errors.Is
//
// # Quick Start
//
//	store, err := schemastore.Open(schemastore.ConfigFromEnv().Options()...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("PUT /books/{isbn}", store.Validator().Middleware()(putBook))
//
// Requests are validated body first. When the body does not satisfy the
// operation's body parameter, the query string is validated against the
// operation's query parameters instead, and that result decides.
//
// # Command Line
//
// The oasschema command validates payloads from the shell and serves the
// same checks as MCP tools:
//
//	oasschema validate -f schemas/oas.json -route /books/{isbn} -method put -body '{"title":"Dune"}'
//	oasschema routes -f schemas/oas.json
package oasschema
