// Package httpvalidator validates HTTP request and response payloads against
// a Swagger 2.0 document.
//
// # Request Validation
//
// A request is identified by the route template it was routed through (in
// {name} form, optionally prefixed with the document's basePath) and its
// method. Validation is a two step fallback:
//
//  1. The JSON body is validated against the schema of the operation's body
//     parameter, with the document's definitions injected.
//  2. If that fails for any reason, including a missing body or a missing
//     body parameter, the query string is parsed, digit-only values are
//     coerced to integers, and the result is validated against an object
//     schema synthesized from the operation's query parameters.
//
// Body success short-circuits the query step. When both fail, the query
// error is returned.
//
//	doc, _ := oas.ParseFile("schemas/oas.json")
//	v, err := httpvalidator.New(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body, _ := httpvalidator.ParseJSONBody(payload)
//	if err := v.ValidateRequest("/books/{isbn}", "put", body, rawQuery); err != nil {
//	    http.Error(w, err.Error(), httpvalidator.StatusCode(err))
//	}
//
// Attempt returns an Outcome recording both stages for callers that need to
// know which contract the request satisfied.
//
// # Response Validation
//
// ValidateResponse checks an outbound payload against the schema declared for
// its status code, or the "default" response. It never falls back or
// coerces, and every failure is a *oaserrors.ResponseValidationError so it
// can be answered with a server error instead of a client error.
//
// # Middleware
//
// Middleware wraps a net/http handler. The route template comes from the
// ServeMux pattern when the middleware is registered per route, and
// otherwise from matching the request path against the document:
//
//	mux := http.NewServeMux()
//	mux.Handle("PUT /books/{isbn}", v.Middleware()(putBook))
//
//	// or around the whole mux, validating responses as well
//	handler := v.Middleware(httpvalidator.WithResponseValidation(true))(mux)
//
// # Schema Validation
//
// Schemas are compiled with github.com/santhosh-tekuri/jsonschema/v6 as
// draft 4 documents with format assertions enabled. Each call derives and
// compiles its schema afresh; nothing is cached between requests.
package httpvalidator
