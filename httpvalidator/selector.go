package httpvalidator

import (
	"slices"
	"strconv"

	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// BodySchema is the JSON Schema declared by an operation's body parameter,
// with the document's definitions injected.
type BodySchema struct {
	// Parameter is the name of the body parameter the schema came from.
	Parameter string

	// Schema is a shallow copy of the declared schema carrying a
	// "definitions" keyword. It shares all other values with the document.
	Schema oas.Schema
}

// BodySchema returns the schema of the first parameter declared in the body.
// It fails with a *oaserrors.SchemaNotFoundError when the operation has no
// body parameter or the body parameter declares no schema.
func (r *Resolution) BodySchema() (*BodySchema, error) {
	for _, p := range r.Operation.Parameters {
		if p == nil || p.In != oas.InBody {
			continue
		}
		if p.Schema == nil {
			return nil, r.notFound("body parameter " + strconv.Quote(p.Name) + " declares no schema")
		}
		return &BodySchema{
			Parameter: p.Name,
			Schema:    p.Schema.WithDefinitions(r.definitions),
		}, nil
	}
	return nil, r.notFound("no body parameter declared")
}

// QueryProperty holds the scalar keywords of a query parameter that take
// part in validation. Any other keyword on the parameter is ignored.
type QueryProperty struct {
	Type   string
	Format string
	Enum   []any
}

// QuerySchema is an object schema synthesized from an operation's
// parameters. It is rebuilt on every call and never shared.
type QuerySchema struct {
	// Names lists the query parameters in declaration order.
	Names []string

	// Properties maps each query parameter name to its constraints.
	Properties map[string]QueryProperty

	// Required lists every parameter of the operation marked required,
	// whatever its location.
	Required []string
}

// QuerySchema builds the query schema for the operation. It always succeeds;
// an operation without parameters yields an empty object schema.
//
// Parameters without an "in" are treated as neither body nor query. Note that
// Required is collected across all locations, so a required path or body
// parameter can never be satisfied by a query string.
func (r *Resolution) QuerySchema() *QuerySchema {
	qs := &QuerySchema{Properties: make(map[string]QueryProperty)}
	for _, p := range r.Operation.Parameters {
		if p == nil {
			continue
		}
		if p.In == oas.InQuery {
			if _, seen := qs.Properties[p.Name]; !seen {
				qs.Names = append(qs.Names, p.Name)
			}
			qs.Properties[p.Name] = QueryProperty{Type: p.Type, Format: p.Format, Enum: p.Enum}
		}
		if p.Required && !slices.Contains(qs.Required, p.Name) {
			qs.Required = append(qs.Required, p.Name)
		}
	}
	return qs
}

// JSONSchema renders the query schema as a JSON Schema object.
// Empty keywords are omitted so the result is valid under draft 4, which
// rejects empty "required" and "enum" arrays.
func (q *QuerySchema) JSONSchema() map[string]any {
	props := make(map[string]any, len(q.Properties))
	for name, p := range q.Properties {
		prop := make(map[string]any, 3)
		if p.Type != "" {
			prop["type"] = p.Type
		}
		if p.Format != "" {
			prop["format"] = p.Format
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(q.Required) > 0 {
		schema["required"] = q.Required
	}
	return schema
}

// ResponseSchema is the JSON Schema declared for one response of an
// operation, with the document's definitions injected.
type ResponseSchema struct {
	// Status is the response key the schema came from ("201", "default", ...).
	Status string

	// Schema is a shallow copy of the declared schema carrying a
	// "definitions" keyword.
	Schema oas.Schema
}

// ResponseSchema returns the schema declared for statusCode, falling back to
// the "default" response. It fails with a *oaserrors.SchemaNotFoundError
// when neither declares a schema.
func (r *Resolution) ResponseSchema(statusCode int) (*ResponseSchema, error) {
	for _, key := range []string{strconv.Itoa(statusCode), "default"} {
		resp, ok := r.Operation.Responses[key]
		if !ok || resp == nil {
			continue
		}
		if resp.Schema == nil {
			return nil, r.notFound("response " + key + " declares no schema")
		}
		return &ResponseSchema{
			Status: key,
			Schema: resp.Schema.WithDefinitions(r.definitions),
		}, nil
	}
	return nil, r.notFound("no response declared for status " + strconv.Itoa(statusCode))
}

func (r *Resolution) notFound(msg string) *oaserrors.SchemaNotFoundError {
	return &oaserrors.SchemaNotFoundError{Path: r.Path, Method: r.Method, Message: msg}
}
