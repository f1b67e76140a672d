package mcpserver

import (
	"context"
	"errors"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasschema/httpvalidator"
	"github.com/erraggy/oasschema/oaserrors"
)

type resolveOperationInput struct {
	Spec   specInput `json:"spec,omitempty" jsonschema:"Document to search; defaults to the server's document"`
	Route  string    `json:"route"          jsonschema:"Route template in {name} form, e.g. /books/{isbn}"`
	Method string    `json:"method"         jsonschema:"HTTP method, any case"`
}

type resolveOperationOutput struct {
	Path          string         `json:"path"`
	Method        string         `json:"method"`
	OperationID   string         `json:"operation_id,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	BodyParameter string         `json:"body_parameter,omitempty"`
	BodySchema    map[string]any `json:"body_schema,omitempty"`
	QuerySchema   map[string]any `json:"query_schema"`
	Responses     []string       `json:"responses,omitempty"`
}

func (ts *toolset) handleResolveOperation(_ context.Context, _ *mcp.CallToolRequest, input resolveOperationInput) (*mcp.CallToolResult, resolveOperationOutput, error) {
	doc, err := input.Spec.resolve(ts.doc)
	if err != nil {
		return errResult(err), resolveOperationOutput{}, nil
	}
	res, err := httpvalidator.Resolve(doc, input.Route, input.Method)
	if err != nil {
		return errResult(err), resolveOperationOutput{}, nil
	}

	output := resolveOperationOutput{
		Path:        res.Path,
		Method:      res.Method,
		OperationID: res.Operation.OperationID,
		Summary:     res.Operation.Summary,
		QuerySchema: res.QuerySchema().JSONSchema(),
	}

	bs, err := res.BodySchema()
	switch {
	case err == nil:
		output.BodyParameter = bs.Parameter
		output.BodySchema = bs.Schema
	case !errors.Is(err, oaserrors.ErrSchemaNotFound):
		return errResult(err), resolveOperationOutput{}, nil
	}

	for code := range res.Operation.Responses {
		output.Responses = append(output.Responses, code)
	}
	slices.Sort(output.Responses)

	return nil, output, nil
}
