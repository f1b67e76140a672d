package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasschema/httpvalidator"
	"github.com/erraggy/oasschema/oaserrors"
)

type validateRequestInput struct {
	Spec   specInput `json:"spec,omitempty"   jsonschema:"Document to validate against; defaults to the server's document"`
	Route  string    `json:"route"            jsonschema:"Route template in {name} form, e.g. /books/{isbn}"`
	Method string    `json:"method"           jsonschema:"HTTP method, any case"`
	Body   string    `json:"body,omitempty"   jsonschema:"JSON body text; omit or leave empty when the request has no body"`
	Query  string    `json:"query,omitempty"  jsonschema:"Raw query string without the leading ?"`
}

type validateResponseInput struct {
	Spec   specInput `json:"spec,omitempty" jsonschema:"Document to validate against; defaults to the server's document"`
	Route  string    `json:"route"          jsonschema:"Route template in {name} form, e.g. /books/{isbn}"`
	Method string    `json:"method"         jsonschema:"HTTP method, any case"`
	Status int       `json:"status"         jsonschema:"Response status code"`
	Body   string    `json:"body"           jsonschema:"JSON response body text"`
}

type validationIssue struct {
	Location string `json:"location"`
	Path     string `json:"path"`
	Keyword  string `json:"keyword,omitempty"`
	Message  string `json:"message"`
}

type validateOutput struct {
	Valid  bool              `json:"valid"`
	Stage  string            `json:"stage,omitempty"`
	Path   string            `json:"path,omitempty"`
	Method string            `json:"method,omitempty"`
	Error  string            `json:"error,omitempty"`
	Issues []validationIssue `json:"issues,omitempty"`
}

func (ts *toolset) handleValidateRequest(_ context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve(ts.doc)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	body, err := parseBodyText(input.Body)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	v, err := httpvalidator.New(doc)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	outcome := v.Attempt(input.Route, input.Method, body, input.Query)
	output := validateOutput{
		Valid: outcome.Valid(),
		Stage: outcome.Stage.String(),
	}
	if outcome.Resolution != nil {
		output.Path = outcome.Resolution.Path
		output.Method = outcome.Resolution.Method
	}
	if err := outcome.Err(); err != nil {
		output.Error = sanitizeError(err)
		output.Issues = issues(err)
	}
	return nil, output, nil
}

func (ts *toolset) handleValidateResponse(_ context.Context, _ *mcp.CallToolRequest, input validateResponseInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve(ts.doc)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	body, err := parseBodyText(input.Body)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	err = httpvalidator.ValidateResponse(doc, input.Route, input.Method, input.Status, body)
	output := validateOutput{Valid: err == nil}
	if err != nil {
		output.Error = sanitizeError(err)
		output.Issues = issues(err)
	}
	return nil, output, nil
}

func parseBodyText(text string) (httpvalidator.Body, error) {
	if int64(len(text)) > cfg.MaxBodySize {
		return httpvalidator.NoBody, fmt.Errorf("body size %d bytes exceeds maximum %d bytes; set OASSCHEMA_MAX_BODY_SIZE to increase",
			len(text), cfg.MaxBodySize)
	}
	return httpvalidator.ParseJSONBody([]byte(text))
}

// issues flattens the details of a validation error. Errors without
// details produce nil.
func issues(err error) []validationIssue {
	var (
		loc     oaserrors.Location
		details []oaserrors.Detail
	)
	var ve *oaserrors.ValidationError
	var rve *oaserrors.ResponseValidationError
	switch {
	case errors.As(err, &ve):
		loc, details = ve.Location, ve.Details
	case errors.As(err, &rve):
		loc, details = oaserrors.LocationResponse, rve.Details
	default:
		return nil
	}

	out := make([]validationIssue, 0, len(details))
	for _, d := range details {
		path := d.InstancePath
		if path == "" {
			path = "/"
		}
		out = append(out, validationIssue{
			Location: string(loc),
			Path:     path,
			Keyword:  d.KeywordPath,
			Message:  d.Message,
		})
	}
	return out
}
