package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listRoutesInput struct {
	Spec   specInput `json:"spec,omitempty"   jsonschema:"Document to list; defaults to the server's document"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N routes (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of routes to return (default 100)"`
}

type routeSummary struct {
	Route       string `json:"route"`
	Method      string `json:"method"`
	OperationID string `json:"operation_id,omitempty"`
}

type listRoutesOutput struct {
	BasePath string         `json:"base_path,omitempty"`
	Total    int            `json:"total"`
	Returned int            `json:"returned"`
	Routes   []routeSummary `json:"routes,omitempty"`
}

func (ts *toolset) handleListRoutes(_ context.Context, _ *mcp.CallToolRequest, input listRoutesInput) (*mcp.CallToolResult, listRoutesOutput, error) {
	doc, err := input.Spec.resolve(ts.doc)
	if err != nil {
		return errResult(err), listRoutesOutput{}, nil
	}

	routes := doc.Routes()
	summaries := make([]routeSummary, 0, len(routes))
	for _, r := range routes {
		summaries = append(summaries, routeSummary{
			Route:       doc.BasePath + r.Path,
			Method:      r.Method,
			OperationID: r.Operation.OperationID,
		})
	}

	page := paginate(summaries, input.Offset, input.Limit)
	return nil, listRoutesOutput{
		BasePath: doc.BasePath,
		Total:    len(summaries),
		Returned: len(page),
		Routes:   page,
	}, nil
}
