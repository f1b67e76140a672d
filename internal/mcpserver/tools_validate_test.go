package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasschema/internal/testutil"
)

func TestHandleValidateRequest(t *testing.T) {
	ts := newTestToolset(t)

	t.Run("body accepted", func(t *testing.T) {
		res, out, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Route:  "/books/{isbn}",
			Method: "PUT",
			Body:   `{"title": "Dune", "author": "Herbert"}`,
		})
		require.NoError(t, err)
		assert.Nil(t, res)
		assert.True(t, out.Valid)
		assert.Equal(t, "body-accepted", out.Stage)
		assert.Equal(t, "/books/{isbn}", out.Path)
		assert.Equal(t, "put", out.Method)
	})

	t.Run("query accepted", func(t *testing.T) {
		_, out, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Route:  "/books/by-title",
			Method: "get",
			Query:  "title=1234",
		})
		require.NoError(t, err)
		assert.True(t, out.Valid)
		assert.Equal(t, "query-accepted", out.Stage)
	})

	t.Run("rejected reports query issues", func(t *testing.T) {
		_, out, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Route:  "/books/by-title",
			Method: "get",
			Query:  "isbn=1234",
		})
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, "rejected", out.Stage)
		require.Len(t, out.Issues, 1)
		assert.Equal(t, "query", out.Issues[0].Location)
		assert.Equal(t, "/isbn", out.Issues[0].Path)
	})

	t.Run("unresolved", func(t *testing.T) {
		_, out, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{Route: "/nope", Method: "get"})
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, "unresolved", out.Stage)
		assert.Contains(t, out.Error, "path is not declared")
		assert.Empty(t, out.Issues)
	})

	t.Run("invalid body json", func(t *testing.T) {
		res, _, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Route: "/books/{isbn}", Method: "put", Body: `{"title":`,
		})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})

	t.Run("body too large", func(t *testing.T) {
		old := cfg.MaxBodySize
		cfg.MaxBodySize = 4
		t.Cleanup(func() { cfg.MaxBodySize = old })

		res, _, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Route: "/books/{isbn}", Method: "put", Body: `{"title": "Dune"}`,
		})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})

	t.Run("inline document", func(t *testing.T) {
		docCache.reset()
		_, out, err := ts.handleValidateRequest(context.Background(), nil, validateRequestInput{
			Spec:   specInput{Content: testutil.PrefixedYAML},
			Route:  "/api/books/{isbn}",
			Method: "put",
			Body:   `{"title": "Dune", "author": "Herbert"}`,
		})
		require.NoError(t, err)
		assert.True(t, out.Valid)
		assert.Equal(t, "/books/{isbn}", out.Path)
	})

	t.Run("no document", func(t *testing.T) {
		res, _, err := (&toolset{}).handleValidateRequest(context.Background(), nil, validateRequestInput{Route: "/health", Method: "get"})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})
}

func TestHandleValidateResponse(t *testing.T) {
	ts := newTestToolset(t)

	_, out, err := ts.handleValidateResponse(context.Background(), nil, validateResponseInput{
		Route:  "/books/{isbn}",
		Method: "put",
		Status: 201,
		Body:   `{"status": "success", "uuid": "123e4567-e89b-12d3-a456-426614174000"}`,
	})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	_, out, err = ts.handleValidateResponse(context.Background(), nil, validateResponseInput{
		Route:  "/books/{isbn}",
		Method: "put",
		Status: 201,
		Body:   `{"status": "success"}`,
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "response", out.Issues[0].Location)
	assert.True(t, strings.HasPrefix(out.Error, "response validation error (status 201)"))
}
