package httpvalidator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasschema/internal/testutil"
	"github.com/erraggy/oasschema/oaserrors"
)

func TestValidateResponse(t *testing.T) {
	v := newBookstoreValidator(t)
	route := "/books/{isbn}"

	t.Run("conforming status response", func(t *testing.T) {
		body := jsonBody(t, `{"status": "success", "uuid": "123e4567-e89b-12d3-a456-426614174000"}`)
		assert.NoError(t, v.ValidateResponse(route, "put", 201, body))
	})

	t.Run("non-conforming status response", func(t *testing.T) {
		err := v.ValidateResponse(route, "put", 201, jsonBody(t, `{"status": "failed", "uuid": "nope"}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrResponseValidation)
		assert.False(t, errors.Is(err, oaserrors.ErrValidation))

		var rve *oaserrors.ResponseValidationError
		require.True(t, errors.As(err, &rve))
		assert.Equal(t, 201, rve.StatusCode)
		assert.Len(t, rve.Details, 2)
	})

	t.Run("default response", func(t *testing.T) {
		assert.NoError(t, v.ValidateResponse(route, "put", 500, jsonBody(t, `{"message": "boom"}`)))
		assert.ErrorIs(t, v.ValidateResponse(route, "put", 500, jsonBody(t, `{}`)), oaserrors.ErrResponseValidation)
	})

	t.Run("array of definitions", func(t *testing.T) {
		body := jsonBody(t, `[{"title": "Dune", "author": "Herbert"}]`)
		assert.NoError(t, v.ValidateResponse("/books/by-title", "get", 200, body))

		err := v.ValidateResponse("/books/by-title", "get", 200, jsonBody(t, `[{"title": "Dune"}]`))
		var rve *oaserrors.ResponseValidationError
		require.True(t, errors.As(err, &rve))
		require.Len(t, rve.Details, 1)
		assert.Equal(t, "/0", rve.Details[0].InstancePath)
	})

	t.Run("missing body", func(t *testing.T) {
		err := v.ValidateResponse(route, "put", 201, NoBody)
		assert.ErrorIs(t, err, oaserrors.ErrResponseValidation)
		assert.Contains(t, err.Error(), "response body is missing")
	})

	t.Run("undeclared operation carries the lookup failure", func(t *testing.T) {
		err := v.ValidateResponse("/nowhere", "get", 200, JSONBody(map[string]any{}))
		assert.ErrorIs(t, err, oaserrors.ErrResponseValidation)
		assert.ErrorIs(t, err, oaserrors.ErrSchemaNotFound)
		assert.Equal(t, 500, StatusCode(err))
	})

	t.Run("response without schema", func(t *testing.T) {
		err := v.ValidateResponse("/health", "get", 200, JSONBody(map[string]any{}))
		assert.ErrorIs(t, err, oaserrors.ErrResponseValidation)
		assert.ErrorIs(t, err, oaserrors.ErrSchemaNotFound)
	})
}

func TestPackageValidateResponse(t *testing.T) {
	doc := testutil.Bookstore(t)
	err := ValidateResponse(doc, "/books/{isbn}", "put", 400, jsonBody(t, `{"message": "bad isbn"}`))
	assert.NoError(t, err)
}
