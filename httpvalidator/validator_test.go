package httpvalidator

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasschema/internal/testutil"
	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

func newBookstoreValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()
	v, err := New(testutil.Bookstore(t), opts...)
	require.NoError(t, err)
	return v
}

func jsonBody(t *testing.T, src string) Body {
	t.Helper()
	b, err := ParseJSONBody([]byte(src))
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Run("creates validator from document", func(t *testing.T) {
		doc := testutil.Bookstore(t)
		v, err := New(doc)
		require.NoError(t, err)
		assert.Same(t, doc, v.Document())
	})

	t.Run("returns error for nil document", func(t *testing.T) {
		v, err := New(nil)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.Contains(t, err.Error(), "cannot be nil")
	})

	t.Run("option errors are returned", func(t *testing.T) {
		_, err := New(testutil.Bookstore(t), WithMetrics(nil))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestScenarioBodyValidation(t *testing.T) {
	v := newBookstoreValidator(t)

	t.Run("conforming body", func(t *testing.T) {
		err := v.ValidateRequest("/books/{isbn}", "put", jsonBody(t, `{"title": "Dune", "author": "Herbert"}`), "")
		assert.NoError(t, err)
	})

	t.Run("missing required property and no query fallback", func(t *testing.T) {
		out := v.Attempt("/books/{isbn}", "put", jsonBody(t, `{"title": "Dune"}`), "")
		assert.Equal(t, StageRejected, out.Stage)
		assert.False(t, out.Valid())

		var bodyErr *oaserrors.ValidationError
		require.True(t, errors.As(out.BodyErr, &bodyErr))
		assert.Equal(t, oaserrors.LocationBody, bodyErr.Location)
		require.NotEmpty(t, bodyErr.Details)
		assert.Equal(t, "/definitions/Book/required", bodyErr.Details[0].KeywordPath)

		err := out.Err()
		var queryErr *oaserrors.ValidationError
		require.True(t, errors.As(err, &queryErr))
		assert.Equal(t, oaserrors.LocationQuery, queryErr.Location)
		assert.Same(t, out.QueryErr, err)
	})

	t.Run("body success short-circuits the query", func(t *testing.T) {
		out := v.Attempt("/books/{isbn}", "put", jsonBody(t, `{"title": "Dune", "author": "Herbert"}`), "junk=1")
		assert.Equal(t, StageBodyAccepted, out.Stage)
		assert.NoError(t, out.BodyErr)
		assert.NoError(t, out.QueryErr)
	})
}

func TestScenarioQueryFallback(t *testing.T) {
	v := newBookstoreValidator(t)

	t.Run("coerced integer passes a type-less parameter", func(t *testing.T) {
		out := v.Attempt("/books/by-title", "get", NoBody, "title=1234")
		assert.Equal(t, StageQueryAccepted, out.Stage)
		assert.ErrorIs(t, out.BodyErr, oaserrors.ErrValidation)
		assert.ErrorIs(t, out.BodyErr, oaserrors.ErrSchemaNotFound)
		assert.NoError(t, out.Err())
	})

	t.Run("query is tried even when a body is supplied", func(t *testing.T) {
		err := v.ValidateRequest("/books/by-title", "get", jsonBody(t, `{"anything": true}`), "title=Dune")
		assert.NoError(t, err)
	})

	t.Run("digit string fails a string-typed parameter", func(t *testing.T) {
		err := v.ValidateRequest("/books/by-title", "get", NoBody, "isbn=1234")
		var ve *oaserrors.ValidationError
		require.True(t, errors.As(err, &ve))
		require.Len(t, ve.Details, 1)
		assert.Equal(t, "/isbn", ve.Details[0].InstancePath)
		assert.Equal(t, "/properties/isbn/type", ve.Details[0].KeywordPath)

		assert.NoError(t, v.ValidateRequest("/books/by-title", "get", NoBody, "isbn=978-0441"))
	})

	t.Run("enum and integer constraints", func(t *testing.T) {
		assert.NoError(t, v.ValidateRequest("/books/by-author", "get", NoBody, "sort=asc&limit=10"))
		assert.ErrorIs(t, v.ValidateRequest("/books/by-author", "get", NoBody, "sort=up"), oaserrors.ErrValidation)
		assert.ErrorIs(t, v.ValidateRequest("/books/by-author", "get", NoBody, "limit=ten"), oaserrors.ErrValidation)
	})

	t.Run("unknown query parameters are allowed", func(t *testing.T) {
		assert.NoError(t, v.ValidateRequest("/books/by-author", "get", NoBody, "page=2"))
	})
}

func TestScenarioRequiredQuery(t *testing.T) {
	v := newBookstoreValidator(t)
	route := "/books/id/{book_uuid}"

	tests := []struct {
		name  string
		query string
		valid bool
	}{
		{"well formed uuid", "book_uuid=123e4567-e89b-12d3-a456-426614174000", true},
		{"malformed uuid", "book_uuid=not-a-uuid", false},
		{"missing required parameter", "", false},
		{"wrong parameter name", "book_uuid_format=123e4567-e89b-12d3-a456-426614174000", false},
		{"blank value counts as missing", "book_uuid=", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(route, "get", NoBody, tt.query)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, oaserrors.ErrValidation)
		})
	}
}

func TestScenarioParameterlessOperations(t *testing.T) {
	v := newBookstoreValidator(t)
	for _, method := range []string{"get", "POST"} {
		t.Run(method, func(t *testing.T) {
			out := v.Attempt("/health", method, NoBody, "")
			assert.Equal(t, StageQueryAccepted, out.Stage)
			assert.NoError(t, out.Err())
		})
	}
}

func TestUnknownOperationIgnoresPayload(t *testing.T) {
	v := newBookstoreValidator(t)

	out := v.Attempt("/books/{isbn}", "post", jsonBody(t, `{"title": "Dune", "author": "Herbert"}`), "")
	assert.Equal(t, StageUnresolved, out.Stage)
	assert.Nil(t, out.Resolution)
	assert.ErrorIs(t, out.Err(), oaserrors.ErrSchemaNotFound)
	assert.False(t, errors.Is(out.Err(), oaserrors.ErrValidation))
}

func TestValidateRequestBasePath(t *testing.T) {
	v, err := New(testutil.Prefixed(t))
	require.NoError(t, err)

	body := jsonBody(t, `{"title": "Dune", "author": "Herbert"}`)
	assert.NoError(t, v.ValidateRequest("/api/books/{isbn}", "put", body, ""))
	assert.ErrorIs(t, v.ValidateRequest("/other/books/{isbn}", "put", body, ""), oaserrors.ErrSchemaNotFound)
}

func TestAbsentBodyFallsBack(t *testing.T) {
	doc := testutil.MustParse(t, `
swagger: "2.0"
paths:
  /notes:
    post:
      parameters:
        - name: note
          in: body
          schema: {}
        - name: text
          in: query
          type: string
`)
	v, err := New(doc)
	require.NoError(t, err)

	out := v.Attempt("/notes", "post", NoBody, "text=hello")
	assert.Equal(t, StageQueryAccepted, out.Stage)
	assert.Contains(t, out.BodyErr.Error(), "request body is missing")

	// The empty schema accepts any present body, including null.
	assert.Equal(t, StageBodyAccepted, v.Attempt("/notes", "post", JSONBody(nil), "").Stage)
}

func TestDefinitionsAreNotMutated(t *testing.T) {
	doc := testutil.Bookstore(t)
	v, err := New(doc)
	require.NoError(t, err)

	_ = v.ValidateRequest("/books/{isbn}", "put", jsonBody(t, `{"title": "Dune"}`), "")
	for _, p := range doc.Paths["/books/{isbn}"].Put.Parameters {
		if p.In == oas.InBody {
			assert.NotContains(t, p.Schema, oas.DefinitionsKey)
		}
	}
}

func TestValidateRequestConcurrent(t *testing.T) {
	v := newBookstoreValidator(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				errs <- v.ValidateRequest("/books/{isbn}", "put", JSONBody(map[string]any{"title": "a", "author": "b"}), "")
				return
			}
			errs <- v.ValidateRequest("/books/by-title", "get", NoBody, "title=x")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPackageValidateRequest(t *testing.T) {
	doc := testutil.Bookstore(t)
	assert.NoError(t, ValidateRequest(doc, "/health", "get", NoBody, ""))
	assert.ErrorIs(t, ValidateRequest(nil, "/health", "get", NoBody, ""), oaserrors.ErrSchemaNotFound)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "unresolved", StageUnresolved.String())
	assert.Equal(t, "body-accepted", StageBodyAccepted.String())
	assert.Equal(t, "query-accepted", StageQueryAccepted.String())
	assert.Equal(t, "rejected", StageRejected.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
