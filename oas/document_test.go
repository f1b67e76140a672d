package oas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathItemOperation(t *testing.T) {
	get := &Operation{OperationID: "get"}
	patch := &Operation{OperationID: "patch"}
	item := &PathItem{Get: get, Patch: patch}

	tests := []struct {
		method string
		want   *Operation
	}{
		{"get", get},
		{"GET", get},
		{"Patch", patch},
		{"post", nil},
		{"trace", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Same(t, tt.want, item.Operation(tt.method))
		})
	}

	t.Run("nil path item", func(t *testing.T) {
		var nilItem *PathItem
		assert.Nil(t, nilItem.Operation("get"))
	})

	assert.Equal(t, []string{"get", "patch"}, item.DeclaredMethods())
}

func TestDocumentRoutes(t *testing.T) {
	doc, err := Parse([]byte(`{
  "paths": {
    "/b": {"post": {}, "get": {}},
    "/a": {"delete": {}}
  }
}`))
	require.NoError(t, err)

	routes := doc.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/a", routes[0].Path)
	assert.Equal(t, "delete", routes[0].Method)
	assert.Equal(t, "/b", routes[1].Path)
	assert.Equal(t, "get", routes[1].Method)
	assert.Equal(t, "post", routes[2].Method)

	var nilDoc *Document
	assert.Nil(t, nilDoc.Routes())
}

func TestSchemaWithDefinitions(t *testing.T) {
	defs := map[string]Schema{"Book": {"type": "object"}}
	original := Schema{"$ref": "#/definitions/Book"}

	injected := original.WithDefinitions(defs)

	assert.Equal(t, "#/definitions/Book", injected["$ref"])
	assert.Equal(t, defs, injected[DefinitionsKey])
	assert.NotContains(t, original, DefinitionsKey, "source fragment must stay untouched")

	t.Run("nil definitions become an empty map", func(t *testing.T) {
		out := Schema{"type": "string"}.WithDefinitions(nil)
		assert.Equal(t, map[string]Schema{}, out[DefinitionsKey])
	})

	t.Run("nil schema", func(t *testing.T) {
		var s Schema
		out := s.WithDefinitions(defs)
		assert.Len(t, out, 1)
	})
}
