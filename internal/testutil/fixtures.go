// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasschema/oas"
)

// BookstoreJSON is a Swagger 2.0 document for a small book store. It covers a
// body-validated PUT, query-validated GETs, a required UUID query parameter,
// and a parameterless path declaring two methods.
const BookstoreJSON = `{
  "swagger": "2.0",
  "info": {"title": "Book Store", "version": "1.0.0"},
  "paths": {
    "/books/{isbn}": {
      "put": {
        "operationId": "putBook",
        "parameters": [
          {"name": "isbn", "in": "path", "required": true, "type": "string"},
          {"name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Book"}}
        ],
        "responses": {
          "201": {"description": "Stored", "schema": {"$ref": "#/definitions/PutResult"}},
          "default": {"description": "Error", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/books/by-title": {
      "get": {
        "operationId": "booksByTitle",
        "parameters": [
          {"name": "title", "in": "query", "description": "Title to search for"},
          {"name": "isbn", "in": "query", "type": "string"}
        ],
        "responses": {
          "200": {"description": "Matching books", "schema": {"type": "array", "items": {"$ref": "#/definitions/Book"}}}
        }
      }
    },
    "/books/by-author": {
      "get": {
        "operationId": "booksByAuthor",
        "parameters": [
          {"name": "author", "in": "query", "type": "string"},
          {"name": "sort", "in": "query", "type": "string", "enum": ["asc", "desc"]},
          {"name": "limit", "in": "query", "type": "integer"}
        ],
        "responses": {"200": {"description": "Matching books"}}
      }
    },
    "/books/id/{book_uuid}": {
      "get": {
        "operationId": "bookByID",
        "parameters": [
          {"name": "book_uuid", "in": "query", "required": true, "type": "string", "format": "uuid"}
        ],
        "responses": {"200": {"description": "The book"}}
      }
    },
    "/health": {
      "get": {"operationId": "getHealth", "responses": {"200": {"description": "OK"}}},
      "post": {"operationId": "postHealth", "responses": {"200": {"description": "OK"}}}
    }
  },
  "definitions": {
    "Book": {
      "type": "object",
      "required": ["title", "author"],
      "properties": {
        "title": {"type": "string"},
        "author": {"type": "string"},
        "isbn": {"type": "string"}
      }
    },
    "PutResult": {
      "type": "object",
      "required": ["status", "uuid"],
      "properties": {
        "status": {"type": "string", "enum": ["success"]},
        "uuid": {"type": "string", "format": "uuid"}
      }
    },
    "Error": {
      "type": "object",
      "required": ["message"],
      "properties": {"message": {"type": "string"}}
    }
  }
}`

// PrefixedYAML declares the same /books/{isbn} operation as BookstoreJSON
// under basePath /api, in YAML form.
const PrefixedYAML = `
swagger: "2.0"
info:
  title: Prefixed Book Store
  version: "1.0.0"
basePath: /api
paths:
  /books/{isbn}:
    put:
      parameters:
        - name: isbn
          in: path
          required: true
          type: string
        - name: book
          in: body
          required: true
          schema:
            $ref: "#/definitions/Book"
      responses:
        201:
          description: Stored
definitions:
  Book:
    type: object
    required: [title, author]
    properties:
      title:
        type: string
      author:
        type: string
`

// MustParse decodes src or fails the test.
func MustParse(t *testing.T, src string) *oas.Document {
	t.Helper()
	doc, err := oas.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse fixture document: %v", err)
	}
	return doc
}

// Bookstore returns a freshly decoded BookstoreJSON document.
func Bookstore(t *testing.T) *oas.Document {
	t.Helper()
	return MustParse(t, BookstoreJSON)
}

// Prefixed returns a freshly decoded PrefixedYAML document.
func Prefixed(t *testing.T) *oas.Document {
	t.Helper()
	return MustParse(t, PrefixedYAML)
}

// WriteTempFile writes content to name inside a fresh temporary directory and
// returns the file path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// MustJSON marshals v or fails the test.
func MustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to JSON: %v", err)
	}
	return data
}
