// Package oas holds the in-memory model of an OpenAPI 2.0 (Swagger) document
// used as the single source of validation rules.
//
// Only the parts of the document that drive request and response validation
// are modelled: basePath, paths with their operations, parameters and
// responses, and the shared definitions. JSON Schema fragments are carried
// verbatim as [Schema] values so that every keyword the document author wrote
// reaches the schema validator unchanged.
//
// # Decoding
//
// Documents may be JSON or YAML:
//
//	doc, err := oas.ParseWithOptions(oas.WithFilePath("schemas/oas.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op := doc.Paths["/books/{isbn}"].Operation("put")
//
// A decoded Document is never modified afterwards and may be shared by any
// number of goroutines without locking.
package oas
