// Package schemastore loads the Swagger 2.0 document once at startup and
// hands out the shared, read-only document and validator.
//
// The document location is a single path-like setting. When unset it
// defaults to schemas/oas.json under the application root:
//
//	store, err := schemastore.Open(schemastore.ConfigFromEnv().Options()...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mux.Handle("PUT /books/{isbn}", store.Validator().Middleware()(putBook))
//
// Nothing in a Store changes after Open returns, so it can be shared across
// goroutines without locking.
package schemastore
