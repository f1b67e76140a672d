// Package oaserrors provides structured error types for the oasschema library.
//
// Import path: github.com/erraggy/oasschema/oaserrors
//
// # Error Types
//
//   - [SchemaNotFoundError]: the document has no operation, body schema, or
//     response schema for what was requested
//   - [ValidationError]: a request body or coerced query failed its schema
//   - [ResponseValidationError]: an outbound payload failed its schema
//   - [ParseError]: the schema document could not be decoded
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrSchemaNotFound]: Matches any [SchemaNotFoundError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResponseValidation]: Matches any [ResponseValidationError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// A [ResponseValidationError] may wrap a [SchemaNotFoundError] as its Cause,
// so a missing response schema matches both sentinels. Hosting layers should
// test for [ErrResponseValidation] first.
//
// # Usage Examples
//
// Extract failure details with errors.As():
//
//	var vErr *oaserrors.ValidationError
//	if errors.As(err, &vErr) {
//	    for _, d := range vErr.Details {
//	        fmt.Printf("%s: %s\n", d.InstancePath, d.Message)
//	    }
//	}
package oaserrors
