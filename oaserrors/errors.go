// Package oaserrors provides structured error types for oasschema.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing a hosting framework to map each category of failure
// to its own HTTP response.
//
// # Error Categories
//
//   - SchemaNotFoundError: no operation for a (path, method) pair, or no schema declared for it
//   - ValidationError: a request body or query does not conform to its schema
//   - ResponseValidationError: an outbound response payload does not conform to its schema
//   - ParseError: the schema document could not be decoded
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	if err := v.ValidateRequest(route, method, body, rawQuery); err != nil {
//	    switch {
//	    case errors.Is(err, oaserrors.ErrResponseValidation):
//	        // 500
//	    case errors.Is(err, oaserrors.ErrSchemaNotFound), errors.Is(err, oaserrors.ErrValidation):
//	        // 400
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSchemaNotFound indicates no operation or schema matched a request.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrValidation indicates a request value did not conform to its schema.
	ErrValidation = errors.New("validation error")

	// ErrResponseValidation indicates a response payload did not conform to its schema.
	ErrResponseValidation = errors.New("response validation error")

	// ErrParse indicates the schema document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Location identifies which part of an HTTP exchange failed validation.
type Location string

// Validation locations.
const (
	LocationBody     Location = "body"
	LocationQuery    Location = "query"
	LocationResponse Location = "response"
)

// Detail describes a single schema violation.
type Detail struct {
	// InstancePath is the JSON pointer to the offending value (e.g. "/author")
	InstancePath string
	// KeywordPath is the JSON pointer to the failing schema keyword (e.g. "/required")
	KeywordPath string
	// Message is a human-readable description of the violation
	Message string
}

// String returns the detail as "<instance path>: <message>".
func (d Detail) String() string {
	path := d.InstancePath
	if path == "" {
		path = "/"
	}
	return path + ": " + d.Message
}

// SchemaNotFoundError reports that the document declares nothing to validate
// against: either no operation for the (path, method) pair, or an operation
// without the requested schema.
type SchemaNotFoundError struct {
	// Path is the route template after basePath stripping
	Path string
	// Method is the lowercase HTTP method
	Method string
	// Message describes what was missing
	Message string
}

// Error returns a human-readable error message.
func (e *SchemaNotFoundError) Error() string {
	msg := "schema not found"
	if e.Method != "" || e.Path != "" {
		msg += fmt.Sprintf(" for %s %s", e.Method, e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// ValidationError reports that a JSON value does not conform to the schema
// selected for it.
type ValidationError struct {
	// Location is the part of the request that was validated
	Location Location
	// Details lists the individual schema violations
	Details []Detail
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return describe("validation error", e.Location, e.Details, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResponseValidationError reports that an outbound response does not conform
// to the schema declared for it. It is deliberately distinct from
// ValidationError so hosting layers can answer with a server error.
type ResponseValidationError struct {
	// StatusCode is the status code of the validated response
	StatusCode int
	// Details lists the individual schema violations
	Details []Detail
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ResponseValidationError) Error() string {
	prefix := "response validation error"
	if e.StatusCode > 0 {
		prefix += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return describe(prefix, "", e.Details, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResponseValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResponseValidationError) Is(target error) bool {
	return target == ErrResponseValidation
}

// ParseError represents a failure to decode a schema document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func describe(prefix string, loc Location, details []Detail, cause error) string {
	var b strings.Builder
	b.WriteString(prefix)
	if loc != "" {
		b.WriteString(" in ")
		b.WriteString(string(loc))
	}
	for i, d := range details {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(d.String())
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}
