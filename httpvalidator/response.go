package httpvalidator

import (
	"time"

	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// ValidateResponse validates an outbound payload against the schema declared
// for statusCode (or the "default" response) of the operation at
// routeTemplate and method.
//
// There is no fallback and no coercion. Every failure, including an
// undeclared operation or response, is a *oaserrors.ResponseValidationError;
// lookup failures carry the *oaserrors.SchemaNotFoundError as their Cause.
func (v *Validator) ValidateResponse(routeTemplate, method string, statusCode int, body Body) error {
	start := time.Now()
	err := validateResponse(v.doc, routeTemplate, method, statusCode, body)
	v.metrics.RecordDuration(PhaseResponse, time.Since(start))
	v.metrics.RecordValidation(PhaseResponse, err)
	if err != nil {
		v.logger.Debug("response not accepted", "route", routeTemplate, "method", method, "status", statusCode, "error", err)
	}
	return err
}

// ValidateResponse is a convenience wrapper for one-off response
// validations against doc.
func ValidateResponse(doc *oas.Document, routeTemplate, method string, statusCode int, body Body) error {
	return validateResponse(doc, routeTemplate, method, statusCode, body)
}

func validateResponse(doc *oas.Document, routeTemplate, method string, statusCode int, body Body) error {
	res, err := Resolve(doc, routeTemplate, method)
	if err != nil {
		return &oaserrors.ResponseValidationError{StatusCode: statusCode, Cause: err}
	}
	return res.ValidateResponse(statusCode, body)
}

// ValidateResponse validates body against the schema declared for
// statusCode on the resolved operation.
func (r *Resolution) ValidateResponse(statusCode int, body Body) error {
	rs, err := r.ResponseSchema(statusCode)
	if err != nil {
		return &oaserrors.ResponseValidationError{StatusCode: statusCode, Cause: err}
	}
	if !body.Present() {
		return &oaserrors.ResponseValidationError{
			StatusCode: statusCode,
			Details:    []oaserrors.Detail{{Message: "response body is missing"}},
		}
	}

	details, err := validateValue(PhaseResponse, rs.Schema, body.Value())
	if err != nil {
		return &oaserrors.ResponseValidationError{StatusCode: statusCode, Cause: err}
	}
	if len(details) == 0 {
		return nil
	}
	return &oaserrors.ResponseValidationError{StatusCode: statusCode, Details: details}
}
