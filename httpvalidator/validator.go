package httpvalidator

import (
	"time"

	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// Validator validates request and response payloads against a Swagger 2.0
// document. The document is shared read-only; a Validator is safe for
// concurrent use.
//
//	doc, _ := oas.ParseFile("schemas/oas.json")
//	v, err := httpvalidator.New(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := v.ValidateRequest("/books/{isbn}", "put", body, r.URL.RawQuery); err != nil {
//	    // answer with httpvalidator.StatusCode(err)
//	}
type Validator struct {
	doc     *oas.Document
	logger  oas.Logger
	metrics *Metrics
}

// New creates a Validator for doc.
//
// Returns a *oaserrors.ConfigError if doc is nil or an option fails.
func New(doc *oas.Document, opts ...Option) (*Validator, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &Validator{
		doc:     doc,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}, nil
}

// Document returns the document the Validator validates against.
func (v *Validator) Document() *oas.Document {
	return v.doc
}

// Stage records how far request validation progressed.
type Stage int

const (
	// StageUnresolved means no operation matched the route and method.
	StageUnresolved Stage = iota
	// StageBodyAccepted means the body conformed to the body schema.
	StageBodyAccepted
	// StageQueryAccepted means the body failed and the query conformed.
	StageQueryAccepted
	// StageRejected means both the body and the query failed.
	StageRejected
)

// String returns a lowercase name for the stage.
func (s Stage) String() string {
	switch s {
	case StageUnresolved:
		return "unresolved"
	case StageBodyAccepted:
		return "body-accepted"
	case StageQueryAccepted:
		return "query-accepted"
	case StageRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is the full record of one request validation attempt.
//
// The body is always tried first. Only if it fails is the query tried, and
// then the query failure is the one reported by Err.
type Outcome struct {
	Stage Stage

	// Resolution is the matched operation; nil when Stage is StageUnresolved.
	Resolution *Resolution

	// ResolveErr is set when Stage is StageUnresolved.
	ResolveErr error

	// BodyErr is why the body was not accepted; nil when the body passed.
	BodyErr error

	// QueryErr is why the query was not accepted; nil when it passed or was
	// never tried.
	QueryErr error
}

// Valid reports whether the request was accepted.
func (o *Outcome) Valid() bool {
	return o.Stage == StageBodyAccepted || o.Stage == StageQueryAccepted
}

// Err returns the error surfaced to callers: the resolution failure, the
// query failure after a fallback, or nil.
func (o *Outcome) Err() error {
	switch o.Stage {
	case StageUnresolved:
		return o.ResolveErr
	case StageRejected:
		return o.QueryErr
	default:
		return nil
	}
}

// ValidateRequest validates a request for routeTemplate and method.
//
// body is tried against the operation's body schema first. If that fails for
// any reason (no body parameter, no body, or a mismatch) rawQuery is parsed,
// coerced and validated against the operation's query schema instead.
//
// Returns nil on success, a *oaserrors.SchemaNotFoundError when the route and
// method are not declared, or the *oaserrors.ValidationError from the query
// stage.
func (v *Validator) ValidateRequest(routeTemplate, method string, body Body, rawQuery string) error {
	return v.Attempt(routeTemplate, method, body, rawQuery).Err()
}

// Attempt runs request validation and returns the full Outcome.
func (v *Validator) Attempt(routeTemplate, method string, body Body, rawQuery string) *Outcome {
	start := time.Now()
	res, err := Resolve(v.doc, routeTemplate, method)
	v.metrics.RecordDuration(PhaseResolve, time.Since(start))
	v.metrics.RecordValidation(PhaseResolve, err)
	if err != nil {
		v.logger.Debug("no operation for request", "route", routeTemplate, "method", method, "error", err)
		return &Outcome{Stage: StageUnresolved, ResolveErr: err}
	}

	out := &Outcome{Resolution: res}
	log := v.logger.With("path", res.Path, "method", res.Method)

	start = time.Now()
	out.BodyErr = res.ValidateBody(body)
	v.metrics.RecordDuration(PhaseBody, time.Since(start))
	v.metrics.RecordValidation(PhaseBody, out.BodyErr)
	if out.BodyErr == nil {
		out.Stage = StageBodyAccepted
		return out
	}

	log.Debug("body not accepted, falling back to query", "error", out.BodyErr)
	v.metrics.RecordFallback()

	start = time.Now()
	out.QueryErr = res.ValidateQuery(rawQuery)
	v.metrics.RecordDuration(PhaseQuery, time.Since(start))
	v.metrics.RecordValidation(PhaseQuery, out.QueryErr)
	if out.QueryErr != nil {
		log.Debug("query not accepted", "error", out.QueryErr)
		out.Stage = StageRejected
		return out
	}

	out.Stage = StageQueryAccepted
	return out
}

// ValidateBody validates body against the operation's body schema.
// Every failure, including a missing body parameter or an absent body, is
// returned as a *oaserrors.ValidationError in the body location.
func (r *Resolution) ValidateBody(body Body) error {
	bs, err := r.BodySchema()
	if err != nil {
		return &oaserrors.ValidationError{Location: oaserrors.LocationBody, Cause: err}
	}
	if !body.Present() {
		return &oaserrors.ValidationError{
			Location: oaserrors.LocationBody,
			Details:  []oaserrors.Detail{{Message: "request body is missing"}},
		}
	}
	return validationFailure(oaserrors.LocationBody, PhaseBody, bs.Schema, body.Value())
}

// ValidateQuery parses and coerces rawQuery and validates the result
// against the operation's query schema.
func (r *Resolution) ValidateQuery(rawQuery string) error {
	qs := r.QuerySchema()
	query := CoerceQuery(ParseQuery(rawQuery))
	return validationFailure(oaserrors.LocationQuery, PhaseQuery, qs.JSONSchema(), query)
}

func validationFailure(loc oaserrors.Location, name string, schema, instance any) error {
	details, err := validateValue(name, schema, instance)
	if err != nil {
		return &oaserrors.ValidationError{Location: loc, Cause: err}
	}
	if len(details) == 0 {
		return nil
	}
	return &oaserrors.ValidationError{Location: loc, Details: details}
}

// ValidateRequest is a convenience wrapper for one-off validations against
// doc without creating a Validator.
func ValidateRequest(doc *oas.Document, routeTemplate, method string, body Body, rawQuery string) error {
	v := &Validator{doc: doc, logger: oas.NopLogger{}}
	return v.ValidateRequest(routeTemplate, method, body, rawQuery)
}
