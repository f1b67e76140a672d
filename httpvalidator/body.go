package httpvalidator

import (
	"bytes"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/erraggy/oasschema/oaserrors"
)

// Body is the decoded JSON payload of a request or response, or the
// indication that none was supplied. The zero value is NoBody.
type Body struct {
	value   any
	present bool
}

// NoBody reports an absent or unparseable payload.
var NoBody = Body{}

// JSONBody wraps an already decoded JSON value. A nil value is a JSON null,
// which is present but will fail any schema that requires an object.
func JSONBody(v any) Body {
	return Body{value: v, present: true}
}

// Present reports whether a payload was supplied.
func (b Body) Present() bool { return b.present }

// Value returns the decoded payload, or nil for NoBody.
func (b Body) Value() any { return b.value }

// ParseJSONBody decodes raw JSON bytes into a Body. Empty or whitespace-only
// input yields NoBody. Numbers are kept as json.Number so integers of any
// size survive until validation.
func ParseJSONBody(data []byte) (Body, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NoBody, nil
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return NoBody, &oaserrors.ParseError{Path: "body", Message: "invalid JSON", Cause: err}
	}
	return JSONBody(v), nil
}
