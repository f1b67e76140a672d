package httpvalidator

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erraggy/oasschema/oaserrors"
)

// Swagger 2.0 schemas are a subset of JSON Schema draft 4.
var schemaDraft = jsonschema.Draft4

const resourcePrefix = "file:///oasschema/"

// compileSchema compiles schema as an in-memory draft 4 resource. Schemas are
// derived per call and compiled fresh, so nothing is shared between requests.
func compileSchema(name string, schema any) (*jsonschema.Schema, error) {
	doc, err := toJSONValue(schema)
	if err != nil {
		return nil, err
	}

	url := resourcePrefix + name + ".json"
	c := jsonschema.NewCompiler()
	c.DefaultDraft(schemaDraft)
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}

// validateValue checks instance against schema and returns the violations.
// A nil slice with a nil error means the instance conforms. A non-nil error
// means the schema itself could not be compiled or the instance could not
// be represented as JSON.
func validateValue(name string, schema, instance any) ([]oaserrors.Detail, error) {
	sch, err := compileSchema(name, schema)
	if err != nil {
		return nil, err
	}
	v, err := toJSONValue(instance)
	if err != nil {
		return nil, err
	}

	err = sch.Validate(v)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	return collectDetails(ve), nil
}

// toJSONValue normalizes v into the value model the validator expects:
// map[string]any, []any, string, bool, nil and json.Number.
func toJSONValue(v any) (any, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
}

// collectDetails flattens the cause tree of a validation error into its
// leaves, which carry the specific keyword that failed.
func collectDetails(ve *jsonschema.ValidationError) []oaserrors.Detail {
	p := message.NewPrinter(language.English)
	var details []oaserrors.Detail
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			details = append(details, oaserrors.Detail{
				InstancePath: jsonPointer(e.InstanceLocation),
				KeywordPath:  keywordLocation(e),
				Message:      e.ErrorKind.LocalizedString(p),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return details
}

// keywordLocation joins the failing schema's location within the compiled
// resource with the keyword that failed, e.g. "/properties/pages/type".
func keywordLocation(e *jsonschema.ValidationError) string {
	var frag string
	if i := strings.IndexByte(e.SchemaURL, '#'); i >= 0 {
		frag = e.SchemaURL[i+1:]
	}
	return frag + jsonPointer(e.ErrorKind.KeywordPath())
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func jsonPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	return b.String()
}
