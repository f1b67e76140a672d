package oas

import "maps"

// Schema is a JSON Schema fragment taken verbatim from the document.
// Nested values are JSON-compatible: map[string]any, []any, string, bool,
// int, float64 or nil.
type Schema map[string]any

// DefinitionsKey is the keyword under which shared definitions are exposed to
// a schema fragment so that "#/definitions/..." references resolve.
const DefinitionsKey = "definitions"

// WithDefinitions returns a shallow copy of s whose "definitions" keyword is
// set to defs. The copy shares every other value with s, and s itself is left
// untouched, so fragments of a shared Document stay read-only.
func (s Schema) WithDefinitions(defs map[string]Schema) Schema {
	out := make(Schema, len(s)+1)
	maps.Copy(out, s)
	if defs == nil {
		defs = map[string]Schema{}
	}
	out[DefinitionsKey] = defs
	return out
}
