package oas

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasschema/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Version20 is the only "swagger" value the validator is written against.
const Version20 = "2.0"

// Option is a functional option for decoding a Document.
type Option func(*parseConfig) error

// parseConfig holds decoding configuration collected from options.
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath string
	reader   io.Reader
	bytes    []byte

	sourceName string
	logger     Logger
}

// WithFilePath reads the document from a file on disk.
func WithFilePath(path string) Option {
	return func(c *parseConfig) error {
		c.filePath = path
		return nil
	}
}

// WithReader reads the document from r.
func WithReader(r io.Reader) Option {
	return func(c *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "cannot be nil"}
		}
		c.reader = r
		return nil
	}
}

// WithBytes decodes the document from an in-memory buffer.
func WithBytes(data []byte) Option {
	return func(c *parseConfig) error {
		c.bytes = data
		return nil
	}
}

// WithSourceName sets the name used for the document in errors and logs.
// File inputs default to their path.
func WithSourceName(name string) Option {
	return func(c *parseConfig) error {
		c.sourceName = name
		return nil
	}
}

// WithLogger sets the logger used while decoding.
func WithLogger(l Logger) Option {
	return func(c *parseConfig) error {
		c.logger = l
		return nil
	}
}

// ParseWithOptions decodes a Document from exactly one input source.
//
// Example:
//
//	doc, err := oas.ParseWithOptions(
//	    oas.WithFilePath("schemas/oas.yaml"),
//	    oas.WithLogger(oas.NewSlogAdapter(slog.Default())),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != "" {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if cfg.bytes != nil {
		sources++
	}
	if sources != 1 {
		return nil, &oaserrors.ConfigError{
			Option:  "source",
			Value:   sources,
			Message: "exactly one of WithFilePath, WithReader or WithBytes is required",
		}
	}

	data := cfg.bytes
	name := cfg.sourceName
	switch {
	case cfg.filePath != "":
		if name == "" {
			name = cfg.filePath
		}
		b, err := os.ReadFile(cfg.filePath)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: name, Message: "reading file", Cause: err}
		}
		data = b
	case cfg.reader != nil:
		b, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: name, Message: "reading input", Cause: err}
		}
		data = b
	}

	doc, err := decode(data, name)
	if err != nil {
		return nil, err
	}

	log := LoggerOrNop(cfg.logger)
	if doc.Swagger != "" && doc.Swagger != Version20 {
		log.Warn("document does not declare swagger 2.0; decoding only the 2.0 fields",
			"source", name, "swagger", doc.Swagger)
	}
	log.Debug("decoded schema document",
		"source", name, "paths", len(doc.Paths), "definitions", len(doc.Definitions))
	return doc, nil
}

// Parse decodes a JSON or YAML document from data.
func Parse(data []byte) (*Document, error) {
	return ParseWithOptions(WithBytes(data))
}

// ParseFile decodes the JSON or YAML document stored at path.
func ParseFile(path string) (*Document, error) {
	return ParseWithOptions(WithFilePath(path))
}

// decode unmarshals data and normalizes every schema fragment so that it can
// be re-encoded as JSON.
func decode(data []byte, name string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: name, Message: "document is empty"}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "decoding document", Cause: err}
	}
	if doc.Paths == nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "document has no paths"}
	}

	for key, def := range doc.Definitions {
		doc.Definitions[key] = normalizeSchema(def)
	}
	for template, item := range doc.Paths {
		if item == nil {
			return nil, &oaserrors.ParseError{Path: name, Message: fmt.Sprintf("path %q has no operations", template)}
		}
		for _, p := range item.Parameters {
			normalizeParameter(p)
		}
		for _, m := range Methods {
			op := item.Operation(m)
			if op == nil {
				continue
			}
			for i, p := range op.Parameters {
				if p == nil {
					return nil, &oaserrors.ParseError{
						Path:    name,
						Message: fmt.Sprintf("paths.%s.%s.parameters[%d] is null", template, m, i),
					}
				}
				normalizeParameter(p)
			}
			for _, r := range op.Responses {
				if r != nil {
					r.Schema = normalizeSchema(r.Schema)
				}
			}
		}
	}
	return &doc, nil
}

func normalizeParameter(p *Parameter) {
	if p == nil {
		return
	}
	p.Schema = normalizeSchema(p.Schema)
	for i, v := range p.Enum {
		p.Enum[i] = normalizeValue(v)
	}
}

func normalizeSchema(s Schema) Schema {
	if s == nil {
		return nil
	}
	for k, v := range s {
		s[k] = normalizeValue(v)
	}
	return s
}

// normalizeValue converts YAML mappings with non-string keys into
// map[string]any so the value tree is JSON-encodable.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalizeValue(inner)
		}
		return t
	case Schema:
		return normalizeSchema(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = normalizeValue(inner)
		}
		return t
	default:
		return v
	}
}
