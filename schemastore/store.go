package schemastore

import (
	"github.com/erraggy/oasschema/httpvalidator"
	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// Option is a functional option for Open.
type Option func(*options) error

type options struct {
	cfg           Config
	doc           *oas.Document
	logger        oas.Logger
	validatorOpts []httpvalidator.Option
}

// WithFile sets the document path. Relative paths resolve against the root.
func WithFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFile", Message: "path cannot be empty"}
		}
		o.cfg.File = path
		return nil
	}
}

// WithRoot sets the application root used to resolve the document path.
func WithRoot(root string) Option {
	return func(o *options) error {
		if root == "" {
			return &oaserrors.ConfigError{Option: "WithRoot", Message: "root cannot be empty"}
		}
		o.cfg.Root = root
		return nil
	}
}

// WithDocument uses an already decoded document instead of reading a file.
func WithDocument(doc *oas.Document) Option {
	return func(o *options) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "WithDocument", Message: "document cannot be nil"}
		}
		o.doc = doc
		return nil
	}
}

// WithLogger sets the logger for loading and validation.
func WithLogger(l oas.Logger) Option {
	return func(o *options) error {
		o.logger = oas.LoggerOrNop(l)
		return nil
	}
}

// WithValidatorOptions passes options through to httpvalidator.New.
func WithValidatorOptions(opts ...httpvalidator.Option) Option {
	return func(o *options) error {
		o.validatorOpts = append(o.validatorOpts, opts...)
		return nil
	}
}

// Store holds the document and the validator built from it.
type Store struct {
	doc       *oas.Document
	validator *httpvalidator.Validator
	path      string
}

// Open loads the document and builds its validator.
//
// Returns a *oaserrors.ConfigError for conflicting or invalid options and a
// *oaserrors.ParseError when the document cannot be read or decoded.
func Open(opts ...Option) (*Store, error) {
	o := &options{logger: oas.NopLogger{}}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.doc != nil && (o.cfg.File != "" || o.cfg.Root != "") {
		return nil, &oaserrors.ConfigError{
			Option:  "WithDocument",
			Message: "cannot be combined with WithFile or WithRoot",
		}
	}

	s := &Store{doc: o.doc}
	if s.doc == nil {
		path, err := o.cfg.Path()
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "root", Message: "resolving application root", Cause: err}
		}
		doc, err := oas.ParseWithOptions(oas.WithFilePath(path), oas.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		s.doc, s.path = doc, path
	}

	vopts := append([]httpvalidator.Option{httpvalidator.WithLogger(o.logger)}, o.validatorOpts...)
	v, err := httpvalidator.New(s.doc, vopts...)
	if err != nil {
		return nil, err
	}
	s.validator = v

	o.logger.Info("schema document loaded", "path", s.path, "paths", len(s.doc.Paths), "definitions", len(s.doc.Definitions))
	return s, nil
}

// MustOpen is like Open but panics on error. It is intended for program
// initialization.
func MustOpen(opts ...Option) *Store {
	s, err := Open(opts...)
	if err != nil {
		panic("schemastore: " + err.Error())
	}
	return s
}

// Document returns the loaded document. Callers must not modify it.
func (s *Store) Document() *oas.Document { return s.doc }

// Validator returns the validator bound to the document.
func (s *Store) Validator() *httpvalidator.Validator { return s.validator }

// Path returns the file the document was read from, or "" when it was
// supplied with WithDocument.
func (s *Store) Path() string { return s.path }
