// Package commands provides CLI command handlers for oasschema.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasschema"
	"github.com/erraggy/oasschema/httpvalidator"
	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
	"github.com/erraggy/oasschema/schemastore"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrValidationFailed is returned by a command whose input was checked and
// rejected. The failure has already been reported, so callers only need to
// set the exit code.
var ErrValidationFailed = errors.New("validation failed")

// streams groups the standard streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func stdStreams() streams {
	return streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatSpecPath returns a display-friendly path for the schema document.
func FormatSpecPath(specPath string) string {
	if specPath == "" {
		return "<none>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// newLogger returns a debug-level slog logger on w, or a no-op logger.
func newLogger(debug bool, w io.Writer) oas.Logger {
	if !debug {
		return oas.NopLogger{}
	}
	return oas.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// openStore loads the schema document. An empty file falls back to OAS_FILE
// and then to the default location under OAS_ROOT.
func openStore(file string, log oas.Logger) (*schemastore.Store, error) {
	cfg := schemastore.ConfigFromEnv()
	if file != "" {
		cfg.File = file
	}
	opts := append(cfg.Options(), schemastore.WithLogger(log))
	store, err := schemastore.Open(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading schema document: %w", err)
	}
	return store, nil
}

// readBody returns the request or response body selected by the -body and
// -body-file flags. Neither flag yields an absent body.
func readBody(inline, file string, stdin io.Reader) (httpvalidator.Body, error) {
	if inline != "" && file != "" {
		return httpvalidator.NoBody, errors.New("use either -body or -body-file, not both")
	}

	var data []byte
	switch {
	case inline != "":
		data = []byte(inline)
	case file == StdinFilePath:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return httpvalidator.NoBody, fmt.Errorf("reading stdin: %w", err)
		}
		data = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return httpvalidator.NoBody, fmt.Errorf("reading body file: %w", err)
		}
		data = b
	default:
		return httpvalidator.NoBody, nil
	}
	return httpvalidator.ParseJSONBody(data)
}

// Issue is one reported problem in command output.
type Issue struct {
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Keyword  string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	if i.Location != "" {
		return i.Location + " " + path + ": " + i.Message
	}
	return path + ": " + i.Message
}

// issuesOf flattens err into Issues. Errors without schema details yield a
// single Issue carrying the error text.
func issuesOf(err error) []Issue {
	if err == nil {
		return nil
	}

	var (
		loc     string
		details []oaserrors.Detail
	)
	var verr *oaserrors.ValidationError
	var rerr *oaserrors.ResponseValidationError
	switch {
	case errors.As(err, &verr):
		loc, details = string(verr.Location), verr.Details
	case errors.As(err, &rerr):
		loc, details = string(oaserrors.LocationResponse), rerr.Details
	}
	if len(details) == 0 {
		return []Issue{{Location: loc, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(details))
	for _, d := range details {
		issues = append(issues, Issue{
			Location: loc,
			Path:     d.InstancePath,
			Keyword:  d.KeywordPath,
			Message:  d.Message,
		})
	}
	return issues
}

// outputHeader writes the common banner to w.
func outputHeader(w io.Writer, title, specPath string) {
	Writef(w, "%s\n", title)
	for range title {
		Writef(w, "=")
	}
	Writef(w, "\n\n")
	Writef(w, "oasschema version: %s\n", oasschema.Version())
	Writef(w, "Schema document: %s\n", FormatSpecPath(specPath))
}
