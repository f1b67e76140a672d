package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	File     string
	Route    string
	Method   string
	Body     string
	BodyFile string
	Query    string
	Format   string
	Quiet    bool
	Debug    bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.File, "f", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.File, "file", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.Route, "route", "", "route template as declared under paths, e.g. /books/{isbn} (required)")
	fs.StringVar(&flags.Method, "method", "get", "HTTP method")
	fs.StringVar(&flags.Body, "body", "", "JSON request body")
	fs.StringVar(&flags.BodyFile, "body-file", "", "file holding the JSON request body, or '-' for stdin")
	fs.StringVar(&flags.Query, "query", "", "raw query string, e.g. isbn=123&page=2")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasschema validate [flags] -route <template>\n\n")
		Writef(fs.Output(), "Validate a request body, falling back to its query string, against the\n")
		Writef(fs.Output(), "operation the schema document declares for the route and method.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasschema validate -route /books/{isbn} -method put -body '{\"isbn\":\"1\",\"title\":\"t\",\"author\":\"a\"}'\n")
		Writef(fs.Output(), "  oasschema validate -f api.json -route /books/by-title -query 'title=dune&page=2'\n")
		Writef(fs.Output(), "  cat book.json | oasschema validate -route /books/{isbn} -method put -body-file -\n")
		Writef(fs.Output(), "  oasschema validate -route /health -format json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Request accepted\n")
		Writef(fs.Output(), "  1    Request rejected or command error\n")
	}

	return fs, flags
}

// RequestResult is the structured output of the validate command.
type RequestResult struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Stage  string  `json:"stage" yaml:"stage"`
	Route  string  `json:"route" yaml:"route"`
	Method string  `json:"method" yaml:"method"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	return runValidate(args, stdStreams())
}

func runValidate(args []string, s streams) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(s.err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("validate command takes no positional arguments, got %q", fs.Args())
	}
	if flags.Route == "" {
		fs.Usage()
		return errors.New("validate command requires -route")
	}

	// Validate format flag early to fail fast before loading the document
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	body, err := readBody(flags.Body, flags.BodyFile, s.in)
	if err != nil {
		return err
	}

	store, err := openStore(flags.File, newLogger(flags.Debug, s.err))
	if err != nil {
		return err
	}

	startTime := time.Now()
	outcome := store.Validator().Attempt(flags.Route, flags.Method, body, flags.Query)
	totalTime := time.Since(startTime)

	result := RequestResult{
		Valid:  outcome.Valid(),
		Stage:  outcome.Stage.String(),
		Route:  flags.Route,
		Method: strings.ToLower(flags.Method),
	}
	if err := outcome.Err(); err != nil {
		result.Error = err.Error()
		result.Issues = issuesOf(err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(s.out, result, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			outputHeader(s.err, "Request Validator", store.Path())
			Writef(s.err, "Operation: %s %s\n", result.Method, result.Route)
			Writef(s.err, "Total Time: %v\n\n", totalTime)
		}
		if result.Valid {
			Writef(s.out, "✓ Request accepted (%s)\n", result.Stage)
		} else {
			Writef(s.out, "✗ Request rejected (%s)\n", result.Stage)
			for _, issue := range result.Issues {
				Writef(s.out, "  %s\n", issue)
			}
		}
	}

	if !result.Valid {
		return ErrValidationFailed
	}
	return nil
}
