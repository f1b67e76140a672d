package commands

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
)

// ResponseFlags contains flags for the response command
type ResponseFlags struct {
	File     string
	Route    string
	Method   string
	Status   int
	Body     string
	BodyFile string
	Format   string
	Quiet    bool
	Debug    bool
}

// SetupResponseFlags creates and configures a FlagSet for the response command.
func SetupResponseFlags() (*flag.FlagSet, *ResponseFlags) {
	fs := flag.NewFlagSet("response", flag.ContinueOnError)
	flags := &ResponseFlags{}

	fs.StringVar(&flags.File, "f", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.File, "file", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.Route, "route", "", "route template as declared under paths (required)")
	fs.StringVar(&flags.Method, "method", "get", "HTTP method")
	fs.IntVar(&flags.Status, "status", http.StatusOK, "response status code")
	fs.StringVar(&flags.Body, "body", "", "JSON response body")
	fs.StringVar(&flags.BodyFile, "body-file", "", "file holding the JSON response body, or '-' for stdin")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasschema response [flags] -route <template>\n\n")
		Writef(fs.Output(), "Validate a response payload against the schema declared for its status code,\n")
		Writef(fs.Output(), "falling back to the operation's default response.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasschema response -route /books/{isbn} -method put -status 200 -body-file book.json\n")
		Writef(fs.Output(), "  curl -s localhost:8080/health | oasschema response -route /health -body-file -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Response conforms\n")
		Writef(fs.Output(), "  1    Response rejected or command error\n")
	}

	return fs, flags
}

// ResponseResult is the structured output of the response command.
type ResponseResult struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Route  string  `json:"route" yaml:"route"`
	Method string  `json:"method" yaml:"method"`
	Status int     `json:"status" yaml:"status"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// HandleResponse executes the response command
func HandleResponse(args []string) error {
	return runResponse(args, stdStreams())
}

func runResponse(args []string, s streams) error {
	fs, flags := SetupResponseFlags()
	fs.SetOutput(s.err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("response command takes no positional arguments, got %q", fs.Args())
	}
	if flags.Route == "" {
		fs.Usage()
		return errors.New("response command requires -route")
	}
	if flags.Status < 100 || flags.Status > 599 {
		return fmt.Errorf("invalid status %d: must be between 100 and 599", flags.Status)
	}
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

	verr := store.Validator().ValidateResponse(flags.Route, flags.Method, flags.Status, body)
	result := ResponseResult{
		Valid:  verr == nil,
		Route:  flags.Route,
		Method: strings.ToLower(flags.Method),
		Status: flags.Status,
	}
	if verr != nil {
		result.Error = verr.Error()
		result.Issues = issuesOf(verr)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(s.out, result, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			outputHeader(s.err, "Response Validator", store.Path())
			Writef(s.err, "Operation: %s %s\n", result.Method, result.Route)
			Writef(s.err, "Status: %d\n\n", result.Status)
		}
		if result.Valid {
			Writef(s.out, "✓ Response conforms\n")
		} else {
			Writef(s.out, "✗ Response rejected\n")
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
