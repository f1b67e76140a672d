package commands

import (
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"
)

// RoutesFlags contains flags for the routes command
type RoutesFlags struct {
	File   string
	Format string
	Debug  bool
}

// SetupRoutesFlags creates and configures a FlagSet for the routes command.
func SetupRoutesFlags() (*flag.FlagSet, *RoutesFlags) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	flags := &RoutesFlags{}

	fs.StringVar(&flags.File, "f", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.File, "file", "", "schema document path (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasschema routes [flags]\n\n")
		Writef(fs.Output(), "List every route and method the schema document declares.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasschema routes\n")
		Writef(fs.Output(), "  oasschema routes -f api.yaml -format json\n")
	}

	return fs, flags
}

// RouteEntry is one row of routes output.
type RouteEntry struct {
	// Route is the template as requests arrive, basePath included
	Route string `json:"route" yaml:"route"`
	// Template is the key under paths
	Template    string `json:"template" yaml:"template"`
	Method      string `json:"method" yaml:"method"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
}

// RoutesResult is the structured output of the routes command.
type RoutesResult struct {
	BasePath string       `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Total    int          `json:"total" yaml:"total"`
	Routes   []RouteEntry `json:"routes" yaml:"routes"`
}

// HandleRoutes executes the routes command
func HandleRoutes(args []string) error {
	return runRoutes(args, stdStreams())
}

func runRoutes(args []string, s streams) error {
	fs, flags := SetupRoutesFlags()
	fs.SetOutput(s.err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("routes command takes no positional arguments, got %q", fs.Args())
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	store, err := openStore(flags.File, newLogger(flags.Debug, s.err))
	if err != nil {
		return err
	}
	doc := store.Document()

	result := RoutesResult{BasePath: doc.BasePath, Routes: []RouteEntry{}}
	for _, r := range doc.Routes() {
		entry := RouteEntry{
			Route:    doc.BasePath + r.Path,
			Template: r.Path,
			Method:   r.Method,
		}
		if r.Operation != nil {
			entry.OperationID = r.Operation.OperationID
		}
		result.Routes = append(result.Routes, entry)
	}
	result.Total = len(result.Routes)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(s.out, result, flags.Format)
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	Writef(tw, "METHOD\tROUTE\tOPERATION\n")
	for _, r := range result.Routes {
		Writef(tw, "%s\t%s\t%s\n", r.Method, r.Route, r.OperationID)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing routes: %w", err)
	}
	Writef(s.err, "\n%d route(s)\n", result.Total)
	return nil
}
