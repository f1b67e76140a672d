package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasschema/internal/mcpserver"
	"github.com/erraggy/oasschema/schemastore"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	File       string
	NoDocument bool
	Debug      bool
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	fs.StringVar(&flags.File, "f", "", "schema document served by default (default: $OAS_FILE or schemas/oas.json)")
	fs.StringVar(&flags.File, "file", "", "schema document served by default (default: $OAS_FILE or schemas/oas.json)")
	fs.BoolVar(&flags.NoDocument, "no-document", false, "start without a default document; every tool call must supply one")
	fs.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasschema mcp [flags]\n\n")
		Writef(fs.Output(), "Serve the validator as Model Context Protocol tools over stdio.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nTools:\n")
		Writef(fs.Output(), "  validate_request    Validate a request body with query fallback\n")
		Writef(fs.Output(), "  validate_response   Validate a response payload\n")
		Writef(fs.Output(), "  resolve_operation   Show the schemas selected for an operation\n")
		Writef(fs.Output(), "  list_routes         List declared routes\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - When -file and $OAS_FILE are both unset and schemas/oas.json does not\n")
		Writef(fs.Output(), "    exist, the server starts without a default document\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no positional arguments, got %q", fs.Args())
	}
	if flags.NoDocument && flags.File != "" {
		return errors.New("use either -file or -no-document, not both")
	}

	store, err := mcpStore(flags, os.Getenv(schemastore.EnvFile))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx, store)
}

// mcpStore opens the default document for the server. Only the implicit
// default location may be missing.
func mcpStore(flags *MCPFlags, envFile string) (*schemastore.Store, error) {
	if flags.NoDocument {
		return nil, nil
	}
	store, err := openStore(flags.File, newLogger(flags.Debug, os.Stderr))
	if err != nil {
		if flags.File == "" && envFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}
