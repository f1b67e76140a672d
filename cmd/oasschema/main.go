package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasschema"
	"github.com/erraggy/oasschema/cmd/oasschema/commands"
)

var commandNames = []string{"validate", "response", "routes", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasschema v%s\n", oasschema.Version())
		fmt.Printf("commit: %s\n", oasschema.Commit())
		fmt.Printf("built: %s\n", oasschema.BuildTime())
		fmt.Printf("go: %s\n", oasschema.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "validate":
		err = commands.HandleValidate(os.Args[2:])
	case "response":
		err = commands.HandleResponse(os.Args[2:])
	case "routes":
		err = commands.HandleRoutes(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasschema - OpenAPI 2.0 request and response validation

Usage:
  oasschema <command> [options]

Commands:
  validate    Validate a request body, falling back to its query string
  response    Validate a response payload for a status code
  routes      List the routes the schema document declares
  mcp         Serve the validator as MCP tools over stdio
  version     Show version information
  help        Show this help message

Environment:
  OAS_FILE    schema document path (default: schemas/oas.json)
  OAS_ROOT    directory relative paths resolve against (default: working directory)

Examples:
  oasschema validate -route /books/{isbn} -method put -body-file book.json
  oasschema validate -route /books/by-title -query 'title=dune'
  oasschema response -route /health -status 200 -body '{"status":"ok"}'
  oasschema routes -format yaml

Run 'oasschema <command> --help' for more information on a command.`)
}
