package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oassamples"
	"github.com/erraggy/oassamples/cmd/oassamples/commands"
)

// commandNames lists every top-level command, for suggestions.
var commandNames = []string{"annotate", "action", "languages", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streams := commands.StdStreams()
	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oassamples v%s\n", oassamples.Version())
	case "help", "-h", "--help":
		printUsage()
	case "annotate":
		err = commands.HandleAnnotate(ctx, os.Args[2:], streams)
	case "action":
		err = commands.HandleAction(ctx, os.Getenv, streams)
	case "languages":
		err = commands.HandleLanguages(os.Args[2:], streams)
	case "mcp":
		err = commands.HandleMCP(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Printf(`oassamples - OpenAPI code sample generator

Usage:
  oassamples <command> [options]

Commands:
  annotate    Generate x-codeSamples for every operation of a document
  action      Run as a GitHub Action (%s)
  languages   List the built-in code sample languages
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oassamples annotate -o openapi.samples.yaml openapi.yaml
  oassamples annotate -l shell,python,go -f json https://example.com/openapi.yaml
  oassamples languages --format json

Run 'oassamples <command> --help' for more information on a command.
`, commands.ActionUsage())
}
