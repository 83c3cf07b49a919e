// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oassamples capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/erraggy/oassamples"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oassamples MCP server: generates x-codeSamples for every operation of an OpenAPI 3.x document.

Configuration: defaults are configurable via OASSAMPLES_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASSAMPLES_MAX_INLINE_SIZE (default: 10485760) - maximum inline content size in bytes
- OASSAMPLES_ALLOW_PRIVATE_IPS (default: false) - allow URL inputs that resolve to private addresses
- OASSAMPLES_CONCURRENCY (default: 4) - parallel snippet generation
- OASSAMPLES_LIST_LIMIT (default: 100) - default result limit for the operations tool

Swagger 2.0 documents are rejected; convert them to OpenAPI 3 first.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oassamples", Version: oassamples.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "annotate",
		Description: "Generate code samples for every operation of an OpenAPI 3.x document and splice them into each operation under x-codeSamples. Languages default to go, python, shell, java, kotlin, swift. Format: source (default, keeps the input serialization), json, yaml, or overlay (an Overlay 1.0.0 document instead of the annotated spec). Use output to write to a file instead of returning the document inline.",
	}, handleAnnotate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "languages",
		Description: "List the built-in code sample languages with the highlighting tag and label each one produces, and which ones are used by default.",
	}, handleLanguages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations of an OpenAPI 3.x document in declaration order, with their operationId, request media types, whether a request body example exists, and how many code samples are already attached. Use offset/limit to paginate. Default limit is configurable via OASSAMPLES_LIST_LIMIT.",
	}, handleOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
