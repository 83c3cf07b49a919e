package commands

import (
	"context"

	"github.com/erraggy/oassamples/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio and blocks until the client
// disconnects or ctx is cancelled.
func HandleMCP(ctx context.Context) error {
	return mcpserver.Run(ctx)
}
