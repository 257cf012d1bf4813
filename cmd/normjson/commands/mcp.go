package commands

import "github.com/erraggy/normjson/internal/mcpserver"

// MCPCmd serves the normalization tools over MCP on stdio.
type MCPCmd struct{}

// Run starts the MCP server and blocks until the client disconnects.
func (c *MCPCmd) Run(g *Globals) error {
	return mcpserver.Run(g.ctx())
}
