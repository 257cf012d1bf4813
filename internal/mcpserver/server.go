// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the normjson passes as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/normjson"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `normjson MCP server: prunes, deduplicates and merges JSON or YAML records.

Configuration: All defaults are configurable via NORMJSON_* environment variables set in your MCP client config.

Key settings:
- NORMJSON_DEFAULT_STEPS (default: prune-empty,dedupe) - steps run by normalize when none are given
- NORMJSON_EXACT_DEDUPE (default: false) - dedupe with exact equality instead of case-insensitive
- NORMJSON_MAX_DEPTH (default: 1000) - maximum nesting depth accepted
- NORMJSON_MAX_INLINE_SIZE (default: 10MiB) - maximum inline content size
- NORMJSON_MAX_INPUT_SIZE (default: 100MiB) - maximum file size
- NORMJSON_CACHE_ENABLED (default: true) - disable document caching entirely

Order: merge_similar output arrays have no defined element order. Objects are
compared by key order for dedupe and merge, so records should list keys consistently.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "normjson", Version: normjson.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "prune",
		Description: "Remove null object entries from a JSON or YAML document at any depth. With empty=true also remove empty arrays and objects, and null array elements. Returns the pruned document and the number of removed entries.",
	}, handlePrune)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dedupe",
		Description: "Remove duplicate array elements at any depth, keeping the first occurrence in order. Strings compare case-insensitively unless exact=true. Object keys always compare exactly and in order.",
	}, handleDedupe)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_similar",
		Description: "Fold array objects that have the same key sequence into one record per shape. Differing field values become two-element arrays. Resulting array order is not defined.",
	}, handleMergeSimilar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_objects",
		Description: "Merge two objects with the same key sequence field by field. The result keeps the left object's keys. Fails with a shape mismatch when the key sequences differ.",
	}, handleMergeObjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Run a pipeline of steps (prune-nulls, prune-empty, dedupe, merge-similar) over a document, in the order given. Default steps are configurable via NORMJSON_DEFAULT_STEPS.",
	}, handleNormalize)
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
