package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "normjson-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 5)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"prune", "dedupe", "merge_similar", "merge_objects", "normalize"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Normalize(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "normalize",
		Arguments: map[string]any{
			"document": map[string]any{
				"content": `{"tags": ["C2", "c2"], "notes": null}`,
			},
			"steps": []string{"prune-empty", "dedupe"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(2), structured["removed"])
	assert.JSONEq(t, `{"tags":["C2"]}`, structured["document"].(string))
}

func TestIntegration_CallTool_MergeObjects(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "merge_objects",
		Arguments: map[string]any{
			"left":  map[string]any{"content": `{"k1": "x", "k2": "a1"}`},
			"right": map[string]any{"content": `{"k1": "x", "k2": "a2"}`},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.JSONEq(t, `{"k1":"x","k2":["a1","a2"]}`, structured["document"].(string))
}

func TestIntegration_CallTool_Error_MissingDocument(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "prune",
		Arguments: map[string]any{"document": map[string]any{}},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestIntegration_CallTool_Error_InvalidDocument(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dedupe",
		Arguments: map[string]any{"document": map[string]any{"content": `{"a": `}},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// unmarshalStructured extracts the structured output of a tool call as a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
