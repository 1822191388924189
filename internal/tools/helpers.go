// Package tools implements the MCP tool handlers for the grader.
//
// Each tool is a struct with its dependencies injected via constructor;
// Definition() returns the mcp.Tool schema and Handle() processes the
// request. One file per tool.
package tools

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// loadSpecContent resolves the document bytes for a tool call: inline
// content wins, otherwise the path is read. The returned path is empty
// for inline content.
func loadSpecContent(req mcp.CallToolRequest) ([]byte, string, error) {
	if content := req.GetString("content", ""); content != "" {
		return []byte(content), "", nil
	}
	path := req.GetString("path", "")
	if path == "" {
		return nil, "", fmt.Errorf("either 'path' or 'content' is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, path, nil
}

// asJSON renders a value as indented JSON for embedding in a tool
// response.
func asJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<marshal error: %v>", err)
	}
	return string(data)
}
