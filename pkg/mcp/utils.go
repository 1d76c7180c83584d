package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg returns the trimmed string argument name, or "" when absent or not a string.
func stringArg(request mcp.CallToolRequest, name string) string {
	v, _ := request.Params.Arguments[name].(string)
	return strings.TrimSpace(v)
}

func boolArg(request mcp.CallToolRequest, name string) bool {
	v, _ := request.Params.Arguments[name].(bool)
	return v
}

// jsonResult serializes v as the text of a tool result.
func jsonResult(v any, what string) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize %s to JSON: %v", what, err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
