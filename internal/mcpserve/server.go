// Package mcpserve exposes keyword search over the Model Context Protocol so
// that agents can query a loaded document.
package mcpserve

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/keysearch/internal/ingest"
	"github.com/agentic-research/keysearch/internal/search"
	"github.com/agentic-research/keysearch/internal/tree"
)

// ToolName is the name of the search tool.
const ToolName = "search_keyword"

// Version is reported to MCP clients.
const Version = "0.1.0"

// Handler answers search_keyword calls against a fixed root.
type Handler struct {
	Root    *tree.Node
	Options search.Options
}

// Tool describes the search tool and its arguments.
func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Recursively search the loaded document for a keyword. "+
			"Reports every path whose member name or string value contains the keyword (case-sensitive)."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Substring to look for")),
		mcp.WithNumber("depth", mcp.Description("Maximum recursion depth (default 500)")),
		mcp.WithString("root", mcp.Description("Optional JSONPath expression narrowing the search root")),
	)
}

// Handle implements the tool call.
func (h *Handler) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := h.Root
	if sel := req.GetString("root", ""); sel != "" {
		narrowed, err := ingest.Select(root, sel)
		if err != nil {
			return mcp.NewToolResultError(search.ErrorResponse(err).Text), nil
		}
		root = narrowed
	}

	resp := search.Run(root, search.Request{
		Keyword: req.GetString("keyword", ""),
		Depth:   strconv.Itoa(req.GetInt("depth", h.Options.MaxDepth)),
		Options: h.Options,
	})
	if resp.Err != nil {
		return mcp.NewToolResultError(resp.Text), nil
	}
	return mcp.NewToolResultText(resp.Text), nil
}

// New builds an MCP server with the search tool registered.
func New(h *Handler) *server.MCPServer {
	s := server.NewMCPServer("keysearch", Version, server.WithToolCapabilities(false))
	s.AddTool(Tool(), h.Handle)
	return s
}

// ServeStdio serves h over stdin/stdout until the client disconnects.
func ServeStdio(h *Handler) error {
	return server.ServeStdio(New(h))
}
