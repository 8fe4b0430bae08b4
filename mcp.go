package webviewbridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	internalmcp "github.com/wagiedev/webview-bridge-go/internal/mcp"
)

// Re-export MCP types for public API.
type (
	// ToolServer is a registry of MCP tools driving a bridge.
	ToolServer = internalmcp.ToolServer

	// CallToolResult is the server's response to a tool call.
	CallToolResult = mcp.CallToolResult

	// McpTool represents an MCP tool definition from the official SDK.
	McpTool = mcp.Tool
)

// Names of the tools registered by NewToolServer.
const (
	StatusToolName  = internalmcp.StatusToolName
	KindsToolName   = internalmcp.KindsToolName
	RequestToolName = internalmcp.RequestToolName
)

// NewToolServer exposes b as MCP tools: bridge_status reports availability,
// bridge_kinds lists the message catalog and bridge_request sends a request
// to the native app.
//
// Call tools in process with CallTool, or publish them to MCP clients:
//
//	tools, err := webviewbridge.NewToolServer(b, "webview-bridge", "1.0.0", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = tools.Server().Run(ctx, &mcp.StdioTransport{})
func NewToolServer(b Bridge, name, version string, logger *slog.Logger) (*ToolServer, error) {
	server := internalmcp.NewToolServer(loggerOrNop(logger), name, version)
	if err := internalmcp.RegisterBridgeTools(server, toolBridge{b}); err != nil {
		return nil, err
	}

	return server, nil
}

// toolBridge adapts a Bridge to the tool surface.
type toolBridge struct {
	Bridge
}

func (t toolBridge) SendRequest(
	ctx context.Context,
	typ catalog.MessageType,
	id string,
	payload any,
	timeout time.Duration,
) (json.RawMessage, error) {
	return t.Bridge.SendRequest(ctx, Request{Type: typ, ID: id, Payload: payload}, timeout)
}
