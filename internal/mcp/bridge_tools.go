package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
)

// Tool names registered by RegisterBridgeTools.
const (
	StatusToolName  = "bridge_status"
	KindsToolName   = "bridge_kinds"
	RequestToolName = "bridge_request"
)

// Bridge is the part of a bridge the tools drive.
type Bridge interface {
	IsAvailable() bool
	ActiveBinding() string
	Pending() int
	SendRequest(
		ctx context.Context,
		typ catalog.MessageType,
		id string,
		payload any,
		timeout time.Duration,
	) (json.RawMessage, error)
}

// StatusResult is the output of the status tool.
type StatusResult struct {
	Available bool   `json:"available"`
	Binding   string `json:"binding,omitempty"`
	Pending   int    `json:"pending"`
}

// KindInfo describes one catalog entry in the output of the kinds tool.
type KindInfo struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
	Void      bool   `json:"void,omitempty"`
}

// RequestArgs is the input of the request tool.
type RequestArgs struct {
	Type      string `json:"type" jsonschema:"message type to send, for example IMEI"`
	ID        string `json:"id,omitempty" jsonschema:"request id, generated when empty"`
	Payload   any    `json:"payload,omitempty" jsonschema:"request payload"`
	TimeoutMs int    `json:"timeout_ms,omitempty" jsonschema:"milliseconds to wait for the response, 0 uses the bridge default"`
}

type emptyArgs struct{}

// RegisterBridgeTools adds the bridge tools to server.
func RegisterBridgeTools(server *ToolServer, b Bridge) error {
	emptySchema, err := jsonschema.For[emptyArgs](nil)
	if err != nil {
		return fmt.Errorf("status schema: %w", err)
	}

	requestSchema, err := jsonschema.For[RequestArgs](nil)
	if err != nil {
		return fmt.Errorf("request schema: %w", err)
	}

	server.AddTool(
		NewTool(StatusToolName, "Reports whether the native app is reachable and how many requests are pending", emptySchema),
		statusHandler(b),
	)
	server.AddTool(
		NewTool(KindsToolName, "Lists the message types known to the bridge", emptySchema),
		kindsHandler(),
	)
	server.AddTool(
		NewTool(RequestToolName, "Sends a request to the native app and returns the response payload", requestSchema),
		requestHandler(b),
	)

	return nil
}

func statusHandler(b Bridge) mcp.ToolHandler {
	return func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return JSONResult(StatusResult{
			Available: b.IsAvailable(),
			Binding:   b.ActiveBinding(),
			Pending:   b.Pending(),
		})
	}
}

func kindsHandler() mcp.ToolHandler {
	return func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kinds := catalog.Kinds()

		result := make([]KindInfo, 0, len(kinds))
		for _, k := range kinds {
			result = append(result, KindInfo{
				Type:      string(k.Type),
				Direction: k.Direction.String(),
				Void:      k.Void,
			})
		}

		return JSONResult(result)
	}
}

func requestHandler(b Bridge) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args RequestArgs
		if err := ParseArguments(req, &args); err != nil {
			//nolint:nilerr // Intentionally return nil error - error is encoded in the result
			return ErrorResult(err.Error()), nil
		}

		if args.Type == "" {
			return ErrorResult("type is required"), nil
		}

		timeout := time.Duration(args.TimeoutMs) * time.Millisecond

		payload, err := b.SendRequest(ctx, catalog.MessageType(args.Type), args.ID, args.Payload, timeout)
		if err != nil {
			//nolint:nilerr // Intentionally return nil error - error is encoded in the result
			return ErrorResult(err.Error()), nil
		}

		if len(payload) == 0 {
			return TextResult("null"), nil
		}

		return TextResult(string(payload)), nil
	}
}
