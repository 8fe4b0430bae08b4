package webviewbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
)

// payloadValidator is implemented by bridges that can check response
// payloads against the message catalog.
type payloadValidator interface {
	validatePayloads() bool
}

// Send sends req through b and decodes the response payload into T.
//
// A response without payload yields the zero value of T. When the bridge was
// created with WithPayloadValidation, the payload is checked against the
// catalog schema of req.Type first.
//
// Example:
//
//	cfg, err := webviewbridge.Send[webviewbridge.RemoteConfigPayload](ctx, b,
//	    webviewbridge.Request{Type: webviewbridge.GetRemoteConfig}, 5*time.Second)
func Send[T any](ctx context.Context, b Bridge, req Request, timeout time.Duration) (T, error) {
	var result T

	payload, err := b.SendRequest(ctx, req, timeout)
	if err != nil {
		return result, err
	}

	if v, ok := b.(payloadValidator); ok && v.validatePayloads() {
		if err := catalog.Validate(req.Type, payload); err != nil {
			return result, fmt.Errorf("validate %s response: %w", req.Type, err)
		}
	}

	if len(payload) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(payload, &result); err != nil {
		return result, fmt.Errorf("decode %s response: %w", req.Type, err)
	}

	return result, nil
}
