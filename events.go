package webviewbridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// NativeEventHandler handles a NATIVE_EVENT. An empty Action in the
// response is sent as DefaultAction.
type NativeEventHandler func(ctx context.Context, event NativeEventPayload) NativeEventResponse

// SessionRenewalHandler handles a SESSION_RENEWED request.
type SessionRenewalHandler func(ctx context.Context, session SessionRenewedPayload)

// OnNativeEvent registers handler for events pushed by the native app and
// answers each one with the action the handler picks.
func OnNativeEvent(b Bridge, handler NativeEventHandler) Unregister {
	return b.OnRequest(NativeEvent, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var event NativeEventPayload
		if err := decodeRequestPayload(payload, &event); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", NativeEvent, err)
		}

		response := handler(ctx, NativeEventPayload{Event: event.Event})
		if response.Action == "" {
			response.Action = DefaultAction
		}

		return NativeEventResponse{Action: response.Action}, nil
	})
}

// OnSessionRenewal registers handler for session renewals pushed by the
// native app. Each renewal is acknowledged with a response without payload.
func OnSessionRenewal(b Bridge, handler SessionRenewalHandler) Unregister {
	return b.OnRequest(SessionRenewed, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var session SessionRenewedPayload
		if err := decodeRequestPayload(payload, &session); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", SessionRenewed, err)
		}

		handler(ctx, session)

		return nil, nil
	})
}

// decodeRequestPayload decodes payload into v. An absent payload leaves v
// untouched.
func decodeRequestPayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}

	return json.Unmarshal(payload, v)
}
