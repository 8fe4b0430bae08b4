package webviewbridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wagiedev/webview-bridge-go/internal/bridge"
)

// bridgeWrapper wraps the internal bridge to adapt it to the public interface.
type bridgeWrapper struct {
	impl *bridge.Bridge
}

// Compile-time check that *bridgeWrapper implements the Bridge interface.
var _ Bridge = (*bridgeWrapper)(nil)

// newBridgeImpl creates the internal bridge implementation.
func newBridgeImpl(options *Options) *bridgeWrapper {
	return &bridgeWrapper{impl: bridge.New(options)}
}

// Start installs the inbound entry point and serves the transport.
func (b *bridgeWrapper) Start(ctx context.Context) error {
	return b.impl.Start(ctx)
}

// PostMessage delivers a raw message from the native app.
func (b *bridgeWrapper) PostMessage(raw string) error {
	return b.impl.PostMessage(raw)
}

// IsAvailable reports whether a host binding is present.
func (b *bridgeWrapper) IsAvailable() bool {
	return b.impl.IsAvailable()
}

// ActiveBinding names the binding requests would use.
func (b *bridgeWrapper) ActiveBinding() string {
	return b.impl.ActiveBinding()
}

// Pending returns the number of outstanding requests.
func (b *bridgeWrapper) Pending() int {
	return b.impl.Pending()
}

// SendRequest sends req and waits for its response payload.
func (b *bridgeWrapper) SendRequest(
	ctx context.Context,
	req Request,
	timeout time.Duration,
) (json.RawMessage, error) {
	return b.impl.SendRequest(ctx, req.Type, req.ID, req.Payload, timeout)
}

// Go sends req without waiting for the response.
func (b *bridgeWrapper) Go(req Request, timeout time.Duration) (*Call, error) {
	return b.impl.Go(req.Type, req.ID, req.Payload, timeout)
}

// OnRequest registers a handler for native-initiated requests.
func (b *bridgeWrapper) OnRequest(typ MessageType, handler RequestHandler) Unregister {
	return b.impl.OnRequest(typ, handler)
}

// Environment returns the host environment.
func (b *bridgeWrapper) Environment() *Environment {
	return b.impl.Environment()
}

// Close releases the bridge.
func (b *bridgeWrapper) Close() error {
	return b.impl.Close()
}

// validatePayloads reports whether Send checks payloads against the catalog.
func (b *bridgeWrapper) validatePayloads() bool {
	return b.impl.ValidatePayloads()
}
