package webviewbridge

import (
	"context"
	"encoding/json"
	"time"
)

// Bridge exchanges correlated messages with the native app hosting the page.
//
// Requests and handlers work as soon as the bridge is created; Start installs
// the inbound entry point into the environment and serves the transport, if
// one is configured.
//
// Lifecycle: Bridges are single-use. After Close(), create a new one with New().
//
// Example usage:
//
//	b := webviewbridge.New(webviewbridge.WithEnvironment(env))
//	defer b.Close()
//
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := b.SendRequest(ctx, webviewbridge.Request{Type: webviewbridge.IMSI}, 5*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Bridge interface {
	// Start installs the inbound entry point and serves the transport.
	// Returns ErrBridgeAlreadyStarted on the second call and ErrBridgeClosed
	// after Close.
	Start(ctx context.Context) error

	// PostMessage delivers a raw message from the native app to every
	// listener. Returns a *MalformedEnvelopeError for undecodable input.
	PostMessage(raw string) error

	// IsAvailable reports whether a host binding is present right now.
	IsAvailable() bool

	// ActiveBinding names the binding requests would use, or "".
	ActiveBinding() string

	// Pending returns the number of outstanding requests.
	Pending() int

	// SendRequest sends req and waits for its response payload.
	// A timeout of zero or less uses the default timeout.
	// Returns a StatusError wrapping ErrBridgeUnavailable when no binding is
	// present, a StatusError wrapping ErrRequestTimeout on timeout, a
	// *RemoteError when the native app answers with ERROR, and a
	// *ProtocolMismatchError when it answers with another type.
	SendRequest(ctx context.Context, req Request, timeout time.Duration) (json.RawMessage, error)

	// Go sends req and returns the Call without waiting for the response.
	Go(req Request, timeout time.Duration) (*Call, error)

	// OnRequest registers handler for requests of type typ initiated by the
	// native app. Each request runs the handler on its own goroutine.
	OnRequest(typ MessageType, handler RequestHandler) Unregister

	// Environment returns the host environment the bridge probes.
	Environment() *Environment

	// Close cancels pending requests with ErrBridgeClosed, stops running
	// handlers and closes the transport.
	// It's safe to call Close multiple times.
	Close() error
}

// New creates a bridge configured by opts.
func New(opts ...Option) Bridge {
	return newBridgeImpl(applyOptions(opts))
}
