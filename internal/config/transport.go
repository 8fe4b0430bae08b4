// Package config provides configuration types for the bridge.
package config

import (
	"context"

	"github.com/wagiedev/webview-bridge-go/internal/host"
)

// Transport defines a stream carrying envelopes between the web layer and
// a native app that is not reachable through in-process bindings.
//
// The default implementation is stdio.Pipe, which exchanges newline-delimited
// JSON over a reader and a writer.
type Transport interface {
	// Binding posts outbound messages. Lookup returns nil once the
	// transport is closed.
	host.Binding

	// Serve feeds inbound messages to inbound until the stream ends, ctx is
	// cancelled, or Close is called.
	Serve(ctx context.Context, inbound host.InboundFunc) error

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}
