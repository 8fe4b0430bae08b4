package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/wagiedev/webview-bridge-go/internal/host"
)

// RequestTimeoutEnv names the environment variable holding the default
// request timeout in milliseconds.
const RequestTimeoutEnv = "WEBVIEW_BRIDGE_REQUEST_TIMEOUT_MS"

// Options configures a bridge.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Environment holds the host bindings and the inbound entry point.
	// If nil, a fresh empty environment is created.
	Environment *host.Environment

	// Bindings are extra outbound bindings probed after the environment's
	// Android and WebKit slots, in order.
	Bindings []host.Binding

	// Transport carries envelopes over a stream instead of in-process
	// bindings. Its binding is probed after Bindings and Serve feeds the
	// inbound entry point while the bridge runs.
	Transport Transport `json:"-"`

	// IDGenerator produces request ids when the caller leaves them empty.
	// If nil, ULIDs are used.
	IDGenerator func() string

	// DefaultTimeout applies to requests sent without an explicit timeout.
	// If nil, RequestTimeoutEnv is consulted; otherwise requests wait
	// indefinitely.
	DefaultTimeout *time.Duration

	// ValidatePayloads checks typed responses against the catalog schema
	// before decoding them.
	ValidatePayloads bool
}

// RequestTimeout resolves the default request timeout. Zero means no timeout.
func (o *Options) RequestTimeout() time.Duration {
	if o.DefaultTimeout != nil {
		return max(*o.DefaultTimeout, 0)
	}

	if timeoutStr := os.Getenv(RequestTimeoutEnv); timeoutStr != "" {
		if timeoutMs, err := strconv.Atoi(timeoutStr); err == nil && timeoutMs > 0 {
			return time.Duration(timeoutMs) * time.Millisecond
		}
	}

	return 0
}
