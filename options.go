package webviewbridge

import (
	"log/slog"
	"time"

	"github.com/wagiedev/webview-bridge-go/internal/config"
	"github.com/wagiedev/webview-bridge-go/internal/host"
)

// Options configures a bridge.
type Options = config.Options

// RequestTimeoutEnv names the environment variable holding the default
// request timeout in milliseconds. WithDefaultTimeout takes precedence.
const RequestTimeoutEnv = config.RequestTimeoutEnv

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEnvironment sets the host environment holding the outbound bindings
// and the inbound endpoint. If not set, the bridge creates an empty one,
// available through Bridge.Environment.
func WithEnvironment(env *host.Environment) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

// WithBindings adds outbound bindings probed after the environment's
// Android and WebKit slots.
func WithBindings(bindings ...host.Binding) Option {
	return func(o *Options) {
		o.Bindings = append(o.Bindings, bindings...)
	}
}

// WithTransport carries envelopes over a stream transport, such as a Pipe.
// The bridge serves it between Start and Close.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithIDGenerator sets the function generating request ids.
// If not set, ULIDs are used.
func WithIDGenerator(fn func() string) Option {
	return func(o *Options) {
		o.IDGenerator = fn
	}
}

// WithDefaultTimeout sets the timeout for requests sent without one.
// Zero disables the timeout.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.DefaultTimeout = &timeout
	}
}

// WithPayloadValidation makes Send check response payloads against the
// message catalog schema before decoding them.
func WithPayloadValidation() Option {
	return func(o *Options) {
		o.ValidatePayloads = true
	}
}
