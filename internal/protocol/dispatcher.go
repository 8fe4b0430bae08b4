package protocol

import (
	"log/slog"

	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
)

// Dispatcher is the single inbound entry point: it decodes raw messages from
// the native app and broadcasts them to the listener registry.
type Dispatcher struct {
	log      *slog.Logger
	registry *listener.Registry
}

// NewDispatcher creates a dispatcher that delivers to registry.
func NewDispatcher(log *slog.Logger, registry *listener.Registry) *Dispatcher {
	return &Dispatcher{
		log:      log.With("component", "dispatcher"),
		registry: registry,
	}
}

// Dispatch decodes raw and delivers it to every registered listener.
//
// A message that fails to decode returns *errors.MalformedEnvelopeError and
// reaches no listener; the registry and other in-flight requests are left
// untouched.
func (d *Dispatcher) Dispatch(raw string) error {
	env, err := envelope.Decode(raw)
	if err != nil {
		d.log.Warn("Failed to decode inbound message", "error", err)

		return err
	}

	delivered := d.registry.DeliverAll(env)

	d.log.Debug("Delivered inbound message",
		"type", env.Type,
		"id", env.ID,
		"listeners", delivered,
	)

	return nil
}

// Install binds Dispatch as the endpoint's entry point.
// Returns false if the endpoint already had one; the existing entry point is kept.
func (d *Dispatcher) Install(endpoint *host.Endpoint) bool {
	installed := endpoint.Install(d.Dispatch)
	if !installed {
		d.log.Debug("Inbound endpoint already installed")
	}

	return installed
}
