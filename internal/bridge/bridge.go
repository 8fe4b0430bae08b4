package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/config"
	"github.com/wagiedev/webview-bridge-go/internal/errors"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
	"github.com/wagiedev/webview-bridge-go/internal/protocol"
)

// Bridge wires the registry, probe, dispatcher, correlator and handlers.
type Bridge struct {
	log     *slog.Logger
	options *config.Options
	timeout time.Duration

	env        *host.Environment
	registry   *listener.Registry
	probe      *host.Probe
	dispatcher *protocol.Dispatcher
	correlator *protocol.Correlator
	handlers   *protocol.Handlers

	// Errgroup serving the stream transport
	eg     *errgroup.Group
	cancel context.CancelFunc

	// Lifecycle management
	mu        sync.Mutex
	started   bool
	closed    bool
	closeOnce sync.Once
}

// New creates a bridge from options.
//
// Requests and handlers work immediately; Start only installs the inbound
// entry point and serves the stream transport.
func New(options *config.Options) *Bridge {
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	env := options.Environment
	if env == nil {
		env = host.NewEnvironment()
	}

	extra := make([]host.Binding, 0, len(options.Bindings)+1)
	extra = append(extra, options.Bindings...)

	if options.Transport != nil {
		extra = append(extra, options.Transport)
	}

	registry := listener.NewRegistry(log)
	probe := env.Probe(extra...)

	return &Bridge{
		log:        log.With("component", "bridge"),
		options:    options,
		timeout:    options.RequestTimeout(),
		env:        env,
		registry:   registry,
		probe:      probe,
		dispatcher: protocol.NewDispatcher(log, registry),
		correlator: protocol.NewCorrelator(log, registry, probe, options.IDGenerator),
		handlers:   protocol.NewHandlers(log, registry, probe),
	}
}

// Start installs the inbound entry point into the environment and, when a
// transport is configured, serves it until Close.
//
// The transport runs on a background context so that a deadline on ctx
// bounds only startup, not the life of the bridge.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errors.ErrBridgeClosed
	}

	if b.started {
		return errors.ErrBridgeAlreadyStarted
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if !b.dispatcher.Install(b.env.Endpoint) {
		b.log.Warn("Inbound endpoint already installed by another bridge")
	}

	if transport := b.options.Transport; transport != nil {
		var egCtx context.Context

		egCtx, b.cancel = context.WithCancel(context.Background())
		b.eg, egCtx = errgroup.WithContext(egCtx)

		b.eg.Go(func() error {
			return b.serve(egCtx, transport)
		})
	}

	b.started = true
	b.log.Info("Bridge started", "binding", b.probe.Active())

	return nil
}

func (b *Bridge) serve(ctx context.Context, transport config.Transport) error {
	b.log.Debug("Serving transport", "transport", transport.Name())

	err := transport.Serve(ctx, b.dispatcher.Dispatch)
	if err != nil && ctx.Err() == nil {
		b.log.Error("Transport stopped with error", "transport", transport.Name(), "error", err)

		return err
	}

	b.log.Debug("Transport stopped", "transport", transport.Name())

	return nil
}

// PostMessage is the inbound entry point: it delivers a raw message from
// the native app to every listener.
func (b *Bridge) PostMessage(raw string) error {
	if b.isClosed() {
		return errors.ErrBridgeClosed
	}

	return b.dispatcher.Dispatch(raw)
}

// IsAvailable reports whether a host binding is present right now.
func (b *Bridge) IsAvailable() bool {
	return b.probe.IsAvailable()
}

// ActiveBinding returns the name of the binding requests would use, or "".
func (b *Bridge) ActiveBinding() string {
	return b.probe.Active()
}

// Pending returns the number of outstanding requests.
func (b *Bridge) Pending() int {
	return b.correlator.Pending()
}

// Go sends a request without waiting for the response. A timeout of zero or
// less uses the configured default.
func (b *Bridge) Go(
	typ catalog.MessageType,
	id string,
	payload any,
	timeout time.Duration,
) (*protocol.Call, error) {
	return b.correlator.Go(typ, id, payload, b.effectiveTimeout(timeout))
}

// SendRequest sends a request and waits for the response payload. A timeout
// of zero or less uses the configured default.
func (b *Bridge) SendRequest(
	ctx context.Context,
	typ catalog.MessageType,
	id string,
	payload any,
	timeout time.Duration,
) (json.RawMessage, error) {
	return b.correlator.SendRequest(ctx, typ, id, payload, b.effectiveTimeout(timeout))
}

// OnRequest registers handler for requests of type typ initiated by the
// native app.
func (b *Bridge) OnRequest(typ catalog.MessageType, handler protocol.RequestHandler) protocol.Unregister {
	return b.handlers.OnRequest(typ, handler)
}

// ValidatePayloads reports whether typed responses are checked against the
// catalog schema.
func (b *Bridge) ValidatePayloads() bool {
	return b.options.ValidatePayloads
}

// Environment returns the host environment the bridge probes.
func (b *Bridge) Environment() *host.Environment {
	return b.env
}

func (b *Bridge) effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}

	return b.timeout
}

func (b *Bridge) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

// Close cancels pending requests with ErrBridgeClosed, stops running
// handlers and closes the transport.
//
// After Close(), the bridge cannot be reused - create a new one with New().
// This method is safe to call multiple times.
func (b *Bridge) Close() error {
	var closeErr error

	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		b.log.Info("Closing bridge")

		b.correlator.Close()
		b.handlers.Close()

		if transport := b.options.Transport; transport != nil {
			closeErr = transport.Close()
		}

		if b.cancel != nil {
			b.cancel()
		}

		// Wait for errgroup goroutines to complete
		if b.eg != nil {
			if err := b.eg.Wait(); err != nil && closeErr == nil {
				closeErr = err
			}
		}

		b.log.Info("Bridge closed")
	})

	return closeErr
}
