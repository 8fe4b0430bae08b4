package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
)

// RequestHandler handles a request initiated by the native app.
//
// The returned value becomes the payload of the response envelope; nil sends
// a response without payload. Returning an error sends no response.
type RequestHandler func(ctx context.Context, payload json.RawMessage) (any, error)

// Unregister removes a handler. Calling it more than once is a no-op.
type Unregister func()

// Handlers runs local handlers for requests initiated by the native app and
// posts their results back under the original type and id.
type Handlers struct {
	log      *slog.Logger
	registry *listener.Registry
	probe    *host.Probe

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewHandlers creates a handler set that listens on registry and answers
// through probe.
func NewHandlers(log *slog.Logger, registry *listener.Registry, probe *host.Probe) *Handlers {
	ctx, cancel := context.WithCancel(context.Background())

	return &Handlers{
		log:      log.With("component", "handlers"),
		registry: registry,
		probe:    probe,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnRequest registers handler for inbound envelopes of type typ.
//
// Each matching envelope runs handler on its own goroutine, so a slow handler
// never blocks delivery to other listeners. Unregistering stops future
// deliveries but does not abort a handler that is already running.
func (h *Handlers) OnRequest(typ catalog.MessageType, handler RequestHandler) Unregister {
	l := listener.New(func(env envelope.Envelope) {
		if env.Type != typ {
			return
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		if h.closed {
			h.log.Debug("Dropping request after close", "request_id", env.ID, "type", env.Type)

			return
		}

		h.wg.Go(func() {
			h.run(env, handler)
		})
	})

	h.registry.Add(l)
	h.log.Debug("Registered request handler", "type", typ)

	var once sync.Once

	return func() {
		once.Do(func() {
			h.registry.Remove(l)
			h.log.Debug("Unregistered request handler", "type", typ)
		})
	}
}

// run invokes handler and posts its result.
func (h *Handlers) run(env envelope.Envelope, handler RequestHandler) {
	h.log.Debug("Handling native request", "request_id", env.ID, "type", env.Type)

	result, err := h.invoke(env, handler)
	if err != nil {
		h.log.Warn("Handler returned error", "request_id", env.ID, "type", env.Type, "error", err)

		return
	}

	send := h.probe.Send()
	if send == nil {
		h.log.Debug("No host binding available, dropping response", "request_id", env.ID, "type", env.Type)

		return
	}

	raw, err := envelope.Encode(env.Type, env.ID, result)
	if err != nil {
		h.log.Error("Failed to encode response", "request_id", env.ID, "type", env.Type, "error", err)

		return
	}

	send(raw)
}

// invoke calls handler, converting a panic into an error.
func (h *Handlers) invoke(env envelope.Envelope, handler RequestHandler) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()

	return handler(h.ctx, env.Payload)
}

// Wait blocks until every running handler has finished.
func (h *Handlers) Wait() {
	h.wg.Wait()
}

// Close cancels the context passed to running handlers, waits for them to
// return, and ignores requests that arrive afterwards.
// It's safe to call Close multiple times.
func (h *Handlers) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()
}
