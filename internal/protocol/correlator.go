package protocol

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/errors"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
)

// IDGenerator returns a fresh request id.
type IDGenerator func() string

// NewULID generates request ids using ULID.
func NewULID() string {
	return ulid.Make().String()
}

// Correlator sends requests to the native app and pairs each with the
// response carrying the same id.
//
// Each outstanding request registers its own listener on the registry and
// removes it when it settles.
type Correlator struct {
	log      *slog.Logger
	registry *listener.Registry
	probe    *host.Probe
	newID    IDGenerator

	mu      sync.Mutex
	pending map[*Call]struct{}
	closed  bool
}

// NewCorrelator creates a correlator. A nil newID uses NewULID.
func NewCorrelator(
	log *slog.Logger,
	registry *listener.Registry,
	probe *host.Probe,
	newID IDGenerator,
) *Correlator {
	if newID == nil {
		newID = NewULID
	}

	return &Correlator{
		log:      log.With("component", "correlator"),
		registry: registry,
		probe:    probe,
		newID:    newID,
		pending:  make(map[*Call]struct{}, 10),
	}
}

// Go sends a request and returns the pending Call without waiting.
//
// An empty id is replaced with a fresh one. A timeout of zero or less waits
// indefinitely. When no host binding is available Go fails immediately with
// a BridgeUnavailable StatusError: no listener is registered and nothing is
// posted.
//
// The message is posted only after the call's listener and timer are set up,
// so a response can never arrive before the call is ready to observe it.
// The post runs synchronously on the caller's goroutine: a SendFunc may
// re-enter the inbound endpoint's PostMessage with the response before Go
// returns, and a SendFunc that blocks holds up Go.
func (c *Correlator) Go(
	typ catalog.MessageType,
	id string,
	payload any,
	timeout time.Duration,
) (*Call, error) {
	if id == "" {
		id = c.newID()
	}

	raw, err := envelope.Encode(typ, id, payload)
	if err != nil {
		c.log.Error("Failed to encode request", "request_id", id, "type", typ, "error", err)

		return nil, err
	}

	send := c.probe.Send()
	if send == nil {
		c.log.Warn("No host binding available", "request_id", id, "type", typ)

		return nil, errors.NewUnavailableError()
	}

	call := newCall(c.log, typ, id)
	call.release = func() {
		c.registry.Remove(call.listener)
		c.forget(call)
	}

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return nil, errors.ErrBridgeClosed
	}

	// Registering under c.mu keeps Close from settling a call whose listener
	// has not been added yet.
	c.pending[call] = struct{}{}
	c.registry.Add(call.listener)
	c.mu.Unlock()

	call.arm(timeout)

	c.log.Debug("Sending request", "request_id", id, "type", typ, "binding", c.probe.Active())

	send(raw)

	return call, nil
}

// SendRequest sends a request and waits for its response payload.
//
// Returns a *errors.RemoteError when the native app answers with ERROR,
// a *errors.ProtocolMismatchError when it answers with another type, and a
// StatusError wrapping ErrRequestTimeout when timeout elapses first.
func (c *Correlator) SendRequest(
	ctx context.Context,
	typ catalog.MessageType,
	id string,
	payload any,
	timeout time.Duration,
) (json.RawMessage, error) {
	call, err := c.Go(typ, id, payload, timeout)
	if err != nil {
		return nil, err
	}

	return call.Wait(ctx)
}

// Pending returns the number of outstanding calls.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

// Close cancels every outstanding call with ErrBridgeClosed and rejects new
// requests. It's safe to call Close multiple times.
func (c *Correlator) Close() {
	c.mu.Lock()
	c.closed = true

	calls := make([]*Call, 0, len(c.pending))
	for call := range c.pending {
		calls = append(calls, call)
	}
	c.mu.Unlock()

	for _, call := range calls {
		call.settle(StateCancelled, nil, errors.ErrBridgeClosed)
	}

	if len(calls) > 0 {
		c.log.Debug("Cancelled pending requests", "count", len(calls))
	}
}

func (c *Correlator) forget(call *Call) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, call)
}
