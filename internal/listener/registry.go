// Package listener holds the ordered set of callbacks that receive every
// inbound envelope.
package listener

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/wagiedev/webview-bridge-go/internal/envelope"
)

// Listener is a registered callback. Listeners compare by identity: two
// listeners wrapping the same function are still distinct.
type Listener struct {
	fn func(envelope.Envelope)
}

// New wraps fn in a Listener handle.
func New(fn func(envelope.Envelope)) *Listener {
	return &Listener{fn: fn}
}

// Registry is the ordered collection of active listeners.
//
// The listener slice is copy-on-write: Add and Remove publish a new slice and
// never mutate one a broadcast may be iterating, so both are safe to call from
// inside a listener.
type Registry struct {
	log *slog.Logger

	mu        sync.Mutex
	listeners []*Listener
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log: log.With("component", "listener_registry"),
	}
}

// Add appends l. Listeners are not deduplicated; adding the same handle twice
// delivers to it twice.
func (r *Registry) Add(l *Listener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Listener, len(r.listeners), len(r.listeners)+1)
	copy(next, r.listeners)
	r.listeners = append(next, l)
}

// Remove drops every occurrence of l.
func (r *Registry) Remove(l *Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Listener, 0, len(r.listeners))
	for _, existing := range r.listeners {
		if existing != l {
			next = append(next, existing)
		}
	}

	r.listeners = next
}

// Len returns the number of registered listeners, counting duplicates.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.listeners)
}

// DeliverAll invokes every listener registered when the call starts, in
// registration order, and returns how many were invoked.
//
// A listener that panics is logged and skipped; the rest still run.
func (r *Registry) DeliverAll(env envelope.Envelope) int {
	r.mu.Lock()
	snapshot := r.listeners
	r.mu.Unlock()

	for _, l := range snapshot {
		r.invoke(l, env)
	}

	return len(snapshot)
}

// invoke runs a single listener, isolating panics.
func (r *Registry) invoke(l *Listener, env envelope.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Listener panicked",
				"type", env.Type,
				"id", env.ID,
				"panic", fmt.Sprint(rec),
			)
		}
	}()

	l.fn(env)
}
