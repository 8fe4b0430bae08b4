package host

import (
	"sync"
	"sync/atomic"

	"github.com/wagiedev/webview-bridge-go/internal/errors"
)

// Binding names exposed by native apps.
const (
	AndroidBindingName = "tuentiWebView.postMessage"
	WebKitBindingName  = "webkit.messageHandlers.tuentiWebView.postMessage"
	EndpointName       = "__tuenti_webview_bridge"
)

// SendFunc posts a raw message to the native app. It does not report errors.
type SendFunc func(raw string)

// InboundFunc receives a raw message posted by the native app.
type InboundFunc func(raw string) error

// Binding is one way of reaching the native app.
type Binding interface {
	// Name identifies the binding in logs.
	Name() string

	// Lookup returns the send function, or nil when the binding is absent.
	Lookup() SendFunc
}

// Slot is a Binding whose function is installed and cleared at runtime.
type Slot struct {
	name string
	fn   atomic.Pointer[SendFunc]
}

// Compile-time verification that Slot implements Binding.
var _ Binding = (*Slot)(nil)

// NewSlot creates an empty slot.
func NewSlot(name string) *Slot {
	return &Slot{name: name}
}

// Name implements Binding.
func (s *Slot) Name() string {
	return s.name
}

// Lookup implements Binding.
func (s *Slot) Lookup() SendFunc {
	if fn := s.fn.Load(); fn != nil {
		return *fn
	}

	return nil
}

// Install sets the slot's send function. Installing nil clears it.
func (s *Slot) Install(fn SendFunc) {
	if fn == nil {
		s.fn.Store(nil)

		return
	}

	s.fn.Store(&fn)
}

// Clear removes the slot's send function.
func (s *Slot) Clear() {
	s.fn.Store(nil)
}

// Probe resolves the first present binding, in order.
type Probe struct {
	bindings []Binding
}

// NewProbe creates a probe over bindings. Nil bindings are skipped.
func NewProbe(bindings ...Binding) *Probe {
	kept := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if b != nil {
			kept = append(kept, b)
		}
	}

	return &Probe{bindings: kept}
}

// Send returns the send function of the first present binding, or nil.
func (p *Probe) Send() SendFunc {
	_, fn := p.first()

	return fn
}

// IsAvailable reports whether any binding is present.
func (p *Probe) IsAvailable() bool {
	_, fn := p.first()

	return fn != nil
}

// Active returns the name of the binding Send would use, or "".
func (p *Probe) Active() string {
	b, _ := p.first()
	if b == nil {
		return ""
	}

	return b.Name()
}

func (p *Probe) first() (Binding, SendFunc) {
	for _, b := range p.bindings {
		if fn := b.Lookup(); fn != nil {
			return b, fn
		}
	}

	return nil, nil
}

// Endpoint is the inbound entry point the native app calls with raw messages.
// It holds at most one installed function for its whole lifetime.
type Endpoint struct {
	mu sync.RWMutex
	fn InboundFunc
}

// Install sets fn as the entry point unless one is already installed.
// Returns true if fn was installed.
func (e *Endpoint) Install(fn InboundFunc) bool {
	if fn == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fn != nil {
		return false
	}

	e.fn = fn

	return true
}

// Installed reports whether an entry point has been installed.
func (e *Endpoint) Installed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.fn != nil
}

// PostMessage delivers raw to the installed entry point.
func (e *Endpoint) PostMessage(raw string) error {
	e.mu.RLock()
	fn := e.fn
	e.mu.RUnlock()

	if fn == nil {
		return errors.ErrEndpointNotInstalled
	}

	return fn(raw)
}

// Environment groups the bindings a page can see: the two outbound slots in
// probe order and the inbound endpoint.
type Environment struct {
	Android  *Slot
	WebKit   *Slot
	Endpoint *Endpoint
}

// NewEnvironment creates an environment with no bindings installed.
func NewEnvironment() *Environment {
	return &Environment{
		Android:  NewSlot(AndroidBindingName),
		WebKit:   NewSlot(WebKitBindingName),
		Endpoint: &Endpoint{},
	}
}

// Probe returns a probe over the environment's bindings followed by extra.
// Android is checked before WebKit.
func (e *Environment) Probe(extra ...Binding) *Probe {
	bindings := make([]Binding, 0, 2+len(extra))
	bindings = append(bindings, e.Android, e.WebKit)
	bindings = append(bindings, extra...)

	return NewProbe(bindings...)
}
