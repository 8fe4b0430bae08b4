package protocol

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/errors"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
)

// State is the lifecycle state of a Call.
type State int

const (
	// StatePending means no outcome has been recorded yet.
	StatePending State = iota
	// StateFulfilled means a response of the expected type arrived.
	StateFulfilled
	// StateRejected means an ERROR or mismatched response arrived.
	StateRejected
	// StateTimedOut means the timeout fired first.
	StateTimedOut
	// StateCancelled means the caller stopped waiting or the bridge closed.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	case StateTimedOut:
		return "timed_out"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Call is an outstanding request to the native app.
//
// A Call leaves StatePending exactly once. Whichever of response, error
// response, mismatched response, timeout or cancellation comes first decides
// the outcome; everything after it is ignored.
type Call struct {
	ID   string
	Type catalog.MessageType

	log      *slog.Logger
	listener *listener.Listener
	release  func()
	done     chan struct{}

	mu      sync.Mutex
	state   State
	payload json.RawMessage
	err     error
	timer   *time.Timer
}

func newCall(log *slog.Logger, typ catalog.MessageType, id string) *Call {
	c := &Call{
		ID:   id,
		Type: typ,
		log:  log,
		done: make(chan struct{}),
	}
	c.listener = listener.New(c.receive)

	return c
}

// Done returns a channel that is closed once the call settles.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// State returns the current state of the call.
func (c *Call) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Result waits for the call to settle and returns its outcome.
func (c *Call) Result() (json.RawMessage, error) {
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.payload, c.err
}

// Wait waits for the call to settle or ctx to end.
//
// If ctx ends first the call is cancelled with ctx.Err() and its listener is
// removed. A response that won the race is still returned.
func (c *Call) Wait(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-c.done:
	case <-ctx.Done():
		if c.settle(StateCancelled, nil, ctx.Err()) {
			c.log.Debug("Request cancelled", "request_id", c.ID, "type", c.Type)
		}
	}

	return c.Result()
}

// arm starts the timeout timer unless the call already settled.
func (c *Call) arm(timeout time.Duration) {
	if timeout <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePending {
		return
	}

	c.timer = time.AfterFunc(timeout, func() {
		if c.settle(StateTimedOut, nil, errors.NewTimeoutError()) {
			c.log.Warn("Request timed out", "request_id", c.ID, "type", c.Type, "timeout", timeout)
		}
	})
}

// receive is the call's registry listener.
func (c *Call) receive(env envelope.Envelope) {
	if env.ID != c.ID {
		return
	}

	var settled bool

	switch env.Type {
	case c.Type:
		settled = c.settle(StateFulfilled, env.Payload, nil)
	case catalog.Error:
		remoteErr := decodeRemoteError(env.Payload)
		settled = c.settle(StateRejected, nil, remoteErr)

		if settled {
			c.log.Warn("Request returned error",
				"request_id", c.ID,
				"code", remoteErr.Code,
				"reason", remoteErr.Reason,
			)
		}
	default:
		settled = c.settle(StateRejected, nil, &errors.ProtocolMismatchError{
			Got:  string(env.Type),
			Want: string(c.Type),
		})
	}

	if !settled {
		c.log.Debug("Ignoring response for settled request", "request_id", c.ID, "type", env.Type)
	}
}

// settle records the outcome if the call is still pending.
// Returns false when another outcome already won.
func (c *Call) settle(state State, payload json.RawMessage, err error) bool {
	c.mu.Lock()

	if c.state != StatePending {
		c.mu.Unlock()

		return false
	}

	c.state = state
	c.payload = payload
	c.err = err

	if c.timer != nil {
		c.timer.Stop()
	}

	c.mu.Unlock()

	// Deregister before waking waiters so a settled call never leaves a
	// listener behind for them to observe.
	if c.release != nil {
		c.release()
	}

	close(c.done)

	return true
}

// decodeRemoteError reads the {code, reason} payload of an ERROR envelope.
func decodeRemoteError(payload json.RawMessage) *errors.RemoteError {
	remoteErr := &errors.RemoteError{Payload: payload}
	if len(payload) == 0 {
		return remoteErr
	}

	// A payload of another shape is reported through its raw text.
	if err := json.Unmarshal(payload, remoteErr); err != nil {
		remoteErr.Code = 0
		remoteErr.Reason = ""
	}

	return remoteErr
}
