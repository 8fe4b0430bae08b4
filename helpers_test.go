package webviewbridge_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	webviewbridge "github.com/wagiedev/webview-bridge-go"
)

// wireMessage is a message as posted on the wire.
type wireMessage struct {
	Type    webviewbridge.MessageType `json:"type"`
	ID      string                    `json:"id"`
	Payload json.RawMessage           `json:"payload,omitempty"`
}

// responder decides how the native app answers a request. Returning false
// leaves the request unanswered.
type responder func(req wireMessage) (wireMessage, bool)

// mockNativeApp plays the native side of the Android binding.
type mockNativeApp struct {
	t   *testing.T
	env *webviewbridge.Environment

	mu       sync.Mutex
	received []wireMessage
	respond  responder
}

func newMockNativeApp(t *testing.T, env *webviewbridge.Environment, respond responder) *mockNativeApp {
	t.Helper()

	m := &mockNativeApp{t: t, env: env, respond: respond}
	env.Android.Install(m.postMessage)

	return m
}

func (m *mockNativeApp) postMessage(raw string) {
	var msg wireMessage
	if !assert.NoError(m.t, json.Unmarshal([]byte(raw), &msg)) {
		return
	}

	m.mu.Lock()
	m.received = append(m.received, msg)
	respond := m.respond
	m.mu.Unlock()

	if respond == nil {
		return
	}

	reply, ok := respond(msg)
	if !ok {
		return
	}

	data, err := json.Marshal(reply)
	if !assert.NoError(m.t, err) {
		return
	}

	go func() {
		assert.NoError(m.t, m.env.Endpoint.PostMessage(string(data)))
	}()
}

func (m *mockNativeApp) messages() []wireMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]wireMessage(nil), m.received...)
}

// replyWith answers every request with payload under the request's type.
func replyWith(payload string) responder {
	return func(req wireMessage) (wireMessage, bool) {
		return wireMessage{Type: req.Type, ID: req.ID, Payload: json.RawMessage(payload)}, true
	}
}
