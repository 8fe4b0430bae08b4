package protocol

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/listener"
)

// mockNativeApp records every message posted to the Android binding.
type mockNativeApp struct {
	mu       sync.Mutex
	messages []string
	posted   chan string
}

func newMockNativeApp() *mockNativeApp {
	return &mockNativeApp{
		messages: make([]string, 0, 10),
		posted:   make(chan string, 1024),
	}
}

func (m *mockNativeApp) postMessage(raw string) {
	m.mu.Lock()
	m.messages = append(m.messages, raw)
	m.mu.Unlock()

	m.posted <- raw
}

func (m *mockNativeApp) getMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.messages))
	copy(result, m.messages)

	return result
}

// next waits for the next posted message and decodes it.
func (m *mockNativeApp) next(t *testing.T) envelope.Envelope {
	t.Helper()

	select {
	case raw := <-m.posted:
		env, err := envelope.Decode(raw)
		require.NoError(t, err)

		return env
	case <-time.After(2 * time.Second):
		t.Fatal("no message posted in time")

		return envelope.Envelope{}
	}
}

// fixture wires the protocol components the way the bridge does.
type fixture struct {
	env        *host.Environment
	registry   *listener.Registry
	dispatcher *Dispatcher
	correlator *Correlator
	handlers   *Handlers
	native     *mockNativeApp
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := slog.Default()
	env := host.NewEnvironment()
	registry := listener.NewRegistry(log)
	probe := env.Probe()
	native := newMockNativeApp()

	env.Android.Install(native.postMessage)

	f := &fixture{
		env:        env,
		registry:   registry,
		dispatcher: NewDispatcher(log, registry),
		correlator: NewCorrelator(log, registry, probe, nil),
		handlers:   NewHandlers(log, registry, probe),
		native:     native,
	}

	t.Cleanup(func() {
		f.correlator.Close()
		f.handlers.Close()
	})

	return f
}

// reply posts an envelope from the native app into the dispatcher.
func (f *fixture) reply(t *testing.T, typ catalog.MessageType, id string, payload any) {
	t.Helper()

	raw, err := envelope.Encode(typ, id, payload)
	require.NoError(t, err)
	require.NoError(t, f.dispatcher.Dispatch(raw))
}

func decodeJSON(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()

	var v map[string]any
	require.NoError(t, json.Unmarshal(raw, &v))

	return v
}
