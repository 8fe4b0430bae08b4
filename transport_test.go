package webviewbridge_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	webviewbridge "github.com/wagiedev/webview-bridge-go"
)

func TestPipeTransport(t *testing.T) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	t.Cleanup(func() {
		_ = inW.Close()
		_ = outW.Close()
	})

	b := newStartedBridge(t, webviewbridge.WithTransport(webviewbridge.NewPipe(nil, inR, outW)))

	require.True(t, b.IsAvailable())

	// The native process answers RENEW_SESSION with a fresh token.
	go func() {
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			var msg wireMessage
			if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
				return
			}

			if msg.Type != webviewbridge.RenewSession {
				continue
			}

			reply, _ := json.Marshal(wireMessage{Type: msg.Type, ID: msg.ID, Payload: json.RawMessage(`{"accessToken":"fresh"}`)})
			if _, err := inW.Write(append(reply, '\n')); err != nil {
				return
			}
		}
	}()

	session, err := webviewbridge.Send[webviewbridge.RenewSessionPayload](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.RenewSession, Payload: map[string]string{"oldAccessToken": "stale"}},
		2*time.Second)
	require.NoError(t, err)
	require.Equal(t, "fresh", session.AccessToken)
}
