package webviewbridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	webviewbridge "github.com/wagiedev/webview-bridge-go"
)

func newStartedBridge(t *testing.T, opts ...webviewbridge.Option) webviewbridge.Bridge {
	t.Helper()

	b := webviewbridge.New(opts...)
	require.NoError(t, b.Start(context.Background()))

	t.Cleanup(func() {
		require.NoError(t, b.Close())
	})

	return b
}

func TestBridge_SendRequest(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	native := newMockNativeApp(t, env, replyWith(`{"imei":"490154203237518"}`))

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	payload, err := b.SendRequest(context.Background(), webviewbridge.Request{
		Type: webviewbridge.IMEI,
		ID:   "abc",
	}, time.Second)
	require.NoError(t, err)
	require.JSONEq(t, `{"imei":"490154203237518"}`, string(payload))

	received := native.messages()
	require.Len(t, received, 1)
	require.Equal(t, webviewbridge.IMEI, received[0].Type)
	require.Equal(t, "abc", received[0].ID)
	require.Empty(t, received[0].Payload)
}

func TestBridge_SendRequest_WithPayload(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	native := newMockNativeApp(t, env, replyWith(`{"result":true}`))

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{
		Type:    webviewbridge.Confirm,
		Payload: map[string]string{"message": "Delete?", "acceptText": "Yes", "cancelText": "No"},
	}, time.Second)
	require.NoError(t, err)

	received := native.messages()
	require.Len(t, received, 1)
	require.NotEmpty(t, received[0].ID)
	require.JSONEq(t, `{"message":"Delete?","acceptText":"Yes","cancelText":"No"}`, string(received[0].Payload))
}

func TestBridge_SendRequest_RemoteError(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, func(req wireMessage) (wireMessage, bool) {
		return wireMessage{
			Type:    webviewbridge.ErrorType,
			ID:      req.ID,
			Payload: json.RawMessage(`{"code":404,"reason":"no contacts"}`),
		}, true
	})

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{Type: webviewbridge.FetchContactsData}, time.Second)
	require.ErrorIs(t, err, webviewbridge.ErrRemote)

	remote, ok := errors.AsType[*webviewbridge.RemoteError](err)
	require.True(t, ok)
	require.Equal(t, 404, remote.Code)
	require.Equal(t, "no contacts", remote.Reason)
}

func TestBridge_SendRequest_ProtocolMismatch(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, func(req wireMessage) (wireMessage, bool) {
		return wireMessage{Type: webviewbridge.IMSI, ID: req.ID}, true
	})

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
	require.ErrorIs(t, err, webviewbridge.ErrProtocolMismatch)

	coded, ok := errors.AsType[webviewbridge.CodedError](err)
	require.True(t, ok)
	require.Equal(t, webviewbridge.CodeInternal, coded.StatusCode())
	require.Equal(t, "bad type: IMSI. Expecting IMEI", coded.StatusReason())
}

func TestBridge_SendRequest_Unavailable(t *testing.T) {
	b := newStartedBridge(t)

	require.False(t, b.IsAvailable())

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
	require.ErrorIs(t, err, webviewbridge.ErrBridgeUnavailable)

	status, ok := errors.AsType[*webviewbridge.StatusError](err)
	require.True(t, ok)
	require.Equal(t, 500, status.Code)
	require.Equal(t, "WebView postMessage not available", status.Reason)
	require.Zero(t, b.Pending())
}

func TestBridge_SendRequest_Timeout(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, nil)

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{Type: webviewbridge.IMEI}, 20*time.Millisecond)
	require.ErrorIs(t, err, webviewbridge.ErrRequestTimeout)

	status, ok := errors.AsType[*webviewbridge.StatusError](err)
	require.True(t, ok)
	require.Equal(t, webviewbridge.CodeRequestTimeout, status.Code)
	require.Equal(t, "request timeout", status.Reason)
}

func TestBridge_SendRequest_DefaultTimeoutFromEnv(t *testing.T) {
	t.Setenv(webviewbridge.RequestTimeoutEnv, "20")

	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, nil)

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := b.SendRequest(context.Background(), webviewbridge.Request{Type: webviewbridge.IMEI}, 0)
	require.ErrorIs(t, err, webviewbridge.ErrRequestTimeout)
}

func TestBridge_SendRequest_ContextCancelled(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, nil)

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := b.SendRequest(ctx, webviewbridge.Request{Type: webviewbridge.IMEI}, 0)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Zero(t, b.Pending())
}

func TestBridge_Go(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, replyWith(`{"availableBytes":10,"totalBytes":20}`))

	b := newStartedBridge(t,
		webviewbridge.WithEnvironment(env),
		webviewbridge.WithIDGenerator(func() string { return "disk-1" }),
	)

	call, err := b.Go(webviewbridge.Request{Type: webviewbridge.GetDiskSpaceInfo}, time.Second)
	require.NoError(t, err)
	require.Equal(t, "disk-1", call.ID)

	payload, err := call.Result()
	require.NoError(t, err)
	require.JSONEq(t, `{"availableBytes":10,"totalBytes":20}`, string(payload))
	require.Equal(t, webviewbridge.StateFulfilled, call.State())
}

func TestBridge_BindingPreference(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	custom := webviewbridge.NewSlot("custom")
	custom.Install(func(string) {})

	b := newStartedBridge(t,
		webviewbridge.WithEnvironment(env),
		webviewbridge.WithBindings(custom),
	)

	require.Equal(t, "custom", b.ActiveBinding())

	env.WebKit.Install(func(string) {})
	require.Equal(t, webviewbridge.WebKitBindingName, b.ActiveBinding())

	env.Android.Install(func(string) {})
	require.Equal(t, webviewbridge.AndroidBindingName, b.ActiveBinding())
}

func TestBridge_PostMessage_Malformed(t *testing.T) {
	b := newStartedBridge(t)

	err := b.PostMessage("{not json")
	require.ErrorIs(t, err, webviewbridge.ErrMalformedEnvelope)

	malformed, ok := errors.AsType[*webviewbridge.MalformedEnvelopeError](err)
	require.True(t, ok)
	require.Equal(t, "{not json", malformed.RawData)
}

func TestBridge_Environment(t *testing.T) {
	b := newStartedBridge(t)

	env := b.Environment()
	require.NotNil(t, env)
	require.True(t, env.Endpoint.Installed())

	require.ErrorIs(t, b.Start(context.Background()), webviewbridge.ErrBridgeAlreadyStarted)
}

func TestBridge_Close(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, nil)

	b := webviewbridge.New(webviewbridge.WithEnvironment(env))
	require.NoError(t, b.Start(context.Background()))

	call, err := b.Go(webviewbridge.Request{Type: webviewbridge.IMEI}, 0)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err = call.Result()
	require.ErrorIs(t, err, webviewbridge.ErrBridgeClosed)
	require.Equal(t, webviewbridge.StateCancelled, call.State())
	require.ErrorIs(t, b.Start(context.Background()), webviewbridge.ErrBridgeClosed)
}
