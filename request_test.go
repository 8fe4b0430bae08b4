package webviewbridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	webviewbridge "github.com/wagiedev/webview-bridge-go"
)

func TestSend_DecodesPayload(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, replyWith(`{"result":{"theme":"dark","beta":"on"}}`))

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	cfg, err := webviewbridge.Send[webviewbridge.RemoteConfigPayload](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.GetRemoteConfig}, time.Second)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"theme": "dark", "beta": "on"}, cfg.Result)
}

func TestSend_NoPayload(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, func(req wireMessage) (wireMessage, bool) {
		return wireMessage{Type: req.Type, ID: req.ID}, true
	})

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	result, err := webviewbridge.Send[struct{}](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.SetTitle, Payload: map[string]string{"title": "Inbox"}}, time.Second)
	require.NoError(t, err)
	require.Equal(t, struct{}{}, result)
}

func TestSend_ContactsList(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, replyWith(`[{"phoneNumber":"+34600000000","firstName":"Ana"},{"phoneNumber":"+34600000001"}]`))

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	contacts, err := webviewbridge.Send[webviewbridge.ContactsPayload](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.FetchContactsData}, time.Second)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Equal(t, "+34600000000", contacts[0].PhoneNumber)
}

func TestSend_PropagatesRequestError(t *testing.T) {
	b := newStartedBridge(t)

	_, err := webviewbridge.Send[webviewbridge.IMEIPayload](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
	require.ErrorIs(t, err, webviewbridge.ErrBridgeUnavailable)
}

func TestSend_DecodeError(t *testing.T) {
	env := webviewbridge.NewEnvironment()
	newMockNativeApp(t, env, replyWith(`{"imei":5}`))

	b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

	_, err := webviewbridge.Send[webviewbridge.IMEIPayload](context.Background(), b,
		webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode IMEI response")
}

func TestSend_PayloadValidation(t *testing.T) {
	t.Run("disabled accepts incomplete payload", func(t *testing.T) {
		env := webviewbridge.NewEnvironment()
		newMockNativeApp(t, env, replyWith(`{}`))

		b := newStartedBridge(t, webviewbridge.WithEnvironment(env))

		imei, err := webviewbridge.Send[webviewbridge.IMEIPayload](context.Background(), b,
			webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
		require.NoError(t, err)
		require.Empty(t, imei.IMEI)
	})

	t.Run("enabled rejects incomplete payload", func(t *testing.T) {
		env := webviewbridge.NewEnvironment()
		newMockNativeApp(t, env, replyWith(`{}`))

		b := newStartedBridge(t,
			webviewbridge.WithEnvironment(env),
			webviewbridge.WithPayloadValidation(),
		)

		_, err := webviewbridge.Send[webviewbridge.IMEIPayload](context.Background(), b,
			webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
		require.Error(t, err)
		require.Contains(t, err.Error(), "validate IMEI response")
	})

	t.Run("enabled accepts valid payload", func(t *testing.T) {
		env := webviewbridge.NewEnvironment()
		newMockNativeApp(t, env, replyWith(`{"imei":"490154203237518"}`))

		b := newStartedBridge(t,
			webviewbridge.WithEnvironment(env),
			webviewbridge.WithPayloadValidation(),
		)

		imei, err := webviewbridge.Send[webviewbridge.IMEIPayload](context.Background(), b,
			webviewbridge.Request{Type: webviewbridge.IMEI}, time.Second)
		require.NoError(t, err)
		require.Equal(t, "490154203237518", imei.IMEI)
	})
}
