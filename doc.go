// Package webviewbridge connects a web page to the native app hosting it.
//
// The native app exposes a single fire-and-forget "post a string" binding.
// On top of it the bridge exchanges JSON envelopes of the form
// {type, id, payload}, pairing each request with the response that carries
// the same id. Requests flow both ways: the page asks the native app for
// data (IMEI, contacts, remote config, ...) and the native app asks the page
// to handle events such as NATIVE_EVENT or SESSION_RENEWED.
//
// # Basic Usage
//
// The host environment holds the outbound bindings and the inbound entry
// point. A native shell installs its binding into one of the slots and calls
// the endpoint with every message it posts back:
//
//	env := webviewbridge.NewEnvironment()
//	env.Android.Install(nativePostMessage)
//
//	b := webviewbridge.New(webviewbridge.WithEnvironment(env))
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	imei, err := webviewbridge.Send[webviewbridge.IMEIPayload](ctx, b,
//	    webviewbridge.Request{Type: webviewbridge.IMEI}, 5*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(imei.IMEI)
//
// Or with WithBridge for automatic lifecycle management:
//
//	err := webviewbridge.WithBridge(ctx, func(b webviewbridge.Bridge) error {
//	    _, err := b.SendRequest(ctx, webviewbridge.Request{Type: webviewbridge.PageLoaded}, 0)
//	    return err
//	},
//	    webviewbridge.WithEnvironment(env),
//	    webviewbridge.WithDefaultTimeout(10*time.Second),
//	)
//
// # Native Requests
//
// Handlers answer requests initiated by the native app. The returned value
// is posted back under the original type and id:
//
//	unregister := webviewbridge.OnNativeEvent(b,
//	    func(ctx context.Context, ev webviewbridge.NativeEventPayload) webviewbridge.NativeEventResponse {
//	        if ev.Event == "tab-reselected" {
//	            scrollToTop()
//	        }
//	        return webviewbridge.NativeEventResponse{}
//	    })
//	defer unregister()
//
// # Stream Transport
//
// A native app running in another process can talk to the bridge over a
// pair of byte streams carrying one JSON envelope per line:
//
//	b := webviewbridge.New(
//	    webviewbridge.WithTransport(webviewbridge.NewPipe(logger, os.Stdin, os.Stdout)),
//	)
//
// # Error Handling
//
// Failures produced by the bridge carry a numeric code and a reason:
//
//	_, err := b.SendRequest(ctx, req, time.Second)
//	if errors.Is(err, webviewbridge.ErrRequestTimeout) {
//	    // code 408
//	}
//	if remote, ok := errors.AsType[*webviewbridge.RemoteError](err); ok {
//	    log.Printf("native app refused: %d %s", remote.Code, remote.Reason)
//	}
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	b := webviewbridge.New(webviewbridge.WithLogger(logger))
package webviewbridge
