// Package host models the capabilities a native app exposes to the page.
//
// The native side provides a fire-and-forget "post a string" function under
// one of two bindings (Android or WebKit), and calls back into the page
// through a single inbound entry point. Bindings can appear or disappear at
// runtime, so the Probe looks them up on every call instead of caching.
//
// Example usage:
//
//	env := host.NewEnvironment()
//	env.Android.Install(func(raw string) { nativeSend(raw) })
//
//	probe := env.Probe()
//	if send := probe.Send(); send != nil {
//	    send(`{"type":"IMEI","id":"abc"}`)
//	}
package host
