// Package protocol correlates messages exchanged between the web layer and
// the native app.
//
// Three components share a single listener registry:
//
//   - Dispatcher decodes raw inbound messages and broadcasts them to every
//     registered listener.
//   - Correlator posts web-initiated requests and settles each Call when the
//     matching response, an error envelope, or the timeout arrives.
//   - Handlers answers native-initiated requests by running local handlers
//     and posting their results under the original type and id.
//
// Example usage:
//
//	env := host.NewEnvironment()
//	registry := listener.NewRegistry(log)
//	dispatcher := protocol.NewDispatcher(log, registry)
//	dispatcher.Install(env.Endpoint)
//
//	correlator := protocol.NewCorrelator(log, registry, env.Probe(), nil)
//	payload, err := correlator.SendRequest(ctx, catalog.IMEI, "", nil, 5*time.Second)
package protocol
