// Package bridge composes the protocol components into a single bridge.
//
// A Bridge owns one listener registry shared by the inbound dispatcher, the
// request correlator and the native request handlers, plus the probe that
// finds the host binding for outbound messages. When a stream transport is
// configured, the bridge serves it in the background between Start and
// Close.
package bridge
