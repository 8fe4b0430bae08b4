// Package stdio carries bridge envelopes over a pair of byte streams.
//
// Each envelope travels as one line of JSON. A Pipe is a host.Binding for
// outbound traffic and feeds inbound lines to a host.InboundFunc, which lets
// a native app that lives in another process (or a test harness) talk to the
// bridge through stdin and stdout.
package stdio
