package errors

import (
	"errors"
	"fmt"
)

// Status codes carried by bridge-generated failures.
const (
	// CodeRequestTimeout is the code reported when no response arrived in time.
	CodeRequestTimeout = 408

	// CodeInternal is the code reported for local bridge failures.
	CodeInternal = 500
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// CodedError is implemented by failures that carry a {code, reason} pair,
// matching the shape of ERROR envelopes posted by the native app.
type CodedError interface {
	BridgeError
	StatusCode() int
	StatusReason() string
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ CodedError  = (*StatusError)(nil)
	_ CodedError  = (*ProtocolMismatchError)(nil)
	_ CodedError  = (*RemoteError)(nil)
	_ BridgeError = (*MalformedEnvelopeError)(nil)
	_ BridgeError = (*MessageEncodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrBridgeUnavailable indicates no host postMessage binding was present.
	ErrBridgeUnavailable = errors.New("bridge unavailable")

	// ErrRequestTimeout indicates a request timed out before any response arrived.
	ErrRequestTimeout = errors.New("request timeout")

	// ErrProtocolMismatch indicates a response carried the right id but the wrong type.
	ErrProtocolMismatch = errors.New("protocol mismatch")

	// ErrMalformedEnvelope indicates an inbound message could not be decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrRemote indicates the native app answered with an ERROR envelope.
	ErrRemote = errors.New("remote error")

	// ErrBridgeClosed indicates the bridge was closed while a request was pending.
	ErrBridgeClosed = errors.New("bridge closed")

	// ErrBridgeAlreadyStarted indicates Start was called on a running bridge.
	ErrBridgeAlreadyStarted = errors.New("bridge already started")

	// ErrEndpointNotInstalled indicates the host posted a message before any
	// inbound entry point was installed.
	ErrEndpointNotInstalled = errors.New("inbound endpoint not installed")

	// ErrTransportClosed indicates a stream transport was used after Close.
	ErrTransportClosed = errors.New("transport closed")

	// ErrTransportBusy indicates Serve was called on a transport that is already serving.
	ErrTransportBusy = errors.New("transport already serving")
)

// StatusError is a bridge-generated failure with a code and reason.
// Err holds the sentinel it classifies as.
type StatusError struct {
	Code   int
	Reason string
	Err    error
}

// NewUnavailableError returns the failure reported when no host binding exists.
func NewUnavailableError() *StatusError {
	return &StatusError{
		Code:   CodeInternal,
		Reason: "WebView postMessage not available",
		Err:    ErrBridgeUnavailable,
	}
}

// NewTimeoutError returns the failure reported when a request times out.
func NewTimeoutError() *StatusError {
	return &StatusError{
		Code:   CodeRequestTimeout,
		Reason: "request timeout",
		Err:    ErrRequestTimeout,
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Reason, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode implements CodedError.
func (e *StatusError) StatusCode() int { return e.Code }

// StatusReason implements CodedError.
func (e *StatusError) StatusReason() string { return e.Reason }

// IsBridgeError implements BridgeError.
func (e *StatusError) IsBridgeError() bool { return true }

// ProtocolMismatchError indicates a correlated response had an unexpected type.
type ProtocolMismatchError struct {
	Got  string
	Want string
}

func (e *ProtocolMismatchError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.StatusReason(), CodeInternal)
}

func (e *ProtocolMismatchError) Unwrap() error {
	return ErrProtocolMismatch
}

// StatusCode implements CodedError.
func (e *ProtocolMismatchError) StatusCode() int { return CodeInternal }

// StatusReason implements CodedError.
func (e *ProtocolMismatchError) StatusReason() string {
	return fmt.Sprintf("bad type: %s. Expecting %s", e.Got, e.Want)
}

// IsBridgeError implements BridgeError.
func (e *ProtocolMismatchError) IsBridgeError() bool { return true }

// RemoteError is the {code, reason} payload of an ERROR envelope, propagated
// verbatim. Payload keeps the raw JSON when it did not match that shape.
type RemoteError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Payload []byte `json:"-"`
}

func (e *RemoteError) Error() string {
	if e.Code == 0 && e.Reason == "" && len(e.Payload) != 0 {
		return fmt.Sprintf("native app error: %s", e.Payload)
	}

	return fmt.Sprintf("native app error %d: %s", e.Code, e.Reason)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemote
}

// StatusCode implements CodedError.
func (e *RemoteError) StatusCode() int { return e.Code }

// StatusReason implements CodedError.
func (e *RemoteError) StatusReason() string { return e.Reason }

// IsBridgeError implements BridgeError.
func (e *RemoteError) IsBridgeError() bool { return true }

// MalformedEnvelopeError indicates an inbound string failed to decode.
// This error preserves the original raw data that failed to parse.
type MalformedEnvelopeError struct {
	RawData string
	Err     error
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("problem parsing webview message: %s: %v", e.RawData, e.Err)
}

// Unwrap exposes both ErrMalformedEnvelope and the underlying decode error.
func (e *MalformedEnvelopeError) Unwrap() []error {
	return []error{ErrMalformedEnvelope, e.Err}
}

// IsBridgeError implements BridgeError.
func (e *MalformedEnvelopeError) IsBridgeError() bool { return true }

// MessageEncodeError indicates an outbound envelope could not be serialized.
type MessageEncodeError struct {
	Type string
	Err  error
}

func (e *MessageEncodeError) Error() string {
	return fmt.Sprintf("failed to encode %s message: %v", e.Type, e.Err)
}

func (e *MessageEncodeError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *MessageEncodeError) IsBridgeError() bool { return true }
