package webviewbridge

import "github.com/wagiedev/webview-bridge-go/internal/errors"

// Re-export error types from internal package

// StatusError is a bridge-generated failure with a code and reason, such as
// BridgeUnavailable (500) or a request timeout (408).
type StatusError = errors.StatusError

// ProtocolMismatchError indicates the native app answered a request with an
// unexpected message type.
type ProtocolMismatchError = errors.ProtocolMismatchError

// RemoteError is the payload of an ERROR envelope sent by the native app.
type RemoteError = errors.RemoteError

// MalformedEnvelopeError indicates an inbound message could not be decoded.
type MalformedEnvelopeError = errors.MalformedEnvelopeError

// MessageEncodeError indicates an outbound payload could not be serialized.
type MessageEncodeError = errors.MessageEncodeError

// BridgeError is the base interface for all bridge errors.
type BridgeError = errors.BridgeError

// CodedError is implemented by errors carrying a {code, reason} pair.
type CodedError = errors.CodedError

// Status codes used by bridge-generated failures.
const (
	// CodeRequestTimeout is the code of a request that timed out.
	CodeRequestTimeout = errors.CodeRequestTimeout

	// CodeInternal is the code of bridge-internal failures.
	CodeInternal = errors.CodeInternal
)

// Re-export sentinel errors from internal package.
var (
	// ErrBridgeUnavailable indicates no host postMessage binding was present.
	ErrBridgeUnavailable = errors.ErrBridgeUnavailable

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrProtocolMismatch indicates a response of an unexpected type.
	ErrProtocolMismatch = errors.ErrProtocolMismatch

	// ErrMalformedEnvelope indicates an inbound message could not be decoded.
	ErrMalformedEnvelope = errors.ErrMalformedEnvelope

	// ErrRemote indicates the native app answered with an ERROR envelope.
	ErrRemote = errors.ErrRemote

	// ErrBridgeClosed indicates the bridge has been closed and cannot be reused.
	ErrBridgeClosed = errors.ErrBridgeClosed

	// ErrBridgeAlreadyStarted indicates Start was called twice.
	ErrBridgeAlreadyStarted = errors.ErrBridgeAlreadyStarted

	// ErrEndpointNotInstalled indicates a message was posted before the
	// inbound entry point was installed.
	ErrEndpointNotInstalled = errors.ErrEndpointNotInstalled

	// ErrTransportClosed indicates a stream transport was used after Close.
	ErrTransportClosed = errors.ErrTransportClosed
)
