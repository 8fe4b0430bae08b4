package webviewbridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoteError(t *testing.T) {
	err := &RemoteError{Code: 403, Reason: "forbidden"}

	require.Equal(t, "native app error 403: forbidden", err.Error())
	require.ErrorIs(t, err, ErrRemote)
	require.Equal(t, 403, err.StatusCode())
	require.Equal(t, "forbidden", err.StatusReason())
}

func TestProtocolMismatchError(t *testing.T) {
	err := &ProtocolMismatchError{Got: string(SimICC), Want: string(IMSI)}

	require.ErrorIs(t, err, ErrProtocolMismatch)
	require.Equal(t, CodeInternal, err.StatusCode())
	require.Equal(t, "bad type: SIM_ICC. Expecting IMSI", err.StatusReason())
}

func TestMalformedEnvelopeError(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &MalformedEnvelopeError{RawData: "{", Err: inner}

	require.ErrorIs(t, err, ErrMalformedEnvelope)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "{")
}

func TestBridgeError_Interface(t *testing.T) {
	errs := []error{
		&StatusError{Code: 500, Reason: "x", Err: ErrBridgeUnavailable},
		&ProtocolMismatchError{Got: "IMEI", Want: "IMSI"},
		&RemoteError{Code: 1, Reason: "r"},
		&MalformedEnvelopeError{RawData: "", Err: errors.New("bad")},
		&MessageEncodeError{Type: string(Alert), Err: errors.New("bad")},
	}

	for _, err := range errs {
		wrapped := fmt.Errorf("context: %w", err)

		bridgeErr, ok := errors.AsType[BridgeError](wrapped)
		require.True(t, ok, "%T should implement BridgeError", err)
		require.True(t, bridgeErr.IsBridgeError())
	}
}
