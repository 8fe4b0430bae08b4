// Package envelope encodes and decodes the {type, id, payload} messages
// exchanged with the native app.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/errors"
)

// Envelope is a message exchanged with the native app.
//
// Wire format:
//
//	{
//	  "type": "IMEI",
//	  "id": "01J9Z6...",
//	  "payload": {"imei": "123"}
//	}
//
// Payload is omitted from the wire when absent.
type Envelope struct {
	Type    catalog.MessageType `json:"type"`
	ID      string              `json:"id"`
	Payload json.RawMessage     `json:"payload,omitempty"`
}

// HasPayload reports whether the envelope carries a payload.
func (e Envelope) HasPayload() bool {
	return len(e.Payload) != 0
}

// DecodePayload unmarshals the payload into v.
// An absent payload leaves v untouched.
func (e Envelope) DecodePayload(v any) error {
	if !e.HasPayload() {
		return nil
	}

	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}

	return nil
}

// Encode serializes an envelope to its transport string.
//
// A nil payload is omitted; a json.RawMessage payload is passed through.
func Encode(typ catalog.MessageType, id string, payload any) (string, error) {
	raw, err := marshalPayload(payload)
	if err != nil {
		return "", &errors.MessageEncodeError{Type: string(typ), Err: err}
	}

	data, err := json.Marshal(Envelope{Type: typ, ID: id, Payload: raw})
	if err != nil {
		return "", &errors.MessageEncodeError{Type: string(typ), Err: err}
	}

	return string(data), nil
}

// marshalPayload converts payload to raw JSON, mapping JSON null to absent.
func marshalPayload(payload any) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}

	var (
		raw json.RawMessage
		err error
	)

	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	case []byte:
		// Byte slices are treated as pre-encoded JSON, not base64 data.
		raw = json.RawMessage(p)
	default:
		raw, err = json.Marshal(p)
		if err != nil {
			return nil, err
		}
	}

	raw = normalize(raw)
	if raw != nil && !json.Valid(raw) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}

	return raw, nil
}

// wireEnvelope is the decoding view of an envelope. Pointer fields detect
// missing keys and wrong JSON types.
type wireEnvelope struct {
	Type    *string         `json:"type"`
	ID      *string         `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses a transport string into an Envelope.
//
// Returns *errors.MalformedEnvelopeError when raw is not a JSON object with a
// non-empty string type and, when present, a string id.
func Decode(raw string) (Envelope, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Envelope{}, malformed(raw, fmt.Errorf("expected a JSON object"))
	}

	var wire wireEnvelope
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Envelope{}, malformed(raw, err)
	}

	if wire.Type == nil || *wire.Type == "" {
		return Envelope{}, malformed(raw, fmt.Errorf("missing or invalid 'type' field"))
	}

	env := Envelope{
		Type:    catalog.MessageType(*wire.Type),
		Payload: normalize(wire.Payload),
	}

	if wire.ID != nil {
		env.ID = *wire.ID
	}

	return env, nil
}

// normalize maps an empty or literal null payload to absent.
func normalize(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	return trimmed
}

func malformed(raw string, err error) error {
	return &errors.MalformedEnvelopeError{RawData: raw, Err: err}
}
