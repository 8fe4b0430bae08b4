package catalog

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Direction records which side opens an exchange.
type Direction int

const (
	// FromWeb kinds are requested by the page and answered by the native app.
	FromWeb Direction = iota
	// FromNative kinds are requested by the native app and answered by the page.
	FromNative
)

func (d Direction) String() string {
	if d == FromNative {
		return "from_native"
	}

	return "from_web"
}

// Kind describes one entry of the catalog.
type Kind struct {
	Type      MessageType
	Direction Direction
	// Void kinds carry no payload.
	Void bool

	schema func() (*jsonschema.Schema, error)
}

// kindSchema caches the resolved schema of a kind.
type kindSchema struct {
	once     sync.Once
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	err      error
}

var (
	kinds   = make(map[MessageType]Kind, 32)
	schemas = make(map[MessageType]*kindSchema, 32)
)

func init() {
	register(NativeEvent, FromNative, schemaFor[NativeEventPayload])
	register(SessionRenewed, FromNative, schemaFor[SessionRenewedPayload])

	register(SimICC, FromWeb, schemaFor[SimICCPayload])
	register(IMEI, FromWeb, schemaFor[IMEIPayload])
	register(IMSI, FromWeb, schemaFor[IMSIPayload])
	register(Confirm, FromWeb, schemaFor[ConfirmPayload])
	register(GetContactData, FromWeb, schemaFor[ContactDataPayload])
	register(Error, FromWeb, schemaFor[ErrorPayload])
	register(GetRemoteConfig, FromWeb, schemaFor[RemoteConfigPayload])
	register(Fetch, FromWeb, schemaFor[FetchPayload])
	register(OSPermissionStatus, FromWeb, schemaFor[PermissionStatusPayload])
	register(FetchContactsData, FromWeb, schemaFor[ContactsPayload])
	register(RenewSession, FromWeb, schemaFor[RenewSessionPayload])
	register(GetAppMetadata, FromWeb, schemaFor[AppMetadataPayload])
	register(GetDiskSpaceInfo, FromWeb, schemaFor[DiskSpaceInfoPayload])

	for _, t := range []MessageType{
		AttachToEmail, SetTitle, PageLoaded, Alert, Message,
		CreateCalendarEvent, NavigationBar, Share, StatusReport,
		InternalNavigation, Dismiss, Vibration, SetCustomerHash,
	} {
		register(t, FromWeb, nil)
	}
}

func register(t MessageType, dir Direction, schema func() (*jsonschema.Schema, error)) {
	kinds[t] = Kind{
		Type:      t,
		Direction: dir,
		Void:      schema == nil,
		schema:    schema,
	}
	schemas[t] = &kindSchema{}
}

func schemaFor[T any]() (*jsonschema.Schema, error) {
	return jsonschema.For[T](nil)
}

// Lookup returns the catalog entry for t.
func Lookup(t MessageType) (Kind, bool) {
	k, ok := kinds[t]

	return k, ok
}

// Kinds returns every catalog entry sorted by type name.
func Kinds() []Kind {
	result := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		result = append(result, k)
	}

	slices.SortFunc(result, func(a, b Kind) int {
		return cmp.Compare(a.Type, b.Type)
	})

	return result
}

// Schema returns the JSON Schema of t's payload.
// Void kinds and unknown types return a nil schema and no error.
func Schema(t MessageType) (*jsonschema.Schema, error) {
	ks, err := resolve(t)
	if err != nil || ks == nil {
		return nil, err
	}

	return ks.schema, nil
}

// Validate checks payload against the schema of t.
//
// Unknown types are not validated. Void kinds accept only an absent payload.
func Validate(t MessageType, payload json.RawMessage) error {
	k, ok := kinds[t]
	if !ok {
		return nil
	}

	if k.Void {
		if len(payload) != 0 {
			return fmt.Errorf("%s carries no payload", t)
		}

		return nil
	}

	if len(payload) == 0 {
		return fmt.Errorf("%s requires a payload", t)
	}

	ks, err := resolve(t)
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(payload, &instance); err != nil {
		return fmt.Errorf("%s payload: %w", t, err)
	}

	if err := ks.resolved.Validate(instance); err != nil {
		return fmt.Errorf("%s payload: %w", t, err)
	}

	return nil
}

// resolve builds and caches the schema of t on first use.
func resolve(t MessageType) (*kindSchema, error) {
	k, ok := kinds[t]
	if !ok || k.Void {
		return nil, nil
	}

	ks := schemas[t]
	ks.once.Do(func() {
		ks.schema, ks.err = k.schema()
		if ks.err != nil {
			ks.err = fmt.Errorf("infer %s schema: %w", t, ks.err)

			return
		}

		ks.resolved, ks.err = ks.schema.Resolve(nil)
		if ks.err != nil {
			ks.err = fmt.Errorf("resolve %s schema: %w", t, ks.err)
		}
	})

	if ks.err != nil {
		return nil, ks.err
	}

	return ks, nil
}
