package webviewbridge

import (
	"github.com/wagiedev/webview-bridge-go/internal/catalog"
	"github.com/wagiedev/webview-bridge-go/internal/envelope"
	"github.com/wagiedev/webview-bridge-go/internal/host"
	"github.com/wagiedev/webview-bridge-go/internal/protocol"
)

// Re-export types from internal packages

// ===== Messages =====

// MessageType tags an envelope and selects the schema of its payload.
type MessageType = catalog.MessageType

// Envelope is the decoded form of a message on the wire.
type Envelope = envelope.Envelope

// Messages initiated by the native app.
const (
	NativeEvent    = catalog.NativeEvent
	SessionRenewed = catalog.SessionRenewed
)

// Messages initiated by the web page and answered by the native app.
const (
	SimICC              = catalog.SimICC
	IMEI                = catalog.IMEI
	IMSI                = catalog.IMSI
	AttachToEmail       = catalog.AttachToEmail
	SetTitle            = catalog.SetTitle
	PageLoaded          = catalog.PageLoaded
	Alert               = catalog.Alert
	Message             = catalog.Message
	Confirm             = catalog.Confirm
	CreateCalendarEvent = catalog.CreateCalendarEvent
	GetContactData      = catalog.GetContactData
	NavigationBar       = catalog.NavigationBar
	Share               = catalog.Share
	GetRemoteConfig     = catalog.GetRemoteConfig
	StatusReport        = catalog.StatusReport
	Fetch               = catalog.Fetch
	OSPermissionStatus  = catalog.OSPermissionStatus
	InternalNavigation  = catalog.InternalNavigation
	Dismiss             = catalog.Dismiss
	Vibration           = catalog.Vibration
	FetchContactsData   = catalog.FetchContactsData
	RenewSession        = catalog.RenewSession
	GetAppMetadata      = catalog.GetAppMetadata
	SetCustomerHash     = catalog.SetCustomerHash
	GetDiskSpaceInfo    = catalog.GetDiskSpaceInfo
)

// ErrorType is the type of envelopes the native app uses to fail a request.
const ErrorType = catalog.Error

// DefaultAction is the native event acknowledgement used when a handler
// does not choose one.
const DefaultAction = catalog.DefaultAction

// ===== Payloads =====

type (
	// NativeEventPayload is sent by the native app with NATIVE_EVENT.
	NativeEventPayload = catalog.NativeEventPayload

	// NativeEventResponse answers NATIVE_EVENT.
	NativeEventResponse = catalog.NativeEventResponse

	// SessionRenewedPayload is sent by the native app with SESSION_RENEWED.
	SessionRenewedPayload = catalog.SessionRenewedPayload

	// SimICCPayload answers SIM_ICC.
	SimICCPayload = catalog.SimICCPayload

	// IMEIPayload answers IMEI.
	IMEIPayload = catalog.IMEIPayload

	// IMSIPayload answers IMSI.
	IMSIPayload = catalog.IMSIPayload

	// ConfirmPayload answers CONFIRM.
	ConfirmPayload = catalog.ConfirmPayload

	// Address is a postal address in a contact.
	Address = catalog.Address

	// ContactDataPayload answers GET_CONTACT_DATA.
	ContactDataPayload = catalog.ContactDataPayload

	// ErrorPayload is the payload of an ERROR envelope.
	ErrorPayload = catalog.ErrorPayload

	// RemoteConfigPayload answers GET_REMOTE_CONFIG.
	RemoteConfigPayload = catalog.RemoteConfigPayload

	// FetchPayload answers FETCH.
	FetchPayload = catalog.FetchPayload

	// PermissionStatusPayload answers OS_PERMISSION_STATUS.
	PermissionStatusPayload = catalog.PermissionStatusPayload

	// Contact is one entry of FETCH_CONTACTS_DATA.
	Contact = catalog.Contact

	// ContactsPayload answers FETCH_CONTACTS_DATA.
	ContactsPayload = catalog.ContactsPayload

	// RenewSessionPayload answers RENEW_SESSION.
	RenewSessionPayload = catalog.RenewSessionPayload

	// AppMetadataPayload answers GET_APP_METADATA.
	AppMetadataPayload = catalog.AppMetadataPayload

	// DiskSpaceInfoPayload answers GET_DISK_SPACE_INFO.
	DiskSpaceInfoPayload = catalog.DiskSpaceInfoPayload
)

// ===== Host =====

type (
	// Environment groups the outbound bindings and the inbound endpoint.
	Environment = host.Environment

	// Binding is one way of reaching the native app.
	Binding = host.Binding

	// Slot is a Binding whose function is installed and cleared at runtime.
	Slot = host.Slot

	// SendFunc posts a raw message to the native app.
	SendFunc = host.SendFunc

	// Endpoint is the inbound entry point called by the native app.
	Endpoint = host.Endpoint
)

// Binding names exposed by native apps.
const (
	AndroidBindingName = host.AndroidBindingName
	WebKitBindingName  = host.WebKitBindingName
	EndpointName       = host.EndpointName
)

// NewEnvironment creates an environment with no bindings installed.
func NewEnvironment() *Environment {
	return host.NewEnvironment()
}

// NewSlot creates an empty binding slot.
func NewSlot(name string) *Slot {
	return host.NewSlot(name)
}

// ===== Requests =====

// Request is a request from the page to the native app.
type Request struct {
	// Type selects the message kind.
	Type MessageType
	// ID correlates the response. If empty, a fresh id is generated.
	ID string
	// Payload is serialized as JSON. Nil sends no payload.
	Payload any
}

// Call is a request in flight. Wait on it with Result or Wait.
type Call = protocol.Call

// CallState is the lifecycle state of a Call.
type CallState = protocol.State

// Call states.
const (
	StatePending   = protocol.StatePending
	StateFulfilled = protocol.StateFulfilled
	StateRejected  = protocol.StateRejected
	StateTimedOut  = protocol.StateTimedOut
	StateCancelled = protocol.StateCancelled
)

// RequestHandler handles a request initiated by the native app. The
// returned value becomes the response payload; returning an error sends no
// response.
type RequestHandler = protocol.RequestHandler

// Unregister removes a handler. Calling it more than once is a no-op.
type Unregister = protocol.Unregister
