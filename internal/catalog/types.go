package catalog

// MessageType tags an envelope and selects the schema of its payload.
type MessageType string

// Messages initiated by the native app.
const (
	NativeEvent    MessageType = "NATIVE_EVENT"
	SessionRenewed MessageType = "SESSION_RENEWED"
)

// Messages initiated by the web page and answered by the native app.
const (
	SimICC              MessageType = "SIM_ICC"
	IMEI                MessageType = "IMEI"
	IMSI                MessageType = "IMSI"
	AttachToEmail       MessageType = "ATTACH_TO_EMAIL"
	SetTitle            MessageType = "SET_TITLE"
	PageLoaded          MessageType = "PAGE_LOADED"
	Alert               MessageType = "ALERT"
	Message             MessageType = "MESSAGE"
	Confirm             MessageType = "CONFIRM"
	CreateCalendarEvent MessageType = "CREATE_CALENDAR_EVENT"
	GetContactData      MessageType = "GET_CONTACT_DATA"
	NavigationBar       MessageType = "NAVIGATION_BAR"
	Share               MessageType = "SHARE"
	GetRemoteConfig     MessageType = "GET_REMOTE_CONFIG"
	StatusReport        MessageType = "STATUS_REPORT"
	Fetch               MessageType = "FETCH"
	OSPermissionStatus  MessageType = "OS_PERMISSION_STATUS"
	InternalNavigation  MessageType = "INTERNAL_NAVIGATION"
	Dismiss             MessageType = "DISMISS"
	Vibration           MessageType = "VIBRATION"
	FetchContactsData   MessageType = "FETCH_CONTACTS_DATA"
	RenewSession        MessageType = "RENEW_SESSION"
	GetAppMetadata      MessageType = "GET_APP_METADATA"
	SetCustomerHash     MessageType = "SET_CUSTOMER_HASH"
	GetDiskSpaceInfo    MessageType = "GET_DISK_SPACE_INFO"
)

// Error is the type of envelopes the native app uses to fail a request.
const Error MessageType = "ERROR"

// DefaultAction is the acknowledgement sent for a native event when the
// handler does not choose one.
const DefaultAction = "default"

// NativeEventPayload is sent by the native app with NATIVE_EVENT.
type NativeEventPayload struct {
	Event string `json:"event"`
}

// NativeEventResponse acknowledges a NATIVE_EVENT.
type NativeEventResponse struct {
	Action string `json:"action"`
}

// SessionRenewedPayload is sent by the native app with SESSION_RENEWED.
type SessionRenewedPayload struct {
	AccessToken string `json:"accessToken"`
}

// SimICCPayload answers SIM_ICC.
type SimICCPayload struct {
	ICC string `json:"icc"`
}

// IMEIPayload answers IMEI.
type IMEIPayload struct {
	IMEI string `json:"imei"`
}

// IMSIPayload answers IMSI.
type IMSIPayload struct {
	IMSI string `json:"imsi"`
}

// ConfirmPayload answers CONFIRM.
type ConfirmPayload struct {
	Result bool `json:"result"`
}

// Address is the postal address of a contact.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// ContactDataPayload answers GET_CONTACT_DATA.
type ContactDataPayload struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// ErrorPayload is carried by ERROR envelopes.
type ErrorPayload struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// RemoteConfigPayload answers GET_REMOTE_CONFIG.
type RemoteConfigPayload struct {
	Result map[string]string `json:"result"`
}

// FetchPayload answers FETCH.
type FetchPayload struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// PermissionStatusPayload answers OS_PERMISSION_STATUS.
type PermissionStatusPayload struct {
	Granted bool `json:"granted"`
}

// Contact is one entry of FETCH_CONTACTS_DATA.
type Contact struct {
	PhoneNumber   string `json:"phoneNumber"`
	FirstName     string `json:"firstName,omitempty"`
	MiddleName    string `json:"middleName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	EncodedAvatar string `json:"encodedAvatar,omitempty"`
}

// ContactsPayload answers FETCH_CONTACTS_DATA.
type ContactsPayload []Contact

// RenewSessionPayload answers RENEW_SESSION.
type RenewSessionPayload struct {
	AccessToken string `json:"accessToken"`
}

// AppMetadataPayload answers GET_APP_METADATA.
type AppMetadataPayload struct {
	IsInstalled bool   `json:"isInstalled"`
	MarketURL   string `json:"marketUrl"`
	AppURL      string `json:"appUrl"`
}

// DiskSpaceInfoPayload answers GET_DISK_SPACE_INFO.
type DiskSpaceInfoPayload struct {
	AvailableBytes int64 `json:"availableBytes"`
	TotalBytes     int64 `json:"totalBytes"`
}
