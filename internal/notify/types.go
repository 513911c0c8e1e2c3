package notify

import "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/render"

// EventType names a business event. The supported set is closed; see
// EventTypes.
type EventType string

const (
	OrderConfirmation            EventType = "ORDER_CONFIRMATION"
	OrderStatusUpdate            EventType = "ORDER_STATUS_UPDATE"
	OrderNotificationAdmin       EventType = "ORDER_NOTIFICATION_ADMIN"
	LoginCredentials             EventType = "LOGIN_CREDENTIALS"
	PasswordReset                EventType = "PASSWORD_RESET"
	EmailVerification            EventType = "EMAIL_VERIFICATION"
	AccountActivated             EventType = "ACCOUNT_ACTIVATED"
	AffiliateWelcome             EventType = "AFFILIATE_WELCOME"
	AffiliateApplicationReceived EventType = "AFFILIATE_APPLICATION_RECEIVED"
	AffiliateApplicationAdmin    EventType = "AFFILIATE_APPLICATION_ADMIN"
)

// AccountClass is how a recipient was identified.
type AccountClass string

const (
	RegisteredBusiness AccountClass = "REGISTERED_BUSINESS"
	Retail             AccountClass = "RETAIL"
	Guest              AccountClass = "GUEST"
)

type ContactInfo struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// EventContext is one notification request. Any combination of the three
// identity sources may be present.
type EventContext struct {
	EventType         EventType      `json:"eventType"`
	ExplicitUserID    string         `json:"explicitUserId,omitempty"`
	RetailCustomerID  string         `json:"retailCustomerId,omitempty"`
	ContactInfo       *ContactInfo   `json:"contactInfo,omitempty"`
	Source            string         `json:"source,omitempty"`
	RequestedLanguage string         `json:"requestedLanguage,omitempty"`
	OrderPayload      *render.Order  `json:"orderPayload,omitempty"`
	AuxiliaryData     map[string]any `json:"auxiliaryData,omitempty"`
	ToOperatorMailbox bool           `json:"toOperatorMailbox,omitempty"`
	RelatedOrderID    string         `json:"relatedOrderId,omitempty"`
}

// ResolvedRecipient always carries an email.
type ResolvedRecipient struct {
	Email             string       `json:"email"`
	DisplayName       string       `json:"displayName"`
	OrganizationName  string       `json:"organizationName,omitempty"`
	ContactPersonName string       `json:"contactPersonName,omitempty"`
	AccountClass      AccountClass `json:"accountClass"`
	PreferredLanguage string       `json:"preferredLanguage,omitempty"`
}

// Outcome is the result of Dispatch. Callers branch on Success only; the
// remaining fields are populated for the matching branch.
//
// A DeliveryFailed outcome caused by the caller's context ending mid-send
// does not prove the message was not delivered; retrying may send it twice.
type Outcome struct {
	Success        bool         `json:"success"`
	MessageID      string       `json:"messageId,omitempty"`
	RecipientEmail string       `json:"recipientEmail,omitempty"`
	AccountClass   AccountClass `json:"accountClass,omitempty"`
	Language       string       `json:"language,omitempty"`
	Subject        string       `json:"subject,omitempty"`

	ErrorKind    ErrorKind `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// Preview is a rendered message that was not sent.
type Preview struct {
	Recipient ResolvedRecipient `json:"recipient"`
	From      string            `json:"from"`
	To        string            `json:"to,omitempty"` // empty for the operator route
	Operator  bool              `json:"toOperatorMailbox"`
	Language  string            `json:"language"`
	Subject   string            `json:"subject"`
	HTML      string            `json:"html"`
	Text      string            `json:"text"`
}

// SystemStatus is the result of TestSystem.
type SystemStatus struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
