package render

import "time"

// ─── Inbound payload shapes ───
//
// These are decoded from the loosely typed request bag once the required
// fields are known to be present.

type Address struct {
	Name       string `json:"name,omitempty"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

type OrderItem struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// LineTotal is Quantity * UnitPrice.
func (i OrderItem) LineTotal() float64 { return float64(i.Quantity) * i.UnitPrice }

type Order struct {
	ID              string      `json:"id,omitempty"`
	OrderNumber     string      `json:"orderNumber"`
	Status          string      `json:"status,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	Subtotal        float64     `json:"subtotal,omitempty"`
	Shipping        float64     `json:"shipping,omitempty"`
	VAT             float64     `json:"vat,omitempty"`
	Discount        float64     `json:"discountAmount,omitempty"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency,omitempty"`
	AffiliateCode   string      `json:"affiliateCode,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	TrackingNumber  string      `json:"trackingNumber,omitempty"`
	Carrier         string      `json:"carrier,omitempty"`
	ShippingAddress *Address    `json:"shippingInfo,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
}

// Reference is the human-facing order reference, falling back to the id.
func (o Order) Reference() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}

type Credentials struct {
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporaryPassword"`
}

type AffiliateInfo struct {
	Name             string  `json:"name"`
	Email            string  `json:"email,omitempty"`
	AffiliateCode    string  `json:"affiliateCode"`
	CommissionRate   float64 `json:"commissionRate,omitempty"`
	CheckoutDiscount float64 `json:"checkoutDiscount,omitempty"`
}

type ApplicantInfo struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Website   string   `json:"website,omitempty"`
	Country   string   `json:"country,omitempty"`
	Channels  []string `json:"socials,omitempty"`
	Promotion string   `json:"promotionMethod,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// ─── Per-routine inputs ───

// Recipient is the addressee as the templates see it.
type Recipient struct {
	Name          string
	Email         string
	Company       string
	ContactPerson string
	// B2B is true for registered business accounts.
	B2B bool
}

type OrderConfirmation struct {
	Recipient Recipient
	Order     Order
}

type OrderStatusUpdate struct {
	Recipient      Recipient
	Order          Order
	NewStatus      string
	PreviousStatus string
	TrackingNumber string
	Carrier        string
	Note           string
}

type OrderNotificationAdmin struct {
	Customer     Recipient
	Order        Order
	AccountClass string
	Source       string
}

type LoginCredentials struct {
	Recipient   Recipient
	Credentials Credentials
}

type PasswordReset struct {
	Recipient Recipient
	ResetCode string
}

type EmailVerification struct {
	Recipient        Recipient
	VerificationCode string
}

type AccountActivated struct {
	Recipient Recipient
}

type AffiliateWelcome struct {
	Recipient   Recipient
	Affiliate   AffiliateInfo
	Credentials Credentials
}

type AffiliateApplicationReceived struct {
	Recipient     Recipient
	Applicant     ApplicantInfo
	ApplicationID string
}

type AffiliateApplicationAdmin struct {
	Applicant     ApplicantInfo
	ApplicationID string
}
