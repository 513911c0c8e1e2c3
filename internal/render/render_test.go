package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{BrandName: "B8Shield", BaseURL: "https://shop.b8shield.com/"})
	require.NoError(t, err)
	return r
}

var sampleOrder = Order{
	OrderNumber: "B8S-1001",
	Items: []OrderItem{
		{Name: "B8Shield 3-pack", Color: "Transparent", Size: "M", Quantity: 2, UnitPrice: 89},
	},
	Subtotal: 178,
	Shipping: 29,
	Total:    1207.5,
	Currency: "SEK",
	ShippingAddress: &Address{
		Name: "Anna Svensson", Street: "Storgatan 1", PostalCode: "111 22", City: "Stockholm",
	},
}

func TestOrderConfirmation_Localized(t *testing.T) {
	r := newRenderer(t)
	in := OrderConfirmation{Recipient: Recipient{Name: "Anna"}, Order: sampleOrder}

	svMsg, err := r.OrderConfirmation("sv-SE", in)
	require.NoError(t, err)
	assert.Equal(t, "Orderbekräftelse B8S-1001", svMsg.Subject)
	assert.Contains(t, svMsg.HTML, "Hej Anna,")
	assert.Contains(t, svMsg.HTML, "1 207,50 kr")
	assert.Contains(t, svMsg.HTML, "https://shop.b8shield.com/orders/B8S-1001")
	assert.Contains(t, svMsg.Text, "Storgatan 1")

	enMsg, err := r.OrderConfirmation("en-GB", in)
	require.NoError(t, err)
	assert.Equal(t, "Order confirmation B8S-1001", enMsg.Subject)
	assert.Contains(t, enMsg.HTML, "SEK 1,207.50")
}

func TestOrderConfirmation_B2BWording(t *testing.T) {
	r := newRenderer(t)
	msg, err := r.OrderConfirmation("en", OrderConfirmation{
		Recipient: Recipient{Name: "Erik", Company: "Fiske AB", B2B: true},
		Order:     sampleOrder,
	})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "registered for Fiske AB")
}

func TestOrderStatusUpdate_TranslatesStatus(t *testing.T) {
	r := newRenderer(t)
	msg, err := r.OrderStatusUpdate("sv-SE", OrderStatusUpdate{
		Recipient:      Recipient{Name: "Anna"},
		Order:          sampleOrder,
		NewStatus:      "shipped",
		TrackingNumber: "PN123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Order B8S-1001: Skickad", msg.Subject)
	assert.Contains(t, msg.HTML, "PN123")
}

func TestPasswordReset_EscapesCode(t *testing.T) {
	r := newRenderer(t)
	msg, err := r.PasswordReset("en", PasswordReset{Recipient: Recipient{Name: "Customer"}, ResetCode: "a b&c"})
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.HTML, "reset-password?code=a")
	assert.Contains(t, msg.HTML, "b%26c")
}

func TestAffiliateApplicationReceived_Language(t *testing.T) {
	r := newRenderer(t)
	in := AffiliateApplicationReceived{
		Recipient:     Recipient{Name: "Jo"},
		Applicant:     ApplicantInfo{Name: "Jo", Email: "jo@example.com"},
		ApplicationID: "APP-7",
	}
	enMsg, err := r.AffiliateApplicationReceived("en-GB", in)
	require.NoError(t, err)
	svMsg, err := r.AffiliateApplicationReceived("sv-SE", in)
	require.NoError(t, err)

	assert.Equal(t, "We have received your affiliate application", enMsg.Subject)
	assert.Equal(t, "Vi har tagit emot din affiliateansökan", svMsg.Subject)
	assert.Contains(t, enMsg.Text, "APP-7")
}

func TestAllRoutinesProduceContent(t *testing.T) {
	r := newRenderer(t)
	rcpt := Recipient{Name: "Anna", Email: "anna@example.com"}
	creds := Credentials{Email: "anna@example.com", TemporaryPassword: "Tmp-123"}
	applicant := ApplicantInfo{Name: "Jo", Email: "jo@example.com", Channels: []string{"instagram", "youtube"}}

	calls := map[string]func(lang string) (string, string, error){
		"order_notification_admin": func(l string) (string, string, error) {
			m, err := r.OrderNotificationAdmin(l, OrderNotificationAdmin{Customer: rcpt, Order: sampleOrder, AccountClass: "GUEST", Source: "checkout"})
			return m.Subject, m.HTML, err
		},
		"login_credentials": func(l string) (string, string, error) {
			m, err := r.LoginCredentials(l, LoginCredentials{Recipient: rcpt, Credentials: creds})
			return m.Subject, m.HTML, err
		},
		"email_verification": func(l string) (string, string, error) {
			m, err := r.EmailVerification(l, EmailVerification{Recipient: rcpt, VerificationCode: "v-1"})
			return m.Subject, m.HTML, err
		},
		"account_activated": func(l string) (string, string, error) {
			m, err := r.AccountActivated(l, AccountActivated{Recipient: rcpt})
			return m.Subject, m.HTML, err
		},
		"affiliate_welcome": func(l string) (string, string, error) {
			m, err := r.AffiliateWelcome(l, AffiliateWelcome{
				Recipient:   rcpt,
				Affiliate:   AffiliateInfo{Name: "Anna", AffiliateCode: "ANNA10", CommissionRate: 0.15, CheckoutDiscount: 10},
				Credentials: creds,
			})
			return m.Subject, m.HTML, err
		},
		"affiliate_application_admin": func(l string) (string, string, error) {
			m, err := r.AffiliateApplicationAdmin(l, AffiliateApplicationAdmin{Applicant: applicant, ApplicationID: "APP-7"})
			return m.Subject, m.HTML, err
		},
	}
	for name, call := range calls {
		for _, lang := range []string{"sv-SE", "en"} {
			subject, html, err := call(lang)
			require.NoError(t, err, "%s/%s", name, lang)
			assert.NotEmpty(t, subject, "%s/%s", name, lang)
			assert.Contains(t, html, "<!DOCTYPE html>", "%s/%s", name, lang)
		}
	}
}

func TestLocaleHelpers(t *testing.T) {
	assert.True(t, IsSwedish("sv-SE"))
	assert.True(t, IsSwedish(" SV "))
	assert.False(t, IsSwedish("en-GB"))
	assert.False(t, IsSwedish(""))

	assert.Equal(t, "Kund", GuestLabel("sv-SE"))
	assert.Equal(t, "Customer", GuestLabel("de-DE"))

	assert.Equal(t, "15%", localeFor("en").Percent(0.15))
	assert.Equal(t, "10%", localeFor("en").Percent(10))
	assert.Equal(t, "EUR 1,000,000.00", localeFor("en").Money(1e6, "eur"))
	assert.Equal(t, "-5,00 kr", localeFor("sv").Money(-5, ""))
	assert.Equal(t, "Unknown", localeFor("sv").Status("Unknown"))
	assert.Equal(t, "missing.key", localeFor("en").T("missing.key"))
}
