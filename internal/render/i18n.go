package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsSwedish reports whether lang selects the Swedish variant. Every other
// tag, including empty, renders in English.
func IsSwedish(lang string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "sv")
}

// GuestLabel is the generic addressee name used when none is known.
func GuestLabel(lang string) string {
	if IsSwedish(lang) {
		return "Kund"
	}
	return "Customer"
}

type catalog map[string]string

var sv = catalog{
	"lang":             "sv",
	"greeting":         "Hej %s,",
	"signoff":          "Med vänliga hälsningar,",
	"team":             "Teamet på %s",
	"questions":        "Har du frågor? Svara bara på detta mejl.",
	"order.number":     "Ordernummer",
	"order.item":       "Produkt",
	"order.qty":        "Antal",
	"order.price":      "Pris",
	"order.subtotal":   "Delsumma",
	"order.shipping":   "Frakt",
	"order.vat":        "Moms",
	"order.discount":   "Rabatt",
	"order.total":      "Totalt",
	"order.ship_to":    "Leveransadress",
	"order.view":       "Visa din order",
	"order.thanks":     "Tack för din beställning! Vi har tagit emot den och börjar behandla den direkt.",
	"order.thanks_b2b": "Tack för er beställning. Ordern är registrerad på %s.",
	"status.intro":     "Statusen för din order %s har ändrats till: %s.",
	"status.tracking":  "Spårningsnummer",
	"status.carrier":   "Transportör",
	"admin.order":      "En ny order har lagts.",
	"admin.customer":   "Kund",
	"admin.class":      "Kundtyp",
	"admin.source":     "Källa",
	"admin.open":       "Öppna i admin",
	"creds.intro":      "Ditt konto hos %s är klart. Här är dina inloggningsuppgifter:",
	"creds.email":      "E-post",
	"creds.password":   "Tillfälligt lösenord",
	"creds.change":     "Byt lösenord efter första inloggningen.",
	"creds.login":      "Logga in",
	"reset.intro":      "Vi har fått en begäran om att återställa ditt lösenord.",
	"reset.cta":        "Välj nytt lösenord",
	"reset.ignore":     "Om du inte begärt detta kan du ignorera mejlet.",
	"verify.intro":     "Bekräfta din e-postadress för att slutföra registreringen.",
	"verify.cta":       "Bekräfta e-post",
	"activated.intro":  "Ditt konto är nu aktiverat och du kan logga in och lägga beställningar.",
	"activated.cta":    "Till portalen",
	"aff.intro":        "Välkommen som affiliate! Din ansökan är godkänd.",
	"aff.code":         "Din affiliatekod",
	"aff.commission":   "Provision",
	"aff.discount":     "Rabatt för dina kunder",
	"aff.link":         "Din delningslänk",
	"aff.portal":       "Till affiliateportalen",
	"app.intro":        "Tack för din ansökan till vårt affiliateprogram. Vi återkommer så snart vi granskat den.",
	"app.reference":    "Ansökningsnummer",
	"app.admin":        "En ny affiliateansökan har kommit in.",
	"app.name":         "Namn",
	"app.email":        "E-post",
	"app.phone":        "Telefon",
	"app.website":      "Webbplats",
	"app.country":      "Land",
	"app.channels":     "Kanaler",
	"app.promotion":    "Marknadsföring",
	"app.message":      "Meddelande",
	"app.review":       "Granska ansökan",

	"subject.order_confirmation": "Orderbekräftelse %s",
	"subject.order_status":       "Order %s: %s",
	"subject.order_admin":        "Ny order %s från %s",
	"subject.login_credentials":  "Dina inloggningsuppgifter till %s",
	"subject.password_reset":     "Återställ ditt lösenord",
	"subject.email_verification": "Bekräfta din e-postadress",
	"subject.account_activated":  "Ditt konto hos %s är aktiverat",
	"subject.affiliate_welcome":  "Välkommen till %s affiliateprogram",
	"subject.app_received":       "Vi har tagit emot din affiliateansökan",
	"subject.app_admin":          "Ny affiliateansökan: %s",

	"st.pending":    "Väntande",
	"st.confirmed":  "Bekräftad",
	"st.processing": "Behandlas",
	"st.shipped":    "Skickad",
	"st.delivered":  "Levererad",
	"st.cancelled":  "Avbruten",
}

var en = catalog{
	"lang":             "en",
	"greeting":         "Hello %s,",
	"signoff":          "Kind regards,",
	"team":             "The %s team",
	"questions":        "Questions? Just reply to this email.",
	"order.number":     "Order number",
	"order.item":       "Product",
	"order.qty":        "Qty",
	"order.price":      "Price",
	"order.subtotal":   "Subtotal",
	"order.shipping":   "Shipping",
	"order.vat":        "VAT",
	"order.discount":   "Discount",
	"order.total":      "Total",
	"order.ship_to":    "Shipping address",
	"order.view":       "View your order",
	"order.thanks":     "Thank you for your order! We have received it and will start processing it right away.",
	"order.thanks_b2b": "Thank you for your order. It has been registered for %s.",
	"status.intro":     "The status of your order %s has changed to: %s.",
	"status.tracking":  "Tracking number",
	"status.carrier":   "Carrier",
	"admin.order":      "A new order has been placed.",
	"admin.customer":   "Customer",
	"admin.class":      "Customer type",
	"admin.source":     "Source",
	"admin.open":       "Open in admin",
	"creds.intro":      "Your %s account is ready. Here are your login details:",
	"creds.email":      "Email",
	"creds.password":   "Temporary password",
	"creds.change":     "Please change your password after your first login.",
	"creds.login":      "Log in",
	"reset.intro":      "We received a request to reset your password.",
	"reset.cta":        "Choose a new password",
	"reset.ignore":     "If you did not request this, you can ignore this email.",
	"verify.intro":     "Please verify your email address to complete your registration.",
	"verify.cta":       "Verify email",
	"activated.intro":  "Your account is now active and you can log in and place orders.",
	"activated.cta":    "Go to the portal",
	"aff.intro":        "Welcome aboard! Your affiliate application has been approved.",
	"aff.code":         "Your affiliate code",
	"aff.commission":   "Commission",
	"aff.discount":     "Discount for your customers",
	"aff.link":         "Your share link",
	"aff.portal":       "Open the affiliate portal",
	"app.intro":        "Thank you for applying to our affiliate program. We will get back to you once we have reviewed it.",
	"app.reference":    "Application number",
	"app.admin":        "A new affiliate application has been submitted.",
	"app.name":         "Name",
	"app.email":        "Email",
	"app.phone":        "Phone",
	"app.website":      "Website",
	"app.country":      "Country",
	"app.channels":     "Channels",
	"app.promotion":    "Promotion",
	"app.message":      "Message",
	"app.review":       "Review application",

	"subject.order_confirmation": "Order confirmation %s",
	"subject.order_status":       "Order %s: %s",
	"subject.order_admin":        "New order %s from %s",
	"subject.login_credentials":  "Your %s login details",
	"subject.password_reset":     "Reset your password",
	"subject.email_verification": "Verify your email address",
	"subject.account_activated":  "Your %s account is activated",
	"subject.affiliate_welcome":  "Welcome to the %s affiliate program",
	"subject.app_received":       "We have received your affiliate application",
	"subject.app_admin":          "New affiliate application: %s",

	"st.pending":    "Pending",
	"st.confirmed":  "Confirmed",
	"st.processing": "Processing",
	"st.shipped":    "Shipped",
	"st.delivered":  "Delivered",
	"st.cancelled":  "Cancelled",
}

// locale is handed to templates as .L.
type locale struct {
	lang string
	msgs catalog
}

func localeFor(lang string) locale {
	if IsSwedish(lang) {
		return locale{lang: "sv", msgs: sv}
	}
	return locale{lang: "en", msgs: en}
}

// T looks up key and formats it with args. Unknown keys render as the key.
func (l locale) T(key string, args ...any) string {
	s, ok := l.msgs[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}

// Status translates an order status, passing unknown values through.
func (l locale) Status(s string) string {
	if v, ok := l.msgs["st."+strings.ToLower(s)]; ok {
		return v
	}
	return s
}

// Money formats an amount the way the locale writes prices.
func (l locale) Money(amount float64, currency string) string {
	if currency == "" {
		currency = "SEK"
	}
	if l.lang == "sv" {
		n := strings.Replace(groupThousands(amount, " "), ".", ",", 1)
		if strings.EqualFold(currency, "SEK") {
			return n + " kr"
		}
		return n + " " + strings.ToUpper(currency)
	}
	return strings.ToUpper(currency) + " " + groupThousands(amount, ",")
}

// Percent renders 0.15 and 15 alike as "15%".
func (l locale) Percent(v float64) string {
	if v > 0 && v <= 1 {
		v *= 100
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "%"
}

func groupThousands(amount float64, sep string) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
