package notify

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/render"
)

const (
	fieldOrderPayload = "orderPayload"
	auxPrefix         = "auxiliaryData."
)

// entry describes one supported event type.
type entry struct {
	// required lists "orderPayload" and "auxiliaryData.<key>" paths that
	// must be present before rendering.
	required []string
	// operator routes to the operator mailbox regardless of the request flag.
	operator bool
	render   func(*render.Renderer, assembly) (transport.Message, error)
}

var catalog = map[EventType]entry{
	OrderConfirmation: {
		required: []string{fieldOrderPayload},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.OrderConfirmation(a.lang, render.OrderConfirmation{
				Recipient: a.recipient(),
				Order:     *a.ec.OrderPayload,
			})
		},
	},
	OrderStatusUpdate: {
		required: []string{fieldOrderPayload, auxPrefix + "newStatus"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.OrderStatusUpdate(a.lang, render.OrderStatusUpdate{
				Recipient:      a.recipient(),
				Order:          *a.ec.OrderPayload,
				NewStatus:      a.str("newStatus"),
				PreviousStatus: a.str("previousStatus"),
				TrackingNumber: a.str("trackingNumber"),
				Carrier:        a.str("carrier"),
				Note:           a.str("note"),
			})
		},
	},
	OrderNotificationAdmin: {
		required: []string{fieldOrderPayload},
		operator: true,
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.OrderNotificationAdmin(a.lang, render.OrderNotificationAdmin{
				Customer:     a.recipient(),
				Order:        *a.ec.OrderPayload,
				AccountClass: string(a.rcpt.AccountClass),
				Source:       a.ec.Source,
			})
		},
	},
	LoginCredentials: {
		required: []string{auxPrefix + "credentials"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			var creds render.Credentials
			if err := a.decode("credentials", &creds); err != nil {
				return transport.Message{}, err
			}
			return r.LoginCredentials(a.lang, render.LoginCredentials{Recipient: a.recipient(), Credentials: creds})
		},
	},
	PasswordReset: {
		required: []string{auxPrefix + "resetCode"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.PasswordReset(a.lang, render.PasswordReset{Recipient: a.recipient(), ResetCode: a.str("resetCode")})
		},
	},
	EmailVerification: {
		required: []string{auxPrefix + "verificationCode"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.EmailVerification(a.lang, render.EmailVerification{
				Recipient:        a.recipient(),
				VerificationCode: a.str("verificationCode"),
			})
		},
	},
	AccountActivated: {
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			return r.AccountActivated(a.lang, render.AccountActivated{Recipient: a.recipient()})
		},
	},
	AffiliateWelcome: {
		required: []string{auxPrefix + "affiliateInfo", auxPrefix + "credentials"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			var (
				info  render.AffiliateInfo
				creds render.Credentials
			)
			if err := a.decode("affiliateInfo", &info); err != nil {
				return transport.Message{}, err
			}
			if err := a.decode("credentials", &creds); err != nil {
				return transport.Message{}, err
			}
			return r.AffiliateWelcome(a.lang, render.AffiliateWelcome{Recipient: a.recipient(), Affiliate: info, Credentials: creds})
		},
	},
	AffiliateApplicationReceived: {
		required: []string{auxPrefix + "applicantInfo", auxPrefix + "applicationId"},
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			var app render.ApplicantInfo
			if err := a.decode("applicantInfo", &app); err != nil {
				return transport.Message{}, err
			}
			return r.AffiliateApplicationReceived(a.lang, render.AffiliateApplicationReceived{
				Recipient:     a.recipient(),
				Applicant:     app,
				ApplicationID: a.str("applicationId"),
			})
		},
	},
	AffiliateApplicationAdmin: {
		required: []string{auxPrefix + "applicantInfo", auxPrefix + "applicationId"},
		operator: true,
		render: func(r *render.Renderer, a assembly) (transport.Message, error) {
			var app render.ApplicantInfo
			if err := a.decode("applicantInfo", &app); err != nil {
				return transport.Message{}, err
			}
			return r.AffiliateApplicationAdmin(a.lang, render.AffiliateApplicationAdmin{
				Applicant:     app,
				ApplicationID: a.str("applicationId"),
			})
		},
	},
}

// EventTypes returns the supported event types, sorted.
func EventTypes() []EventType {
	out := make([]EventType, 0, len(catalog))
	for et := range catalog {
		out = append(out, et)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RequiredFields returns the required field paths for et, or false when et
// is not supported.
func RequiredFields(et EventType) ([]string, bool) {
	e, ok := catalog[et]
	if !ok {
		return nil, false
	}
	return append([]string(nil), e.required...), true
}

// missingField returns the first required path absent from ec.
func missingField(e entry, ec EventContext) (string, bool) {
	for _, f := range e.required {
		if !hasField(ec, f) {
			return f, true
		}
	}
	return "", false
}

func hasField(ec EventContext, path string) bool {
	if path == fieldOrderPayload {
		return ec.OrderPayload != nil
	}
	key, ok := strings.CutPrefix(path, auxPrefix)
	if !ok {
		return false
	}
	v, ok := ec.AuxiliaryData[key]
	return ok && !isBlank(v)
}

// isBlank treats nil, whitespace strings and empty collections as absent.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// assembly is what a routine's payload is built from.
type assembly struct {
	ec   EventContext
	rcpt ResolvedRecipient
	lang string
}

func (a assembly) recipient() render.Recipient {
	return render.Recipient{
		Name:          a.rcpt.DisplayName,
		Email:         a.rcpt.Email,
		Company:       a.rcpt.OrganizationName,
		ContactPerson: a.rcpt.ContactPersonName,
		B2B:           a.rcpt.AccountClass == RegisteredBusiness,
	}
}

// str renders an auxiliary value as a string; numbers are accepted for ids.
func (a assembly) str(key string) string {
	v, ok := a.ec.AuxiliaryData[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// decode converts an auxiliary value into dst through its JSON form, which
// accepts both decoded request maps and typed values set by Go callers.
func (a assembly) decode(key string, dst any) error {
	raw, err := json.Marshal(a.ec.AuxiliaryData[key])
	if err != nil {
		return fmt.Errorf("auxiliaryData.%s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("auxiliaryData.%s: %w", key, err)
	}
	return nil
}
