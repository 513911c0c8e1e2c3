// Package render holds the message routines, one per event type. Each is a
// pure function of its typed input and a language tag; Swedish tags render
// the Swedish variant and everything else renders English.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
)

type Options struct {
	BrandName string
	BaseURL   string
}

type Renderer struct {
	brand   string
	baseURL string
	tmpls   map[string]*template.Template
}

var errEmptyOutput = errors.New("render: empty subject or body")

// New parses all templates up front so a broken template fails at startup.
func New(opts Options) (*Renderer, error) {
	if opts.BrandName == "" {
		opts.BrandName = "B8Shield"
	}
	base, err := template.New("layout").Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("render: parse layout: %w", err)
	}
	if _, err := base.Parse(orderTable); err != nil {
		return nil, fmt.Errorf("render: parse order table: %w", err)
	}

	r := &Renderer{
		brand:   opts.BrandName,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tmpls:   make(map[string]*template.Template, len(contents)),
	}
	for name, body := range contents {
		t, err := template.Must(base.Clone()).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		r.tmpls[name] = t
	}
	return r, nil
}

// view is the template root.
type view struct {
	L       locale
	D       any
	Brand   string
	Subject string
	baseURL string
}

// Link joins the base URL with path; extra parts are query-escaped.
func (v view) Link(path string, parts ...string) string {
	var b strings.Builder
	b.WriteString(v.baseURL)
	b.WriteString(path)
	for _, p := range parts {
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

func (r *Renderer) exec(name, lang, subject string, data any) (transport.Message, error) {
	t, ok := r.tmpls[name]
	if !ok {
		return transport.Message{}, fmt.Errorf("render: unknown template %q", name)
	}
	v := view{L: localeFor(lang), D: data, Brand: r.brand, Subject: subject, baseURL: r.baseURL}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return transport.Message{}, fmt.Errorf("render %s: %w", name, err)
	}
	msg := transport.Message{
		Subject: strings.TrimSpace(subject),
		HTML:    buf.String(),
	}
	if msg.Subject == "" || msg.HTML == "" {
		return transport.Message{}, errEmptyOutput
	}
	msg.Text = transport.HTMLToText(msg.HTML)
	return msg, nil
}

func (r *Renderer) subject(lang, key string, args ...any) string {
	return localeFor(lang).T("subject."+key, args...)
}

// ─── Routines ───

func (r *Renderer) OrderConfirmation(lang string, in OrderConfirmation) (transport.Message, error) {
	return r.exec("order_confirmation", lang, r.subject(lang, "order_confirmation", in.Order.Reference()), in)
}

func (r *Renderer) OrderStatusUpdate(lang string, in OrderStatusUpdate) (transport.Message, error) {
	if in.TrackingNumber == "" {
		in.TrackingNumber = in.Order.TrackingNumber
	}
	if in.Carrier == "" {
		in.Carrier = in.Order.Carrier
	}
	l := localeFor(lang)
	return r.exec("order_status_update", lang, r.subject(lang, "order_status", in.Order.Reference(), l.Status(in.NewStatus)), in)
}

func (r *Renderer) OrderNotificationAdmin(lang string, in OrderNotificationAdmin) (transport.Message, error) {
	who := in.Customer.Company
	if who == "" {
		who = in.Customer.Name
	}
	return r.exec("order_notification_admin", lang, r.subject(lang, "order_admin", in.Order.Reference(), who), in)
}

func (r *Renderer) LoginCredentials(lang string, in LoginCredentials) (transport.Message, error) {
	return r.exec("login_credentials", lang, r.subject(lang, "login_credentials", r.brand), in)
}

func (r *Renderer) PasswordReset(lang string, in PasswordReset) (transport.Message, error) {
	return r.exec("password_reset", lang, r.subject(lang, "password_reset"), in)
}

func (r *Renderer) EmailVerification(lang string, in EmailVerification) (transport.Message, error) {
	return r.exec("email_verification", lang, r.subject(lang, "email_verification"), in)
}

func (r *Renderer) AccountActivated(lang string, in AccountActivated) (transport.Message, error) {
	return r.exec("account_activated", lang, r.subject(lang, "account_activated", r.brand), in)
}

func (r *Renderer) AffiliateWelcome(lang string, in AffiliateWelcome) (transport.Message, error) {
	return r.exec("affiliate_welcome", lang, r.subject(lang, "affiliate_welcome", r.brand), in)
}

func (r *Renderer) AffiliateApplicationReceived(lang string, in AffiliateApplicationReceived) (transport.Message, error) {
	return r.exec("affiliate_application_received", lang, r.subject(lang, "app_received"), in)
}

func (r *Renderer) AffiliateApplicationAdmin(lang string, in AffiliateApplicationAdmin) (transport.Message, error) {
	return r.exec("affiliate_application_admin", lang, r.subject(lang, "app_admin", in.Applicant.Name), in)
}
