package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/render"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store"
)

// Resolver turns the identity hints of an EventContext into a recipient.
type Resolver struct {
	accounts        store.AccountRepository
	defaultLanguage string
}

// NewResolver accepts a nil repository; only contact info then resolves.
func NewResolver(accounts store.AccountRepository, defaultLanguage string) *Resolver {
	return &Resolver{accounts: accounts, defaultLanguage: defaultLanguage}
}

// Resolve tries the explicit account id, then the retail customer id, then
// the contact info. A record without an email never wins.
func (r *Resolver) Resolve(ctx context.Context, ec EventContext) (ResolvedRecipient, error) {
	log := logger.From(ctx).With(logger.Layer("resolver"))
	var lookupErr error

	if id := strings.TrimSpace(ec.ExplicitUserID); id != "" && r.accounts != nil {
		acct, err := r.accounts.FindRegisteredAccountByID(ctx, id)
		switch {
		case err != nil:
			lookupErr = errors.Join(lookupErr, err)
			log.Warn("registered account lookup failed", logger.Err(err))
		case acct != nil && strings.TrimSpace(acct.Email) != "":
			return fromAccount(acct), nil
		default:
			log.Debug("registered account not usable", logger.Bool("found", acct != nil))
		}
	}

	if id := strings.TrimSpace(ec.RetailCustomerID); id != "" && r.accounts != nil {
		cust, err := r.accounts.FindRetailCustomerByID(ctx, id)
		switch {
		case err != nil:
			lookupErr = errors.Join(lookupErr, err)
			log.Warn("retail customer lookup failed", logger.Err(err))
		case cust != nil && strings.TrimSpace(cust.Email) != "":
			return r.fromRetail(cust, ec), nil
		default:
			log.Debug("retail customer not usable", logger.Bool("found", cust != nil))
		}
	}

	if ec.ContactInfo != nil {
		if email := strings.TrimSpace(ec.ContactInfo.Email); email != "" {
			lang := EffectiveLanguage(ec.RequestedLanguage, "", r.defaultLanguage)
			return ResolvedRecipient{
				Email:        email,
				DisplayName:  GuestName(ec.ContactInfo.FirstName, ec.ContactInfo.LastName, ec.ContactInfo.Name, lang),
				AccountClass: Guest,
			}, nil
		}
	}

	if lookupErr != nil {
		return ResolvedRecipient{}, errIdentity("no recipient email: account lookup failed", lookupErr)
	}
	return ResolvedRecipient{}, errIdentity("no recipient email could be established", nil)
}

// GuestName is the single naming rule for customers without an account:
// first and last name, else the free-form name, else a generic label in
// lang.
func GuestName(first, last, name, lang string) string {
	if full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last)); full != "" {
		return full
	}
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return render.GuestLabel(lang)
}

func fromAccount(a *store.Account) ResolvedRecipient {
	display := strings.TrimSpace(a.ContactPerson)
	if display == "" {
		display = strings.TrimSpace(a.CompanyName)
	}
	if display == "" {
		display = a.Email
	}
	return ResolvedRecipient{
		Email:             strings.TrimSpace(a.Email),
		DisplayName:       display,
		OrganizationName:  a.CompanyName,
		ContactPersonName: a.ContactPerson,
		AccountClass:      RegisteredBusiness,
		PreferredLanguage: a.PreferredLanguage,
	}
}

func (r *Resolver) fromRetail(c *store.RetailCustomer, ec EventContext) ResolvedRecipient {
	lang := EffectiveLanguage(ec.RequestedLanguage, c.PreferredLanguage, r.defaultLanguage)
	var fallbackName string
	if ec.ContactInfo != nil {
		fallbackName = ec.ContactInfo.Name
	}
	return ResolvedRecipient{
		Email:             strings.TrimSpace(c.Email),
		DisplayName:       GuestName(c.FirstName, c.LastName, fallbackName, lang),
		AccountClass:      Retail,
		PreferredLanguage: c.PreferredLanguage,
	}
}
