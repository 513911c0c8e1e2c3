// Package store defines the identity lookups the notification core needs and
// the adapters that back them (memory, postgres) plus a read-through cache.
package store

import (
	"context"
	"errors"
)

// Account is a registered business (reseller) account.
type Account struct {
	ID                string `json:"id" yaml:"id"`
	Email             string `json:"email" yaml:"email"`
	CompanyName       string `json:"companyName" yaml:"company_name"`
	ContactPerson     string `json:"contactPerson" yaml:"contact_person"`
	PreferredLanguage string `json:"preferredLang,omitempty" yaml:"preferred_lang"`
}

// RetailCustomer is a consumer who registered in the shop.
type RetailCustomer struct {
	ID                string `json:"id" yaml:"id"`
	Email             string `json:"email" yaml:"email"`
	FirstName         string `json:"firstName" yaml:"first_name"`
	LastName          string `json:"lastName" yaml:"last_name"`
	PreferredLanguage string `json:"preferredLang,omitempty" yaml:"preferred_lang"`
}

// AccountRepository is the lookup capability used by identity resolution.
// Absence is (nil, nil), never an error.
type AccountRepository interface {
	FindRegisteredAccountByID(ctx context.Context, id string) (*Account, error)
	FindRetailCustomerByID(ctx context.Context, id string) (*RetailCustomer, error)
}

// ErrUnavailable wraps backend failures (connection refused, timeouts).
var ErrUnavailable = errors.New("store: backend unavailable")
