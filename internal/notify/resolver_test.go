package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store/memory"
)

func seededRepo() *memory.Repo {
	r := memory.New()
	r.PutAccount(store.Account{
		ID:                "acct-1",
		Email:             "buyer@fiske.se",
		CompanyName:       "Fiske AB",
		ContactPerson:     "Erik Lund",
		PreferredLanguage: "sv-SE",
	})
	r.PutAccount(store.Account{ID: "acct-noemail", CompanyName: "Tom AB"})
	r.PutRetailCustomer(store.RetailCustomer{
		ID:                "cust-1",
		Email:             "anna@example.com",
		FirstName:         "Anna",
		LastName:          "Svensson",
		PreferredLanguage: "en-US",
	})
	return r
}

// failingRepo returns err from every lookup.
type failingRepo struct{ err error }

func (f failingRepo) FindRegisteredAccountByID(context.Context, string) (*store.Account, error) {
	return nil, f.err
}

func (f failingRepo) FindRetailCustomerByID(context.Context, string) (*store.RetailCustomer, error) {
	return nil, f.err
}

func TestResolve_RegisteredAccount(t *testing.T) {
	r := NewResolver(seededRepo(), "")
	got, err := r.Resolve(context.Background(), EventContext{
		ExplicitUserID:   "acct-1",
		RetailCustomerID: "cust-1",
		ContactInfo:      &ContactInfo{Email: "other@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, RegisteredBusiness, got.AccountClass)
	assert.Equal(t, "buyer@fiske.se", got.Email)
	assert.Equal(t, "Fiske AB", got.OrganizationName)
	assert.Equal(t, "Erik Lund", got.ContactPersonName)
	assert.Equal(t, "Erik Lund", got.DisplayName)
	assert.Equal(t, "sv-SE", got.PreferredLanguage)
}

func TestResolve_RetailCustomer(t *testing.T) {
	r := NewResolver(seededRepo(), "")
	got, err := r.Resolve(context.Background(), EventContext{ExplicitUserID: "missing", RetailCustomerID: "cust-1"})
	require.NoError(t, err)
	assert.Equal(t, Retail, got.AccountClass)
	assert.Equal(t, "anna@example.com", got.Email)
	assert.Equal(t, "Anna Svensson", got.DisplayName)
	assert.Equal(t, "en-US", got.PreferredLanguage)
}

func TestResolve_GuestFallback(t *testing.T) {
	r := NewResolver(seededRepo(), "")
	cases := []struct {
		name string
		ec   EventContext
		want string
	}{
		{"no ids", EventContext{ContactInfo: &ContactInfo{Email: "a@b.com", FirstName: "Kim", LastName: "Ek"}}, "Kim Ek"},
		{"unknown account", EventContext{ExplicitUserID: "nope", ContactInfo: &ContactInfo{Email: "a@b.com", Name: "Kim"}}, "Kim"},
		{"account without email", EventContext{ExplicitUserID: "acct-noemail", ContactInfo: &ContactInfo{Email: "a@b.com", FirstName: "Kim"}}, "Kim"},
		{"only last name", EventContext{ContactInfo: &ContactInfo{Email: "a@b.com", LastName: "Ek"}}, "Ek"},
		{"no name sv", EventContext{ContactInfo: &ContactInfo{Email: "a@b.com"}}, "Kund"},
		{"no name en", EventContext{RequestedLanguage: "en-GB", ContactInfo: &ContactInfo{Email: "a@b.com"}}, "Customer"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), c.ec)
			require.NoError(t, err)
			assert.Equal(t, Guest, got.AccountClass)
			assert.Equal(t, "a@b.com", got.Email)
			assert.Equal(t, c.want, got.DisplayName)
			assert.Empty(t, got.PreferredLanguage)
		})
	}
}

func TestResolve_NotResolvable(t *testing.T) {
	r := NewResolver(seededRepo(), "")
	for _, ec := range []EventContext{
		{},
		{ExplicitUserID: "nope", RetailCustomerID: "nope"},
		{ContactInfo: &ContactInfo{Name: "No Email"}},
		{ContactInfo: &ContactInfo{Email: "   "}},
	} {
		_, err := r.Resolve(context.Background(), ec)
		require.Error(t, err)
		assert.Equal(t, KindIdentityNotResolvable, KindOf(err))
	}
}

func TestResolve_StorageErrorFallsBackToContact(t *testing.T) {
	boom := errors.Join(store.ErrUnavailable, errors.New("conn reset"))
	r := NewResolver(failingRepo{err: boom}, "")

	got, err := r.Resolve(context.Background(), EventContext{ExplicitUserID: "acct-1", ContactInfo: &ContactInfo{Email: "a@b.com"}})
	require.NoError(t, err)
	assert.Equal(t, Guest, got.AccountClass)

	_, err = r.Resolve(context.Background(), EventContext{ExplicitUserID: "acct-1"})
	require.Error(t, err)
	assert.Equal(t, KindIdentityNotResolvable, KindOf(err))
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestResolve_NilRepository(t *testing.T) {
	r := NewResolver(nil, "")
	got, err := r.Resolve(context.Background(), EventContext{ExplicitUserID: "acct-1", ContactInfo: &ContactInfo{Email: "a@b.com"}})
	require.NoError(t, err)
	assert.Equal(t, Guest, got.AccountClass)
}

func TestEffectiveLanguage(t *testing.T) {
	assert.Equal(t, "en-GB", EffectiveLanguage("en-GB", "sv-SE", "de-DE"))
	assert.Equal(t, "sv-SE", EffectiveLanguage(" ", "sv-SE", "de-DE"))
	assert.Equal(t, "de-DE", EffectiveLanguage("", "", "de-DE"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, "sv-SE", EffectiveLanguage("", "", ""))
	}
}

func TestGuestName(t *testing.T) {
	assert.Equal(t, "Anna Svensson", GuestName(" Anna ", "Svensson", "Ignored", "sv"))
	assert.Equal(t, "Anna", GuestName("Anna", "", "", "sv"))
	assert.Equal(t, "A. S.", GuestName("", "", " A. S. ", "sv"))
	assert.Equal(t, "Kund", GuestName("", "", "", "sv-SE"))
	assert.Equal(t, "Customer", GuestName("", "", "", "fi-FI"))
}
