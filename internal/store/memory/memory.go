// Package memory is an in-process AccountRepository, seeded from YAML for
// local development and used as the fake in tests.
package memory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store"
)

type Repo struct {
	mu       sync.RWMutex
	accounts map[string]store.Account
	retail   map[string]store.RetailCustomer
}

var _ store.AccountRepository = (*Repo)(nil)

func New() *Repo {
	return &Repo{
		accounts: map[string]store.Account{},
		retail:   map[string]store.RetailCustomer{},
	}
}

// Seed is the YAML shape read by LoadSeedFile.
type Seed struct {
	Accounts        []store.Account        `yaml:"accounts"`
	RetailCustomers []store.RetailCustomer `yaml:"retail_customers"`
}

// LoadSeedFile builds a Repo from a YAML seed file.
func LoadSeedFile(path string) (*Repo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("memory store: parse seed %s: %w", path, err)
	}
	r := New()
	for _, a := range s.Accounts {
		r.PutAccount(a)
	}
	for _, c := range s.RetailCustomers {
		r.PutRetailCustomer(c)
	}
	return r, nil
}

func (r *Repo) PutAccount(a store.Account) {
	r.mu.Lock()
	r.accounts[strings.TrimSpace(a.ID)] = a
	r.mu.Unlock()
}

func (r *Repo) PutRetailCustomer(c store.RetailCustomer) {
	r.mu.Lock()
	r.retail[strings.TrimSpace(c.ID)] = c
	r.mu.Unlock()
}

func (r *Repo) FindRegisteredAccountByID(_ context.Context, id string) (*store.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[strings.TrimSpace(id)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Repo) FindRetailCustomerByID(_ context.Context, id string) (*store.RetailCustomer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.retail[strings.TrimSpace(id)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
