// Package pg is the PostgreSQL AccountRepository.
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store"
)

// PoolConfig ajusta el pool de pgx. Los ceros dejan los defaults de pgx.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime string
}

type Store struct{ pool *pgxpool.Pool }

var _ store.AccountRepository = (*Store)(nil)

// New abre el pool y hace ping.
func New(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &Store{pool: pool}, nil
}

// NewFromPool envuelve un pool existente.
func NewFromPool(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Pool expone el pool interno (metrics/migraciones).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) FindRegisteredAccountByID(ctx context.Context, id string) (*store.Account, error) {
	id, ok := normalizeID(id)
	if !ok {
		return nil, nil
	}
	const q = `
		SELECT id::text, email, company_name, contact_person, preferred_lang
		FROM reseller_account
		WHERE id = $1
	`
	var a store.Account
	err := s.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Email, &a.CompanyName, &a.ContactPerson, &a.PreferredLanguage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &a, nil
}

func (s *Store) FindRetailCustomerByID(ctx context.Context, id string) (*store.RetailCustomer, error) {
	id, ok := normalizeID(id)
	if !ok {
		return nil, nil
	}
	const q = `
		SELECT id::text, email, first_name, last_name, preferred_lang
		FROM retail_customer
		WHERE id = $1
	`
	var c store.RetailCustomer
	err := s.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.PreferredLanguage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &c, nil
}

// normalizeID rejects ids that cannot be a row key, so the lookup reports
// absence instead of a cast error.
func normalizeID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}
