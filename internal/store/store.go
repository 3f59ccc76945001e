// Package store selects the persistence backend: Postgres when a DSN is configured and the
// in-memory store otherwise.
package store

import (
	"context"
	"database/sql"

	auditrepo "dealership-backoffice/internal/audit/repository"
	"dealership-backoffice/internal/db"
	otprepo "dealership-backoffice/internal/otp/repository"
	purchaserepo "dealership-backoffice/internal/purchase/repository"
	"dealership-backoffice/internal/store/memory"
	userrepo "dealership-backoffice/internal/user/repository"
	vehiclerepo "dealership-backoffice/internal/vehicle/repository"
)

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger checks that the backend is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Backend groups the repositories of one storage backend.
type Backend struct {
	Users     userrepo.Repository
	Vehicles  vehiclerepo.Repository
	Purchases purchaserepo.Repository
	OTPs      otprepo.Repository
	Audit     auditrepo.Repository
	Tx        Transactor
	Pinger    Pinger
	// InMemory is true when nothing is persisted.
	InMemory bool
	close    func() error
}

// Close releases the underlying connection pool, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to Postgres at dsn, or returns an in-memory backend when dsn is empty.
func Open(dsn string) (*Backend, error) {
	if dsn == "" {
		return Memory(memory.New()), nil
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return nil, err
	}
	return Postgres(conn), nil
}

// Postgres returns a backend over conn.
func Postgres(conn *sql.DB) *Backend {
	return &Backend{
		Users:     userrepo.NewPostgresRepository(conn),
		Vehicles:  vehiclerepo.NewPostgresRepository(conn),
		Purchases: purchaserepo.NewPostgresRepository(conn),
		OTPs:      otprepo.NewPostgresRepository(conn),
		Audit:     auditrepo.NewPostgresRepository(conn),
		Tx:        db.NewTransactor(conn),
		Pinger:    conn,
		close:     conn.Close,
	}
}

// Memory returns a backend over m.
func Memory(m *memory.Store) *Backend {
	return &Backend{
		Users:     m.Users(),
		Vehicles:  m.Vehicles(),
		Purchases: m.Purchases(),
		OTPs:      m.OTPs(),
		Audit:     m.Audit(),
		Tx:        m,
		Pinger:    m,
		InMemory:  true,
	}
}
