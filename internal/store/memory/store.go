// Package memory holds every repository in process memory behind one transactional store.
// It backs the service tests and the server when DATABASE_URL is empty.
package memory

import (
	"context"
	"maps"
	"sync"

	auditdomain "dealership-backoffice/internal/audit/domain"
	otpdomain "dealership-backoffice/internal/otp/domain"
	purchasedomain "dealership-backoffice/internal/purchase/domain"
	userdomain "dealership-backoffice/internal/user/domain"
	vehicledomain "dealership-backoffice/internal/vehicle/domain"
)

// Store is an in-memory database. Every operation, transactional or not, is serialized on
// one mutex; a transaction holds it from begin to commit, which gives the same isolation
// as the row locks the Postgres repositories take.
type Store struct {
	mu sync.Mutex

	users     map[string]userdomain.User
	vehicles  map[string]vehicledomain.Vehicle
	otps      map[string]otpdomain.Code
	purchases map[string]purchasedomain.Purchase
	audit     []auditdomain.AuditLog
	seq       int64 // insertion order for otps
	otpSeq    map[string]int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:     map[string]userdomain.User{},
		vehicles:  map[string]vehicledomain.Vehicle{},
		otps:      map[string]otpdomain.Code{},
		purchases: map[string]purchasedomain.Purchase{},
		otpSeq:    map[string]int64{},
	}
}

type txKey struct{ s *Store }

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{s}).(bool)
	return v
}

// lock acquires the store unless ctx already belongs to one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users     map[string]userdomain.User
	vehicles  map[string]vehicledomain.Vehicle
	otps      map[string]otpdomain.Code
	purchases map[string]purchasedomain.Purchase
	audit     []auditdomain.AuditLog
	seq       int64
	otpSeq    map[string]int64
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:     maps.Clone(s.users),
		vehicles:  maps.Clone(s.vehicles),
		otps:      maps.Clone(s.otps),
		purchases: maps.Clone(s.purchases),
		audit:     append([]auditdomain.AuditLog(nil), s.audit...),
		seq:       s.seq,
		otpSeq:    maps.Clone(s.otpSeq),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.vehicles = snap.vehicles
	s.otps = snap.otps
	s.purchases = snap.purchases
	s.audit = snap.audit
	s.seq = snap.seq
	s.otpSeq = snap.otpSeq
}

// WithinTx runs fn with exclusive access to the store. Changes made by fn are discarded
// when it returns an error, panics, or ctx is cancelled before it finishes. Nested calls
// join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()
	if err = fn(context.WithValue(ctx, txKey{s}, true)); err != nil {
		return err
	}
	return ctx.Err()
}

// PingContext always succeeds; it lets the store stand in for the database in health checks.
func (s *Store) PingContext(ctx context.Context) error { return ctx.Err() }

// Users returns the user repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Vehicles returns the vehicle repository view.
func (s *Store) Vehicles() *VehicleRepo { return &VehicleRepo{s: s} }

// OTPs returns the one-time code repository view.
func (s *Store) OTPs() *OTPRepo { return &OTPRepo{s: s} }

// Purchases returns the purchase repository view.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{s: s} }

// Audit returns the audit log repository view.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }
