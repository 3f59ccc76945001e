// Package devotp keeps the latest plaintext code per (user, purpose) in memory so a developer
// can fetch it through DevService/GetOTP. Enabled only with OTP_RETURN_TO_CLIENT outside production.
package devotp

import (
	"context"
	"sync"
	"time"

	"dealership-backoffice/internal/otp/domain"
)

// Store holds plain codes for dev-only retrieval.
type Store interface {
	// Put stores code for (userID, purpose) until expiresAt, replacing any earlier code.
	Put(ctx context.Context, userID string, purpose domain.Purpose, code string, expiresAt time.Time)
	// Get returns the code if present and not expired.
	Get(ctx context.Context, userID string, purpose domain.Purpose) (code string, ok bool)
	// Lookup is Get that also reports when the code expires.
	Lookup(ctx context.Context, userID string, purpose domain.Purpose) (code string, expiresAt time.Time, ok bool)
}

type key struct {
	userID  string
	purpose domain.Purpose
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store that also acts as an OTP delivery channel.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[key]entry
	ttl  time.Duration
	nowF func() time.Time
}

// NewMemoryStore returns a store whose Deliver keeps codes for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		m:    make(map[key]entry),
		ttl:  ttl,
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Put stores code for (userID, purpose) until expiresAt.
func (s *MemoryStore) Put(ctx context.Context, userID string, purpose domain.Purpose, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key{userID, purpose}] = entry{code: code, expiresAt: expiresAt}
}

// Get returns the code for (userID, purpose) if present and not expired.
func (s *MemoryStore) Get(ctx context.Context, userID string, purpose domain.Purpose) (string, bool) {
	code, _, ok := s.Lookup(ctx, userID, purpose)
	return code, ok
}

// Lookup returns the code and its expiry. Expired entries are dropped.
func (s *MemoryStore) Lookup(ctx context.Context, userID string, purpose domain.Purpose) (string, time.Time, bool) {
	k := key{userID, purpose}
	s.mu.RLock()
	e, ok := s.m[k]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, false
	}
	if !e.expiresAt.After(s.nowF()) {
		s.mu.Lock()
		delete(s.m, k)
		s.mu.Unlock()
		return "", time.Time{}, false
	}
	return e.code, e.expiresAt, true
}

// Deliver records the code so it can be read back with Get.
func (s *MemoryStore) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	s.Put(ctx, userID, purpose, code, s.nowF().Add(s.ttl))
	return nil
}
