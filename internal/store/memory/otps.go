package memory

import (
	"context"
	"time"

	otpdomain "dealership-backoffice/internal/otp/domain"
)

// OTPRepo implements the one-time code repository.
type OTPRepo struct{ s *Store }

// LockPair is a no-op; transactions already hold the store lock.
func (r *OTPRepo) LockPair(ctx context.Context, userID string, purpose otpdomain.Purpose) error {
	return nil
}

func (r *OTPRepo) InvalidateActive(ctx context.Context, userID string, purpose otpdomain.Purpose, now time.Time) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, c := range r.s.otps {
		if c.UserID == userID && c.Purpose == purpose && c.Active(now) {
			c.IsUsed = true
			r.s.otps[id] = c
			n++
		}
	}
	return n, nil
}

func (r *OTPRepo) Create(ctx context.Context, c *otpdomain.Code) error {
	defer r.s.lock(ctx)()
	stored := *c
	stored.Plain = ""
	r.s.otps[c.ID] = stored
	r.s.seq++
	r.s.otpSeq[c.ID] = r.s.seq
	return nil
}

func (r *OTPRepo) FindLatestUnused(ctx context.Context, userID string, purpose otpdomain.Purpose, codeHash string) (*otpdomain.Code, error) {
	defer r.s.lock(ctx)()
	var best *otpdomain.Code
	for _, c := range r.s.otps {
		if c.UserID != userID || c.Purpose != purpose || c.CodeHash != codeHash || c.IsUsed {
			continue
		}
		if best == nil || newer(r.s, &c, best) {
			c := c
			best = &c
		}
	}
	return best, nil
}

func newer(s *Store, a, b *otpdomain.Code) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return s.otpSeq[a.ID] > s.otpSeq[b.ID]
}

func (r *OTPRepo) MarkUsed(ctx context.Context, id string) (bool, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.otps[id]
	if !ok || c.IsUsed {
		return false, nil
	}
	c.IsUsed = true
	r.s.otps[id] = c
	return true, nil
}

// ActiveCount returns how many codes for the pair are unused and unexpired at now.
func (r *OTPRepo) ActiveCount(userID string, purpose otpdomain.Purpose, now time.Time) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.otps {
		if c.UserID == userID && c.Purpose == purpose && c.Active(now) {
			n++
		}
	}
	return n
}
