package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/otp"
	"dealership-backoffice/internal/otp/domain"
	"dealership-backoffice/internal/otp/repository"
)

// DefaultTTL is how long a generated code stays valid.
const DefaultTTL = 5 * time.Minute

// deliverTimeout bounds a single async delivery.
const deliverTimeout = 10 * time.Second

// Notifier hands a plaintext code to an out-of-band channel (log, email, SMS, queue).
type Notifier interface {
	Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error
}

// Limiter throttles code generation per key. Allow returns an error wrapping
// apperr.ErrRateLimited when the key is over its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service generates and validates one-time codes scoped to (user, purpose).
type Service struct {
	repo     repository.Repository
	tx       Transactor
	notifier Notifier
	limiter  Limiter
	random   io.Reader
	now      func() time.Time
	ttl      time.Duration
	newID    func() string

	randMu   sync.Mutex
	inflight sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the delivery channel. Without one, codes are only returned to the caller.
func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

// WithLimiter enables per (user, purpose) send limits.
func WithLimiter(l Limiter) Option { return func(s *Service) { s.limiter = l } }

// WithRandom replaces crypto/rand, e.g. with a seeded source in tests.
func WithRandom(r io.Reader) Option { return func(s *Service) { s.random = r } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService returns an OTP service over repo. tx must cover repo's transactions.
func NewService(repo repository.Repository, tx Transactor, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		tx:     tx,
		random: rand.Reader,
		now:    func() time.Time { return time.Now().UTC() },
		ttl:    DefaultTTL,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate invalidates the active code for (userID, purpose), stores a fresh one and
// schedules its delivery. The returned record carries the plaintext in Plain.
// Delivery runs after commit and its failure never undoes generation.
func (s *Service) Generate(ctx context.Context, userID string, purpose domain.Purpose) (*domain.Code, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidArgument)
	}
	if !purpose.Valid() {
		return nil, fmt.Errorf("%w: unknown otp purpose %q", apperr.ErrInvalidArgument, purpose)
	}
	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, userID+":"+string(purpose)); err != nil {
			return nil, err
		}
	}
	s.randMu.Lock()
	plain, err := otp.GenerateCode(s.random)
	s.randMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	var code *domain.Code
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockPair(ctx, userID, purpose); err != nil {
			return err
		}
		now := s.now()
		if _, err := s.repo.InvalidateActive(ctx, userID, purpose, now); err != nil {
			return err
		}
		c := &domain.Code{
			ID:        s.newID(),
			UserID:    userID,
			Purpose:   purpose,
			CodeHash:  otp.HashCode(plain),
			ExpiresAt: now.Add(s.ttl),
			CreatedAt: now,
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return err
		}
		code = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	code.Plain = plain
	s.deliverAsync(userID, plain, purpose)
	return code, nil
}

// Validate consumes the newest unused code matching (userID, purpose, code). It returns
// false when there is no such code, when it has expired, or when a concurrent caller
// consumed it first. Errors are storage failures only.
func (s *Service) Validate(ctx context.Context, userID, code string, purpose domain.Purpose) (bool, error) {
	if userID == "" || !purpose.Valid() || !otp.WellFormed(code) {
		return false, nil
	}
	c, err := s.repo.FindLatestUnused(ctx, userID, purpose, otp.HashCode(code))
	if err != nil {
		return false, err
	}
	if c == nil || c.ExpiresAt.Before(s.now()) {
		return false, nil
	}
	return s.repo.MarkUsed(ctx, c.ID)
}

// Require is Validate that reports a rejected code as apperr.ErrInvalidOTP.
func (s *Service) Require(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	ok, err := s.Validate(ctx, userID, code, purpose)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrInvalidOTP
	}
	return nil
}

// Wait blocks until all scheduled deliveries have finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (s *Service) deliverAsync(userID, code string, purpose domain.Purpose) {
	if s.notifier == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		if err := s.notifier.Deliver(ctx, userID, code, purpose); err != nil {
			log.Printf("otp: delivery failed user=%s purpose=%s: %v", userID, purpose, err)
		}
	}()
}
