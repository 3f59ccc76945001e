package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealership-backoffice/internal/apperr"
	otpdomain "dealership-backoffice/internal/otp/domain"
	"dealership-backoffice/internal/security"
	userdomain "dealership-backoffice/internal/user/domain"
	userrepo "dealership-backoffice/internal/user/repository"
)

// Sentinel errors for auth service; handlers map them through apperr.
var (
	ErrEmailAlreadyRegistered = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	ErrInvalidCredentials     = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
)

// OTPMessage is returned to clients after a code has been sent.
const OTPMessage = "OTP sent. Please verify."

// AuthResult holds the outcome of a verified register or login step.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
	Role        userdomain.Role
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	SetStatus(ctx context.Context, id string, status userdomain.UserStatus) error
	ListByRole(ctx context.Context, role userdomain.Role) ([]*userdomain.User, error)
}

// OTPs issues and consumes register and login codes.
type OTPs interface {
	Generate(ctx context.Context, userID string, purpose otpdomain.Purpose) (*otpdomain.Code, error)
	Require(ctx context.Context, userID, code string, purpose otpdomain.Purpose) error
}

// AuthService implements the two-step OTP register and login flows.
type AuthService struct {
	userRepo UserRepo
	otps     OTPs
	hasher   *security.Hasher
	tokens   *security.TokenProvider
	now      func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(userRepo UserRepo, otps OTPs, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otps:     otps,
		hasher:   hasher,
		tokens:   tokens,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRequestOTP creates a pending customer and sends a register code. Returns the
// user id to verify against. A pending registration for the same email and password is
// resumed with a fresh code instead of failing.
func (s *AuthService) RegisterRequestOTP(ctx context.Context, email, password, fullName, phone string) (string, error) {
	email = userdomain.NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if err := validateEmail(email); err != nil {
		return "", invalid(err)
	}
	if err := validatePassword(password); err != nil {
		return "", invalid(err)
	}
	if fullName == "" {
		return "", invalid(errors.New("full name is required"))
	}
	if len(fullName) > maxFullName {
		return "", invalid(fmt.Errorf("full name must be at most %d characters", maxFullName))
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if existing.Status != userdomain.UserStatusPending ||
			s.hasher.Compare(existing.PasswordHash, []byte(password)) != nil {
			return "", ErrEmailAlreadyRegistered
		}
		if _, err := s.otps.Generate(ctx, existing.ID, otpdomain.PurposeRegister); err != nil {
			return "", err
		}
		return existing.ID, nil
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return "", err
	}
	now := s.now()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hashed,
		Role:         userdomain.RoleCustomer,
		Status:       userdomain.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return "", invalid(err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return "", ErrEmailAlreadyRegistered
		}
		return "", err
	}
	log.Printf("auth: registered pending user %s", user.ID)
	if _, err := s.otps.Generate(ctx, user.ID, otpdomain.PurposeRegister); err != nil {
		return "", err
	}
	return user.ID, nil
}

// RegisterVerifyOTP consumes the register code, activates the user and issues a token.
func (s *AuthService) RegisterVerifyOTP(ctx context.Context, userID, code string) (*AuthResult, error) {
	if err := s.otps.Require(ctx, userID, code, otpdomain.PurposeRegister); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status == userdomain.UserStatusDisabled {
		return nil, ErrInvalidCredentials
	}
	if user.Status == userdomain.UserStatusPending {
		if err := s.userRepo.SetStatus(ctx, user.ID, userdomain.UserStatusActive); err != nil {
			return nil, err
		}
		log.Printf("auth: activated user %s", user.ID)
	}
	return s.issue(user)
}

// LoginRequestOTP checks the credentials of an active user and sends a login code.
// Unknown emails, wrong passwords and inactive accounts all fail with ErrInvalidCredentials.
func (s *AuthService) LoginRequestOTP(ctx context.Context, email, password string) (string, error) {
	email = userdomain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		s.hasher.CompareDummy([]byte(password))
		return "", ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if user.Status != userdomain.UserStatusActive {
		return "", ErrInvalidCredentials
	}
	if _, err := s.otps.Generate(ctx, user.ID, otpdomain.PurposeLogin); err != nil {
		return "", err
	}
	return user.ID, nil
}

// LoginVerifyOTP consumes the login code and issues a token.
func (s *AuthService) LoginVerifyOTP(ctx context.Context, userID, code string) (*AuthResult, error) {
	if err := s.otps.Require(ctx, userID, code, otpdomain.PurposeLogin); err != nil {
		return nil, err
	}
	return s.IssueAuthToken(ctx, userID)
}

// IssueAuthToken signs an access token for an active user carrying the user's role.
func (s *AuthService) IssueAuthToken(ctx context.Context, userID string) (*AuthResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != userdomain.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// ListCustomers returns every customer ordered by full name.
func (s *AuthService) ListCustomers(ctx context.Context) ([]*userdomain.User, error) {
	return s.userRepo.ListByRole(ctx, userdomain.RoleCustomer)
}

func (s *AuthService) issue(user *userdomain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.IssueAccess(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, UserID: user.ID, Role: user.Role}, nil
}

const maxFullName = 100

func invalid(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return errors.New("password must be at most 72 bytes")
	}
	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasNumber = true
		}
	}
	if !hasLetter {
		return errors.New("password must contain at least one letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}
	return nil
}
