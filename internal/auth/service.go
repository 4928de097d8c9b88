package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pavandive/tinderlite-api/internal/logging"
	"github.com/pavandive/tinderlite-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFirstNameRequired  = errors.New("first name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")

	// Invalid and expired reset tokens are deliberately indistinguishable
	// so the response never reveals which failure occurred.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
)

// Service handles authentication business logic
type Service struct {
	store         user.Store
	tokens        TokenService
	emailService  EmailService
	logger        *logging.Logger
	resetTokenTTL time.Duration
}

func NewService(
	store user.Store,
	tokens TokenService,
	emailService EmailService,
	logger *logging.Logger,
	resetTokenTTL time.Duration,
) *Service {
	return &Service{
		store:         store,
		tokens:        tokens,
		emailService:  emailService,
		logger:        logger,
		resetTokenTTL: resetTokenTTL,
	}
}

// SignupInput carries the fields accepted at signup. Profile fields other
// than the name are filled in later through profile editing.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup validates the input, hashes the password and creates the user
func (s *Service) Signup(ctx context.Context, in SignupInput) (*user.User, error) {
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, ErrFirstNameRequired
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.store.Create(ctx, &user.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		About:        user.DefaultAbout,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates a user and mints a session token
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Unknown email and wrong password answer identically
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(password, existing.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	return existing, token, nil
}

// RequestPasswordReset mints a reset token for the account, stores its hash
// with an expiry and hands the raw token to the email collaborator. An
// unknown email is not an error; only store failures surface, so the
// handler's response stays identical whether or not the account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existing, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user for password reset: %w", err)
	}

	raw, hash, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(s.resetTokenTTL)
	if err := s.store.SetResetToken(ctx, existing.ID, hash, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Delivery is out-of-band; a fresh context avoids request cancellation
	go func() {
		emailCtx := context.Background()
		if err := s.emailService.SendPasswordResetEmail(emailCtx, existing.Email, raw); err != nil {
			s.logger.Warn("failed to send password reset email", "email", existing.Email, "error", err)
		}
	}()

	return nil
}

// ResetPassword consumes a reset token and sets the new password. The
// token hash match, expiry check, password update and clearing of the
// reset fields happen in one conditional store update, so a token can be
// consumed at most once even under concurrent attempts.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) (*user.User, error) {
	if newPassword == "" {
		return nil, ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash := hashResetToken(rawToken)

	if _, err := s.store.GetByResetHash(ctx, hash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.store.ResetPasswordByTokenHash(ctx, hash, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Token expired or was consumed between the lookup and here
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	return updated, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(email) > 254 {
		return "", ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmailFormat
	}
	return email, nil
}
