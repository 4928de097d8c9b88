package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the credential store consumed by the auth and profile layers.
// Implemented by Repository; tests substitute an in-memory version.
type Store interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByResetHash matches only rows whose reset token is still unexpired.
	GetByResetHash(ctx context.Context, tokenHash string) (*User, error)

	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error

	// ResetPasswordByTokenHash sets the new password hash and clears the
	// reset fields in one conditional update. It succeeds only if the
	// stored hash still matches and has not expired, so two racing
	// consumers of the same token cannot both win.
	ResetPasswordByTokenHash(ctx context.Context, tokenHash, passwordHash string) (*User, error)

	UpdateProfile(ctx context.Context, u *User) (*User, error)
}
