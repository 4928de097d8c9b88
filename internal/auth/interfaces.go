package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenService defines the interface for session token creation and
// validation. Implemented by JWTService (HS256).
type TokenService interface {
	CreateToken(userID uuid.UUID) (string, error)
	VerifyToken(tokenStr string) (uuid.UUID, error)
}

// EmailService defines the interface for out-of-band delivery of reset
// tokens. Delivery failures are logged, never surfaced to the caller.
type EmailService interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, token string) error
}

// RateLimiter defines the interface for request throttling.
// Implemented by ratelimit.Limiter (Redis fixed window).
type RateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip, purpose string) (bool, error)
	RecordIPRequest(ctx context.Context, ip, purpose string) error
	CheckEmailCooldown(ctx context.Context, email string) (bool, error)
	SetEmailCooldown(ctx context.Context, email string) error
}
