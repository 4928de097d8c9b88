package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavandive/tinderlite-api/internal/logging"
	"github.com/pavandive/tinderlite-api/internal/user"
)

type serviceFixture struct {
	service *Service
	store   *memStore
	tokens  *JWTService
	emails  *captureEmailService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	tokens, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	store := newMemStore()
	emails := newCaptureEmailService()
	logger := logging.NewLogger(true)

	return &serviceFixture{
		service: NewService(store, tokens, emails, logger, 5*time.Minute),
		store:   store,
		tokens:  tokens,
		emails:  emails,
	}
}

func (f *serviceFixture) signup(t *testing.T, email, password string) *user.User {
	t.Helper()
	u, err := f.service.Signup(context.Background(), SignupInput{
		FirstName: "Pavan",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return u
}

func (f *serviceFixture) capturedToken(t *testing.T) string {
	t.Helper()
	select {
	case tok := <-f.emails.tokens:
		return tok
	case <-time.After(2 * time.Second):
		t.Fatal("no reset email sent")
		return ""
	}
}

func TestSignupValidation(t *testing.T) {
	f := newServiceFixture(t)

	tests := []struct {
		name    string
		input   SignupInput
		wantErr error
	}{
		{"missing first name", SignupInput{Email: "a@x.com", Password: "password1"}, ErrFirstNameRequired},
		{"missing email", SignupInput{FirstName: "A", Password: "password1"}, ErrEmailRequired},
		{"bad email", SignupInput{FirstName: "A", Email: "not-an-email", Password: "password1"}, ErrInvalidEmailFormat},
		{"missing password", SignupInput{FirstName: "A", Email: "a@x.com"}, ErrPasswordRequired},
		{"short password", SignupInput{FirstName: "A", Email: "a@x.com", Password: "short"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Signup(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	f := newServiceFixture(t)

	u := f.signup(t, "  Pavan@Example.COM ", "password1")
	assert.Equal(t, "pavan@example.com", u.Email)
	assert.Equal(t, user.DefaultAbout, u.About)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "password1", u.PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)

	f.signup(t, "a@x.com", "password1")
	_, err := f.service.Signup(context.Background(), SignupInput{
		FirstName: "B", Email: "A@X.com", Password: "password2",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	f := newServiceFixture(t)
	created := f.signup(t, "a@x.com", "pw1pw1pw1")

	got, token, err := f.service.Login(context.Background(), "a@x.com", "pw1pw1pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// The minted session token resolves back to the same user
	resolved, err := f.tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved)
}

func TestLoginFailures(t *testing.T) {
	f := newServiceFixture(t)
	f.signup(t, "a@x.com", "pw1pw1pw1")

	// Wrong password and unknown email answer identically
	_, _, err := f.service.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login(context.Background(), "nobody@x.com", "pw1pw1pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newServiceFixture(t)

	// Unknown email is not an error and sends nothing
	err := f.service.RequestPasswordReset(context.Background(), "nobody@x.com")
	require.NoError(t, err)

	select {
	case <-f.emails.tokens:
		t.Fatal("email sent for unknown account")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRequestPasswordResetStoresHashNotToken(t *testing.T) {
	f := newServiceFixture(t)
	created := f.signup(t, "a@x.com", "pw1pw1pw1")

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "a@x.com"))
	raw := f.capturedToken(t)

	stored, err := f.store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpires)

	// The raw token must never be persisted, only its hash
	assert.NotEqual(t, raw, *stored.ResetPasswordToken)
	assert.Equal(t, hashResetToken(raw), *stored.ResetPasswordToken)
	assert.True(t, stored.ResetPasswordExpires.After(time.Now()))
}

func TestResetPasswordFlow(t *testing.T) {
	f := newServiceFixture(t)
	created := f.signup(t, "a@x.com", "pw1pw1pw1")

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "a@x.com"))
	raw := f.capturedToken(t)

	updated, err := f.service.ResetPassword(context.Background(), raw, "newpw123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Nil(t, updated.ResetPasswordToken)
	assert.Nil(t, updated.ResetPasswordExpires)

	// New password works, old one does not
	_, _, err = f.service.Login(context.Background(), "a@x.com", "newpw123")
	require.NoError(t, err)
	_, _, err = f.service.Login(context.Background(), "a@x.com", "pw1pw1pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPasswordSingleUse(t *testing.T) {
	f := newServiceFixture(t)
	f.signup(t, "a@x.com", "pw1pw1pw1")

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "a@x.com"))
	raw := f.capturedToken(t)

	_, err := f.service.ResetPassword(context.Background(), raw, "newpw123")
	require.NoError(t, err)

	// Consumption clears the stored hash, so the same token cannot be replayed
	_, err = f.service.ResetPassword(context.Background(), raw, "anotherpw")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordExpired(t *testing.T) {
	f := newServiceFixture(t)
	created := f.signup(t, "a@x.com", "pw1pw1pw1")

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "a@x.com"))
	raw := f.capturedToken(t)

	f.store.expireResetToken(created.ID)

	// Expired and invalid are indistinguishable to the caller
	_, err := f.service.ResetPassword(context.Background(), raw, "newpw123")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordGarbageToken(t *testing.T) {
	f := newServiceFixture(t)
	f.signup(t, "a@x.com", "pw1pw1pw1")

	_, err := f.service.ResetPassword(context.Background(), "garbage-token", "newpw123")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordValidatesNewPassword(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.ResetPassword(context.Background(), "whatever", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = f.service.ResetPassword(context.Background(), "whatever", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestNewResetTokenProperties(t *testing.T) {
	raw1, hash1, err := newResetToken()
	require.NoError(t, err)
	raw2, hash2, err := newResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hashResetToken(raw1), hash1)
	// 32 bytes of entropy, base64url encoded
	assert.GreaterOrEqual(t, len(raw1), 43)
}
