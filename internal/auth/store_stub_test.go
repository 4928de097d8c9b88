package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pavandive/tinderlite-api/internal/user"
)

// memStore is an in-memory user.Store for tests
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*user.User)}
}

func (m *memStore) Create(_ context.Context, u *user.User) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, user.ErrDuplicateEmail
		}
	}

	stored := *u
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memStore) GetByResetHash(_ context.Context, tokenHash string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memStore) SetResetToken(_ context.Context, id uuid.UUID, tokenHash string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpires = &expires
	return nil
}

func (m *memStore) ResetPasswordByTokenHash(_ context.Context, tokenHash, passwordHash string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			u.PasswordHash = passwordHash
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
			u.UpdatedAt = time.Now()
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memStore) UpdateProfile(_ context.Context, u *user.User) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[u.ID]
	if !ok {
		return nil, user.ErrNotFound
	}
	existing.FirstName = u.FirstName
	existing.LastName = u.LastName
	existing.Age = u.Age
	existing.Gender = u.Gender
	existing.PhotoURL = u.PhotoURL
	existing.About = u.About
	existing.Skills = u.Skills
	existing.UpdatedAt = time.Now()

	out := *existing
	return &out, nil
}

// expireResetToken backdates any outstanding reset token for the user
func (m *memStore) expireResetToken(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok && u.ResetPasswordExpires != nil {
		past := time.Now().Add(-time.Minute)
		u.ResetPasswordExpires = &past
	}
}

func (m *memStore) delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

// captureEmailService records tokens instead of sending mail. Sends happen
// in a goroutine, so the token is delivered through a channel.
type captureEmailService struct {
	tokens chan string
}

func newCaptureEmailService() *captureEmailService {
	return &captureEmailService{tokens: make(chan string, 8)}
}

func (c *captureEmailService) SendPasswordResetEmail(_ context.Context, _, token string) error {
	c.tokens <- token
	return nil
}
