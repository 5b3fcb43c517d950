package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/user/recipeshare-go/apperror"
)

// memUserStore is an in-memory UserStore for tests. The mutex gives it the
// same winner-picks-one semantics under concurrent duplicate creates as the
// database unique index.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*User // by ID
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*User)}
}

func (m *memUserStore) Create(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return apperror.NewConflictError("username already exists", nil)
		}
		if existing.Email != nil && user.Email != nil && strings.EqualFold(*existing.Email, *user.Email) {
			return apperror.NewConflictError("email already exists", nil)
		}
	}
	user.CreatedAt = time.Now().UTC()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

// memRevocationStore is an in-memory RevocationStore for tests.
type memRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemRevocationStore() *memRevocationStore {
	return &memRevocationStore{revoked: make(map[string]time.Time)}
}

func (m *memRevocationStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = expiresAt
	return nil
}

func (m *memRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}
