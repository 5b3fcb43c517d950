// Package auth is responsible for authentication and authorization logic:
// signup, login, demo accounts, token issuance and verification, and
// revocation on logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/recipeshare-go/apperror"
)

// AuthService implements the authentication flows over a UserStore and a
// TokenService. All credential failures surface as the same generic 401 so the
// API does not reveal whether a username exists.
type AuthService struct {
	users  UserStore
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Tokens exposes the token service, used by the middleware wiring in main.
func (s *AuthService) Tokens() *TokenService {
	return s.tokens
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(username, password string) error {
	if len(username) < 3 || len(username) > 24 {
		return apperror.NewValidationError("username must be 3-24 characters", nil)
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return apperror.NewValidationError("username: letters, numbers, underscore only", nil)
		}
	}
	if len(password) < 6 || len(password) > 100 {
		return apperror.NewValidationError("password must be 6-100 characters", nil)
	}
	return nil
}

// Signup creates a new user with a bcrypt-hashed password and returns a fresh
// token alongside it. The raw password is hashed before it touches the store
// and is never logged.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validateSignup(req.Username, req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: string(hashedPassword),
	}
	if req.Email != "" {
		email := normalizeEmail(req.Email)
		user.Email = &email
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Taken usernames and emails are a client error, not a conflict on a
		// resource the client owns.
		if apperror.IsConflictError(err) {
			return nil, apperror.NewBadRequestError("User already exists", err)
		}
		return nil, err
	}

	return s.respondWithToken(user)
}

// Login verifies username/password credentials. Unknown usernames, wrong
// passwords and demo accounts all fail identically.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewValidationError("username and password are required", nil)
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		log.Error().Err(err).Msg("failed to look up user during login")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	// Demo accounts have no password and are only reachable via demo-login.
	if user.IsDemo || user.HashedPassword == "" {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.respondWithToken(user)
}

// DemoLogin provisions an ephemeral passwordless account and logs it in. A
// generated username can collide with an existing row, so creation retries
// with a fresh name instead of surfacing the conflict.
func (s *AuthService) DemoLogin(ctx context.Context) (*AuthResponse, error) {
	var user *User
	for attempt := 0; ; attempt++ {
		user = &User{
			ID:       uuid.NewString(),
			Username: "demo-" + uuid.NewString()[:8],
			IsDemo:   true,
		}
		err := s.users.Create(ctx, user)
		if err == nil {
			break
		}
		if apperror.IsConflictError(err) && attempt < 4 {
			continue
		}
		return nil, err
	}
	return s.respondWithToken(user)
}

// CurrentUser resolves the authenticated user's account. A valid token whose
// user has vanished is treated as an auth failure, not a 404.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("Unauthorized", err)
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token. The transition is one-way: once revoked,
// the token fails verification until (and past) its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	if err := s.tokens.RevokeToken(ctx, tokenString); err != nil {
		if errors.Is(err, ErrTokenMalformed) || errors.Is(err, ErrTokenSignature) ||
			errors.Is(err, ErrTokenExpired) {
			return apperror.NewAuthError("Unauthorized", err)
		}
		return apperror.NewInternalError("failed to log out", err)
	}
	return nil
}

func (s *AuthService) respondWithToken(user *User) (*AuthResponse, error) {
	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}
