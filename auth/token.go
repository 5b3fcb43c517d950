package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/recipeshare-go/config"
)

const tokenIssuer = "recipeshare"

// Token verification failures. Each maps to a 401 at the HTTP boundary; the
// distinction matters for callers and tests, not for clients.
var (
	// ErrTokenMalformed means the token could not be parsed or decoded.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature means the token's signature does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired means the token's expiry timestamp has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenRevoked means the token was invalidated by logout before expiry.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims is the JWT payload. The subject carries the user ID and the token ID
// (jti) keys the revocation table.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. Tokens are stateless
// HS256 JWTs; revocation on logout is tracked server-side by jti, so a token is
// valid iff its signature checks out, it has not expired, and its jti has not
// been revoked.
type TokenService struct {
	cfg         config.AuthConfig
	revocations RevocationStore
}

// NewTokenService creates a TokenService signing with cfg.JWTSecret and
// consulting revocations on verify.
func NewTokenService(cfg config.AuthConfig, revocations RevocationStore) *TokenService {
	return &TokenService{cfg: cfg, revocations: revocations}
}

// IssueToken produces a signed token bound to userID, valid for the configured
// duration. The random jti keeps two tokens issued in the same instant for the
// same user distinct.
func (s *TokenService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature, expiry and revocation, and returns the subject
// user ID on success. An expired token always reports ErrTokenExpired, never
// ErrTokenSignature.
func (s *TokenService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return "", err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	return claims.Subject, nil
}

// RevokeToken invalidates a still-valid token. The jti is recorded until the
// token's natural expiry, after which the row is dead weight and gets purged by
// the store. Revocation is idempotent: revoking an already revoked token is a
// no-op success.
func (s *TokenService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return err
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// parseClaims decodes and validates the token string, mapping jwt/v5 errors
// onto the package's failure taxonomy.
func (s *TokenService) parseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
