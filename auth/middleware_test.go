package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipeshare-go/config"
)

func guardedProbe(tokens *TokenService) (http.Handler, *bool, *string) {
	invoked := false
	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		seenUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(tokens)(inner), &invoked, &seenUserID
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	handler, invoked, _ := guardedProbe(ts)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	// The wrapped handler must not run, so no side effects can occur.
	assert.False(t, *invoked)
}

func TestRequireAuth_BadScheme(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	token, err := ts.IssueToken("u1")
	require.NoError(t, err)

	cases := map[string]string{
		"basic scheme": "Basic " + token,
		"no scheme":    token,
		"empty token":  "Bearer ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			handler, invoked, _ := guardedProbe(ts)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			assert.False(t, *invoked)
		})
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	expired := newTestTokenService(-time.Second)
	expiredToken, err := expired.IssueToken("u1")
	require.NoError(t, err)

	forged, err := NewTokenService(config.AuthConfig{
		JWTSecret:     "attacker-secret",
		TokenDuration: time.Hour,
	}, newMemRevocationStore()).IssueToken("u1")
	require.NoError(t, err)

	revokedToken, err := ts.IssueToken("u1")
	require.NoError(t, err)
	require.NoError(t, ts.RevokeToken(context.Background(), revokedToken))

	cases := map[string]string{
		"malformed": "garbage",
		"expired":   expiredToken,
		"forged":    forged,
		"revoked":   revokedToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			handler, invoked, _ := guardedProbe(ts)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			assert.False(t, *invoked)
		})
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	token, err := ts.IssueToken("user-42")
	require.NoError(t, err)

	handler, invoked, seenUserID := guardedProbe(ts)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *invoked)
	assert.Equal(t, "user-42", *seenUserID)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc.def.ghi")

	// Scheme matching is case-insensitive.
	token, ok := BearerToken(req)
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}
