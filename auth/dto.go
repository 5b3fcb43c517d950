// Package auth provides authentication and authorization functionality.
// This file defines the request and response payloads for the auth endpoints.
package auth

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup, login and demo-login: the bearer token
// together with the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserResponse wraps the current user for GET /api/auth/me.
type UserResponse struct {
	User *User `json:"user"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}
