// HTTP handlers for the auth endpoints. Handlers decode and validate request
// payloads, delegate to AuthService, and format JSON responses; the shared
// WriteJSON/WriteError helpers live here and are reused by the other feature
// packages.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/user/recipeshare-go/apperror"
)

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleSignup handles POST /api/auth/signup. Returns 201 with {token, user}.
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if req.Username == "" || req.Password == "" {
			WriteError(w, r, apperror.NewValidationError("username and password are required", nil))
			return
		}

		resp, err := h.service.Signup(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin handles POST /api/auth/login. Returns 200 with {token, user},
// 401 on bad credentials.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleDemoLogin handles POST /api/auth/demo-login. Provisions an ephemeral
// demo account and returns 200 with {token, user}.
func (h *Handlers) HandleDemoLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.DemoLogin(r.Context())
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMe handles GET /api/auth/me (bearer-guarded). Returns the resolved
// current user.
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
			return
		}

		user, err := h.service.CurrentUser(r.Context(), userID)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, UserResponse{User: user})
	}
}

// HandleLogout handles POST /api/auth/logout (bearer-guarded). Revokes the
// presented token; subsequent requests with it fail verification.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := BearerToken(r)
		if !ok {
			WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
			return
		}

		if err := h.service.Logout(r.Context(), tokenString); err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// WriteError converts any error into the standardized {"error": message}
// response. Errors that are not *AppError degrade to a generic 500 without
// exposing internal detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
