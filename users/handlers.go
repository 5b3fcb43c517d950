package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipeshare-go/apperror"
	"github.com/user/recipeshare-go/auth"
)

// UserHandlers provides the HTTP handlers for the /api/users endpoints.
// Every route here is bearer-guarded; the guard is applied by the caller of
// RegisterRoutes.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the user routes on router.
func (h *UserHandlers) RegisterRoutes(router chi.Router) {
	router.Put("/profile", h.handleUpdateProfile)
	router.Get("/interactions", h.handleInteractions)
	router.Get("/my-recipes", h.handleMyRecipes)
	router.Get("/favorites", h.handleFavorites)
	router.Get("/want-to-try", h.handleWantToTry)
}

func (h *UserHandlers) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandlers) handleInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	resp, err := h.service.Interactions(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, resp)
}

func (h *UserHandlers) handleMyRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	recipeList, err := h.service.MyRecipes(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipeList)
}

func (h *UserHandlers) handleFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	recipeList, err := h.service.Favorites(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipeList)
}

func (h *UserHandlers) handleWantToTry(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	recipeList, err := h.service.WantToTry(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipeList)
}
