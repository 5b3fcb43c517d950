package recipes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipeshare-go/apperror"
	"github.com/user/recipeshare-go/auth"
)

// Handlers provides the HTTP handlers for the recipe endpoints.
type Handlers struct {
	service *RecipeService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *RecipeService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the recipe routes on router. Reads are public; every
// write goes through the provided auth guard. The guard is passed in rather
// than constructed here so all protected routes in the application share the
// identical middleware.
func (h *Handlers) RegisterRoutes(router chi.Router, guard func(http.Handler) http.Handler) {
	router.Get("/", h.handleList)
	router.Get("/{id}", h.handleGet)

	router.Group(func(r chi.Router) {
		r.Use(guard)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/favorite", h.handleToggle(KindFavorite))
		r.Delete("/{id}/favorite", h.handleToggle(KindFavorite))
		r.Post("/{id}/want-to-try", h.handleToggle(KindWantToTry))
		r.Delete("/{id}/want-to-try", h.handleToggle(KindWantToTry))
	})
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipes)
}

func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipe)
}

func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	recipe, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, recipe)
}

func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	var req UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	recipe, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipe)
}

func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "Recipe deleted successfully"})
}

// handleToggle builds a toggle handler for the given interaction kind. POST
// and DELETE both route here; the toggle itself decides the direction based on
// current membership, matching the client's optimistic flip.
func (h *Handlers) handleToggle(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
			return
		}

		added, err := h.service.Toggle(r.Context(), userID, chi.URLParam(r, "id"), kind)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		msg := toggleMessage(kind, added)
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: msg})
	}
}

func toggleMessage(kind Kind, added bool) string {
	switch {
	case kind == KindFavorite && added:
		return "Added to favorites"
	case kind == KindFavorite:
		return "Removed from favorites"
	case added:
		return "Added to want to try"
	default:
		return "Removed from want to try"
	}
}
