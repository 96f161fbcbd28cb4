package recipes

import (
	"encoding/json"
	"net/http"
	"strings"

	"menuboard/internal/storage"
	"menuboard/internal/userctx"
)

// Handler handles HTTP requests for recipes.
type Handler struct {
	service *Service
}

// NewHandler creates a new recipes handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/recipes
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	list, err := h.service.List(ctx, owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list recipes")
		return
	}

	resp := ListRecipesResponse{Recipes: make([]RecipeDTO, 0, len(list))}
	for _, rec := range list {
		resp.Recipes = append(resp.Recipes, toDTO(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/recipes/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	rec, found, err := h.service.Get(ctx, owner, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get recipe")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "Recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, toDTO(rec))
}

// HandleCreate handles POST /v1/recipes
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	rec, err := h.service.Create(ctx, owner, req)
	if err != nil {
		errMsg := err.Error()
		if strings.HasPrefix(errMsg, "validation failed: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(errMsg, "validation failed: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, toDTO(rec))
}

// HandleDelete handles DELETE /v1/recipes/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	if err := h.service.Delete(ctx, owner, r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(rec storage.Recipe) RecipeDTO {
	return RecipeDTO{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		URL:         rec.URL,
		TimeMinutes: rec.TimeMinutes,
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
