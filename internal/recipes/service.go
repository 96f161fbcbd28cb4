package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"menuboard/internal/storage"
)

// Service handles recipe business logic.
type Service struct {
	storage storage.RecipesStorage
}

// NewService creates a new recipes service.
func NewService(storage storage.RecipesStorage) *Service {
	return &Service{storage: storage}
}

// List returns the owner's recipes, newest first.
func (s *Service) List(ctx context.Context, ownerUserID string) ([]storage.Recipe, error) {
	return s.storage.List(ctx, ownerUserID)
}

// Get returns one recipe. bool=false means not found.
func (s *Service) Get(ctx context.Context, ownerUserID string, id string) (storage.Recipe, bool, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return storage.Recipe{}, false, nil
	}
	return s.storage.Get(ctx, ownerUserID, recipeID)
}

// Create validates and stores a new recipe.
func (s *Service) Create(ctx context.Context, ownerUserID string, req CreateRecipeRequest) (storage.Recipe, error) {
	if err := req.Validate(); err != nil {
		return storage.Recipe{}, fmt.Errorf("validation failed: %w", err)
	}

	return s.storage.Create(ctx, ownerUserID, storage.NewRecipe{
		Name:        strings.TrimSpace(req.Name),
		URL:         strings.TrimSpace(req.URL),
		TimeMinutes: req.TimeMinutes,
		Notes:       req.Notes,
	})
}

// Delete removes a recipe. Slot entries referencing it keep their display
// name; the persistence layer nulls the dangling reference.
func (s *Service) Delete(ctx context.Context, ownerUserID string, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid recipe id: %w", err)
	}
	return s.storage.Delete(ctx, ownerUserID, recipeID)
}
