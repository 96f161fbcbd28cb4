package recipes

import (
	"fmt"
	"strings"
	"time"
)

// RecipeDTO is the wire shape of a recipe.
type RecipeDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	TimeMinutes int       `json:"time_minutes,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	TimeMinutes int    `json:"time_minutes,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Validate checks the creation payload.
func (r *CreateRecipeRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > 200 {
		return fmt.Errorf("name must be at most 200 characters")
	}
	if r.TimeMinutes < 0 {
		return fmt.Errorf("time_minutes must not be negative")
	}
	return nil
}

// ListRecipesResponse wraps the recipe list.
type ListRecipesResponse struct {
	Recipes []RecipeDTO `json:"recipes"`
}
