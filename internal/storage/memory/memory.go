// Package memory provides the in-memory storage backend. It serves two
// purposes: a zero-setup dev mode when no database is configured, and the
// test double injected into the board in package tests.
package memory

import (
	"errors"

	"menuboard/internal/storage"
)

var ErrNotFound = errors.New("record not found")

// Storage is the in-memory implementation of storage.Store.
type Storage struct {
	plans   *planStorage
	recipes *recipesStorage
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		plans:   newPlanStorage(),
		recipes: newRecipesStorage(),
	}
}

func (s *Storage) Plans() storage.PlanStorage { return s.plans }

func (s *Storage) Recipes() storage.RecipesStorage { return s.recipes }

func (s *Storage) Close() error { return nil }
