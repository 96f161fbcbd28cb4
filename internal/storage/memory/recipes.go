package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"menuboard/internal/storage"
)

type recipesStorage struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]*storage.Recipe
}

func newRecipesStorage() *recipesStorage {
	return &recipesStorage{recipes: make(map[uuid.UUID]*storage.Recipe)}
}

func (s *recipesStorage) List(ctx context.Context, ownerUserID string) ([]storage.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recipes []storage.Recipe
	for _, r := range s.recipes {
		if r.OwnerUserID == ownerUserID {
			recipes = append(recipes, *r)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	return recipes, nil
}

func (s *recipesStorage) Get(ctx context.Context, ownerUserID string, id uuid.UUID) (storage.Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok || r.OwnerUserID != ownerUserID {
		return storage.Recipe{}, false, nil
	}
	return *r, true, nil
}

func (s *recipesStorage) Create(ctx context.Context, ownerUserID string, rec storage.NewRecipe) (storage.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	r := &storage.Recipe{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		Name:        rec.Name,
		URL:         rec.URL,
		TimeMinutes: rec.TimeMinutes,
		Notes:       rec.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.recipes[r.ID] = r
	return *r, nil
}

func (s *recipesStorage) Delete(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok || r.OwnerUserID != ownerUserID {
		return nil // nothing to delete within this owner
	}
	delete(s.recipes, id)
	return nil
}
