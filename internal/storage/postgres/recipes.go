package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"menuboard/internal/storage"
)

type recipesStorage struct {
	pool *pgxpool.Pool
}

func newRecipesStorage(pool *pgxpool.Pool) *recipesStorage {
	return &recipesStorage{pool: pool}
}

func (s *recipesStorage) List(ctx context.Context, ownerUserID string) ([]storage.Recipe, error) {
	query := `
		SELECT id, owner_user_id, name, url, time_minutes, notes, created_at, updated_at
		FROM recipes
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []storage.Recipe
	for rows.Next() {
		var r storage.Recipe
		if err := rows.Scan(&r.ID, &r.OwnerUserID, &r.Name, &r.URL, &r.TimeMinutes, &r.Notes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", rows.Err())
	}

	return recipes, nil
}

func (s *recipesStorage) Get(ctx context.Context, ownerUserID string, id uuid.UUID) (storage.Recipe, bool, error) {
	query := `
		SELECT id, owner_user_id, name, url, time_minutes, notes, created_at, updated_at
		FROM recipes
		WHERE owner_user_id = $1 AND id = $2
	`

	var r storage.Recipe
	err := s.pool.QueryRow(ctx, query, ownerUserID, id).Scan(
		&r.ID, &r.OwnerUserID, &r.Name, &r.URL, &r.TimeMinutes, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Recipe{}, false, nil
	}
	if err != nil {
		return storage.Recipe{}, false, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, true, nil
}

func (s *recipesStorage) Create(ctx context.Context, ownerUserID string, rec storage.NewRecipe) (storage.Recipe, error) {
	query := `
		INSERT INTO recipes (owner_user_id, name, url, time_minutes, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_user_id, name, url, time_minutes, notes, created_at, updated_at
	`

	var r storage.Recipe
	err := s.pool.QueryRow(ctx, query, ownerUserID, rec.Name, rec.URL, rec.TimeMinutes, rec.Notes).Scan(
		&r.ID, &r.OwnerUserID, &r.Name, &r.URL, &r.TimeMinutes, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return storage.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}
	return r, nil
}

func (s *recipesStorage) Delete(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	// Entries referencing the recipe keep rendering by stored name; the FK
	// is ON DELETE SET NULL so the back-reference just disappears.
	_, err := s.pool.Exec(ctx, `DELETE FROM recipes WHERE owner_user_id = $1 AND id = $2`, ownerUserID, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
