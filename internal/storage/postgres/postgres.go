// Package postgres implements the storage interfaces over a pgx connection
// pool. Schema lives in /migrations and is applied with goose.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"menuboard/internal/storage"
)

var ErrNotFound = errors.New("record not found")

// Storage is the Postgres implementation of storage.Store.
type Storage struct {
	pool    *pgxpool.Pool
	plans   *planStorage
	recipes *recipesStorage
}

// New connects to the database and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		pool:    pool,
		plans:   newPlanStorage(pool),
		recipes: newRecipesStorage(pool),
	}, nil
}

func (s *Storage) Plans() storage.PlanStorage { return s.plans }

func (s *Storage) Recipes() storage.RecipesStorage { return s.recipes }

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
