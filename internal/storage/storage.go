package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DayRecord is the persisted parent record for one calendar day. It owns a
// variable number of entry records; the board's per-slot view is derived from
// it, never stored directly.
type DayRecord struct {
	ID          uuid.UUID
	OwnerUserID string
	Date        time.Time // midnight UTC
	Entries     []EntryRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntryRecord is one persisted dish within a day record.
type EntryRecord struct {
	ID              uuid.UUID
	DayRecordID     uuid.UUID
	MealType        string // breakfast, lunch, dinner
	Name            string
	RecipeID        *uuid.UUID
	Notes           string
	IsOutside       bool
	OutsideLocation string
	Position        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewEntryRecord carries the fields for creating an entry record.
type NewEntryRecord struct {
	DayRecordID     uuid.UUID
	MealType        string
	Name            string
	RecipeID        *uuid.UUID
	Notes           string
	IsOutside       bool
	OutsideLocation string
	Position        int
}

// PlanStorage is the persistence collaborator of the planning board. All
// dates crossing this boundary are midnight-UTC normalized; range queries
// take day-start/day-end pairs.
type PlanStorage interface {
	// QueryDayRecordsInRange returns every day record of the owner whose date
	// falls within [startInclusive, endInclusive], entries included.
	QueryDayRecordsInRange(ctx context.Context, ownerUserID string, startInclusive, endInclusive time.Time) ([]DayRecord, error)

	// CreateDayRecord creates an empty day record for the given date.
	CreateDayRecord(ctx context.Context, ownerUserID string, date time.Time) (DayRecord, error)

	// QueryEntryRecords returns the entry records of one day record for one
	// meal type, in position order.
	QueryEntryRecords(ctx context.Context, dayRecordID uuid.UUID, mealType string) ([]EntryRecord, error)

	// DeleteEntryRecord deletes a single entry record.
	DeleteEntryRecord(ctx context.Context, id uuid.UUID) error

	// CreateEntryRecord creates one entry record linked to a day record.
	CreateEntryRecord(ctx context.Context, rec NewEntryRecord) (EntryRecord, error)
}

// Recipe is a stored recipe the board references by id for display.
type Recipe struct {
	ID          uuid.UUID
	OwnerUserID string
	Name        string
	URL         string
	TimeMinutes int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecipe carries the fields for creating a recipe.
type NewRecipe struct {
	Name        string
	URL         string
	TimeMinutes int
	Notes       string
}

// RecipesStorage is the recipe lookup collaborator. The board only reads it;
// the write operations serve the recipe management endpoints.
type RecipesStorage interface {
	// List returns all recipes of the owner, newest first.
	List(ctx context.Context, ownerUserID string) ([]Recipe, error)

	// Get returns a recipe by id within the owner. bool=false means not found.
	Get(ctx context.Context, ownerUserID string, id uuid.UUID) (Recipe, bool, error)

	// Create stores a new recipe.
	Create(ctx context.Context, ownerUserID string, rec NewRecipe) (Recipe, error)

	// Delete removes a recipe by id within the owner.
	Delete(ctx context.Context, ownerUserID string, id uuid.UUID) error
}

// Store bundles the storages one backend provides.
type Store interface {
	Plans() PlanStorage
	Recipes() RecipesStorage

	// Close releases the backend's resources (connection pool for Postgres).
	Close() error
}
