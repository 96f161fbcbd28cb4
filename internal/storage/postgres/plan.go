package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"menuboard/internal/dateutil"
	"menuboard/internal/storage"
)

type planStorage struct {
	pool *pgxpool.Pool
}

func newPlanStorage(pool *pgxpool.Pool) *planStorage {
	return &planStorage{pool: pool}
}

func (s *planStorage) QueryDayRecordsInRange(ctx context.Context, ownerUserID string, startInclusive, endInclusive time.Time) ([]storage.DayRecord, error) {
	daysQuery := `
		SELECT id, owner_user_id, date, created_at, updated_at
		FROM plan_days
		WHERE owner_user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := s.pool.Query(ctx, daysQuery, ownerUserID, startInclusive, endInclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	var days []storage.DayRecord
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var day storage.DayRecord
		if err := rows.Scan(&day.ID, &day.OwnerUserID, &day.Date, &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		day.Date = dateutil.DayStart(day.Date)
		byID[day.ID] = len(days)
		days = append(days, day)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating day records: %w", rows.Err())
	}

	if len(days) == 0 {
		return nil, nil
	}

	entriesQuery := `
		SELECT e.id, e.day_id, e.meal_type, e.name, e.recipe_id, e.notes,
		       e.is_outside, e.outside_location, e.position, e.created_at, e.updated_at
		FROM plan_entries e
		INNER JOIN plan_days d ON d.id = e.day_id
		WHERE d.owner_user_id = $1 AND d.date >= $2 AND d.date <= $3
		ORDER BY e.day_id,
			CASE e.meal_type
				WHEN 'breakfast' THEN 1
				WHEN 'lunch' THEN 2
				WHEN 'dinner' THEN 3
			END,
			e.position
	`

	entryRows, err := s.pool.Query(ctx, entriesQuery, ownerUserID, startInclusive, endInclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry records: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var entry storage.EntryRecord
		if err := entryRows.Scan(
			&entry.ID,
			&entry.DayRecordID,
			&entry.MealType,
			&entry.Name,
			&entry.RecipeID,
			&entry.Notes,
			&entry.IsOutside,
			&entry.OutsideLocation,
			&entry.Position,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry record: %w", err)
		}
		if idx, ok := byID[entry.DayRecordID]; ok {
			days[idx].Entries = append(days[idx].Entries, entry)
		}
	}
	if entryRows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry records: %w", entryRows.Err())
	}

	return days, nil
}

func (s *planStorage) CreateDayRecord(ctx context.Context, ownerUserID string, date time.Time) (storage.DayRecord, error) {
	// ON CONFLICT returns the existing row so a concurrent create for the
	// same day never splits entries over two parents.
	query := `
		INSERT INTO plan_days (owner_user_id, date)
		VALUES ($1, $2)
		ON CONFLICT (owner_user_id, date) DO UPDATE SET updated_at = now()
		RETURNING id, owner_user_id, date, created_at, updated_at
	`

	var day storage.DayRecord
	err := s.pool.QueryRow(ctx, query, ownerUserID, dateutil.DayStart(date)).Scan(
		&day.ID,
		&day.OwnerUserID,
		&day.Date,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return storage.DayRecord{}, fmt.Errorf("failed to create day record: %w", err)
	}
	day.Date = dateutil.DayStart(day.Date)
	return day, nil
}

func (s *planStorage) QueryEntryRecords(ctx context.Context, dayRecordID uuid.UUID, mealType string) ([]storage.EntryRecord, error) {
	query := `
		SELECT id, day_id, meal_type, name, recipe_id, notes,
		       is_outside, outside_location, position, created_at, updated_at
		FROM plan_entries
		WHERE day_id = $1 AND meal_type = $2
		ORDER BY position
	`

	rows, err := s.pool.Query(ctx, query, dayRecordID, mealType)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry records: %w", err)
	}
	defer rows.Close()

	var entries []storage.EntryRecord
	for rows.Next() {
		var entry storage.EntryRecord
		if err := rows.Scan(
			&entry.ID,
			&entry.DayRecordID,
			&entry.MealType,
			&entry.Name,
			&entry.RecipeID,
			&entry.Notes,
			&entry.IsOutside,
			&entry.OutsideLocation,
			&entry.Position,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry record: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry records: %w", rows.Err())
	}

	return entries, nil
}

func (s *planStorage) DeleteEntryRecord(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM plan_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *planStorage) CreateEntryRecord(ctx context.Context, rec storage.NewEntryRecord) (storage.EntryRecord, error) {
	query := `
		INSERT INTO plan_entries (day_id, meal_type, name, recipe_id, notes,
		                          is_outside, outside_location, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, day_id, meal_type, name, recipe_id, notes,
		          is_outside, outside_location, position, created_at, updated_at
	`

	var entry storage.EntryRecord
	err := s.pool.QueryRow(
		ctx,
		query,
		rec.DayRecordID,
		rec.MealType,
		rec.Name,
		rec.RecipeID,
		rec.Notes,
		rec.IsOutside,
		rec.OutsideLocation,
		rec.Position,
	).Scan(
		&entry.ID,
		&entry.DayRecordID,
		&entry.MealType,
		&entry.Name,
		&entry.RecipeID,
		&entry.Notes,
		&entry.IsOutside,
		&entry.OutsideLocation,
		&entry.Position,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.EntryRecord{}, fmt.Errorf("failed to create entry record: day %s: %w", rec.DayRecordID, ErrNotFound)
		}
		return storage.EntryRecord{}, fmt.Errorf("failed to create entry record: %w", err)
	}
	return entry, nil
}

// isForeignKeyViolation reports whether err is SQLSTATE 23503
// (foreign_key_violation), meaning the parent day record is gone.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
