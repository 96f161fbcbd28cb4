package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"menuboard/internal/dateutil"
	"menuboard/internal/storage"
)

type planStorage struct {
	mu      sync.RWMutex
	days    map[uuid.UUID]*storage.DayRecord
	entries map[uuid.UUID]*storage.EntryRecord
	// index for owner+date lookups
	byOwnerDate map[string]uuid.UUID   // key: "ownerUserID:YYYY-MM-DD" -> day id
	entriesByDay map[uuid.UUID][]uuid.UUID
}

func newPlanStorage() *planStorage {
	return &planStorage{
		days:         make(map[uuid.UUID]*storage.DayRecord),
		entries:      make(map[uuid.UUID]*storage.EntryRecord),
		byOwnerDate:  make(map[string]uuid.UUID),
		entriesByDay: make(map[uuid.UUID][]uuid.UUID),
	}
}

func ownerDateKey(ownerUserID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", ownerUserID, dateutil.FormatDay(date))
}

func (s *planStorage) QueryDayRecordsInRange(ctx context.Context, ownerUserID string, startInclusive, endInclusive time.Time) ([]storage.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []storage.DayRecord
	for _, day := range s.days {
		if day.OwnerUserID != ownerUserID {
			continue
		}
		if day.Date.Before(startInclusive) || day.Date.After(endInclusive) {
			continue
		}
		records = append(records, s.snapshotDayLocked(day))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (s *planStorage) CreateDayRecord(ctx context.Context, ownerUserID string, date time.Time) (storage.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := dateutil.DayStart(date)
	key := ownerDateKey(ownerUserID, normalized)
	if existingID, ok := s.byOwnerDate[key]; ok {
		// Creating the same day twice would split its entries over two
		// parents; return the existing record instead.
		return s.snapshotDayLocked(s.days[existingID]), nil
	}

	now := time.Now().UTC()
	day := &storage.DayRecord{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		Date:        normalized,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.days[day.ID] = day
	s.byOwnerDate[key] = day.ID

	return s.snapshotDayLocked(day), nil
}

func (s *planStorage) QueryEntryRecords(ctx context.Context, dayRecordID uuid.UUID, mealType string) ([]storage.EntryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.days[dayRecordID]; !ok {
		return nil, ErrNotFound
	}

	var records []storage.EntryRecord
	for _, entryID := range s.entriesByDay[dayRecordID] {
		entry := s.entries[entryID]
		if entry != nil && entry.MealType == mealType {
			records = append(records, *entry)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	return records, nil
}

func (s *planStorage) DeleteEntryRecord(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.entries, id)

	ids := s.entriesByDay[entry.DayRecordID]
	for i, entryID := range ids {
		if entryID == id {
			s.entriesByDay[entry.DayRecordID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *planStorage) CreateEntryRecord(ctx context.Context, rec storage.NewEntryRecord) (storage.EntryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[rec.DayRecordID]
	if !ok {
		return storage.EntryRecord{}, fmt.Errorf("create entry record: day %s: %w", rec.DayRecordID, ErrNotFound)
	}

	now := time.Now().UTC()
	entry := &storage.EntryRecord{
		ID:              uuid.New(),
		DayRecordID:     rec.DayRecordID,
		MealType:        rec.MealType,
		Name:            rec.Name,
		RecipeID:        rec.RecipeID,
		Notes:           rec.Notes,
		IsOutside:       rec.IsOutside,
		OutsideLocation: rec.OutsideLocation,
		Position:        rec.Position,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.entries[entry.ID] = entry
	s.entriesByDay[day.ID] = append(s.entriesByDay[day.ID], entry.ID)
	day.UpdatedAt = now

	return *entry, nil
}

// snapshotDayLocked copies a day record with its entries sorted by meal type
// and position. Callers hold at least the read lock.
func (s *planStorage) snapshotDayLocked(day *storage.DayRecord) storage.DayRecord {
	snapshot := *day
	snapshot.Entries = nil
	for _, entryID := range s.entriesByDay[day.ID] {
		if entry := s.entries[entryID]; entry != nil {
			snapshot.Entries = append(snapshot.Entries, *entry)
		}
	}
	sort.SliceStable(snapshot.Entries, func(i, j int) bool {
		a, b := snapshot.Entries[i], snapshot.Entries[j]
		if a.MealType != b.MealType {
			return a.MealType < b.MealType
		}
		return a.Position < b.Position
	})
	return snapshot
}
