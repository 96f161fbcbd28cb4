package planboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"menuboard/internal/dateutil"
	"menuboard/internal/storage"
	"menuboard/internal/templates"
)

var (
	ErrWindowNotLoaded = errors.New("plan window not loaded; fetch first")
	ErrSlotNotLoaded   = errors.New("slot not in the loaded window")
)

// Store owns the plan windows, one per owner. It is the only component that
// mutates a PlanWindow; every remote interaction goes through the injected
// persistence collaborator.
type Store struct {
	storage   storage.PlanStorage
	templates *templates.Engine

	mu     sync.Mutex
	boards map[string]*board // owner user id -> board
}

// board is the per-owner mutable state. Its mutex guards local window
// mutation only; completion order of in-flight remote calls is not
// serialized (last write wins, reconciled by the trailing fetch).
type board struct {
	mu     sync.Mutex
	window *PlanWindow
}

// NewStore creates a window store over the given persistence collaborator.
func NewStore(planStorage storage.PlanStorage, tpl *templates.Engine) *Store {
	if tpl == nil {
		tpl = templates.NewEngine(0)
	}
	return &Store{
		storage:   planStorage,
		templates: tpl,
		boards:    make(map[string]*board),
	}
}

// Templates exposes the template engine for listing/deletion endpoints.
func (s *Store) Templates() *templates.Engine { return s.templates }

func (s *Store) board(ownerUserID string) *board {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[ownerUserID]
	if !ok {
		b = &board{}
		s.boards[ownerUserID] = b
	}
	return b
}

// Window returns a snapshot of the owner's current plan window, or nil
// before the first successful fetch. The snapshot is a deep copy taken under
// the board mutex; callers can read it concurrently with local mutation.
func (s *Store) Window(ownerUserID string) *PlanWindow {
	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.window.Clone()
}

// Fetch loads the 21-day window (previous/current/next week) around anchor
// in a single batched read and replaces the owner's plan window. On error
// the previous window is left untouched; a fetch never partially overwrites.
func (s *Store) Fetch(ctx context.Context, ownerUserID string, anchor time.Time) (*PlanWindow, error) {
	currentStart := dateutil.StartOfWeek(anchor)
	previousStart := dateutil.AddDays(currentStart, -7)
	nextStart := dateutil.AddDays(currentStart, 7)
	rangeEnd := dateutil.AddDays(nextStart, 6)

	records, err := s.storage.QueryDayRecordsInRange(
		ctx,
		ownerUserID,
		dateutil.DayStart(previousStart),
		dateutil.DayEnd(rangeEnd),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch plan window: %w", err)
	}

	byDate := make(map[string]storage.DayRecord, len(records))
	for _, rec := range records {
		byDate[dateutil.FormatDay(rec.Date)] = rec
	}

	window := &PlanWindow{
		Previous: buildWeek(previousStart, byDate),
		Current:  buildWeek(currentStart, byDate),
		Next:     buildWeek(nextStart, byDate),
	}

	b := s.board(ownerUserID)
	b.mu.Lock()
	b.window = window
	b.mu.Unlock()

	// The board keeps the original; the caller gets its own copy so later
	// local mutation cannot race a response being encoded.
	return window.Clone(), nil
}

// buildWeek assembles one week from the fetched records, synthesizing a
// placeholder day for every date with no backing record.
func buildWeek(start time.Time, byDate map[string]storage.DayRecord) *WeekWindow {
	week := &WeekWindow{
		ID:    dateutil.FormatDay(start),
		Start: start,
	}
	for _, date := range dateutil.WeekDays(start) {
		if rec, ok := byDate[dateutil.FormatDay(date)]; ok {
			week.Days = append(week.Days, dayPlanFromRecord(date, rec))
		} else {
			week.Days = append(week.Days, NewPlaceholderDay(date))
		}
	}
	return week
}

// dayPlanFromRecord projects one persisted day record onto the three-slot
// day shape. Entry order within a slot follows record position; an outing
// record lifts the outing fields to slot level. Rendering decisions belong
// to the UI.
func dayPlanFromRecord(date time.Time, rec storage.DayRecord) DayPlan {
	day := DayPlan{Date: dateutil.DayStart(date)}
	for _, mt := range MealTypes {
		var content SlotContent
		for _, entry := range rec.Entries {
			if entry.MealType != string(mt) {
				continue
			}
			if entry.IsOutside {
				content.IsOutside = true
				content.OutsideLocation = entry.OutsideLocation
				content.Notes = entry.Notes
				continue
			}
			content.Entries = append(content.Entries, entryFromRecord(entry))
		}
		day.Slots = append(day.Slots, NewMealSlot(date, mt, content))
	}
	return day
}

func entryFromRecord(rec storage.EntryRecord) MenuItemEntry {
	entry := MenuItemEntry{
		ID:    rec.ID.String(),
		Name:  rec.Name,
		Notes: rec.Notes,
	}
	if rec.RecipeID != nil {
		id := rec.RecipeID.String()
		entry.RecipeID = &id
	}
	return entry
}

// SaveSlot replaces the persisted entry set of one slot with content and
// mirrors it into local state without waiting for a refetch. Replacement is
// delete-then-recreate: after this call resolves, the slot's persisted
// entries exactly equal content.Entries. Step failures propagate; the
// optimistic local state is left as applied and the caller reconciles with
// a fetch.
func (s *Store) SaveSlot(ctx context.Context, ownerUserID string, date time.Time, mealType MealType, content SlotContent) error {
	day, err := s.resolveDayRecord(ctx, ownerUserID, date)
	if err != nil {
		return err
	}

	existing, err := s.storage.QueryEntryRecords(ctx, day.ID, string(mealType))
	if err != nil {
		return fmt.Errorf("save slot: query existing entries: %w", err)
	}
	for _, entry := range existing {
		if err := s.storage.DeleteEntryRecord(ctx, entry.ID); err != nil {
			return fmt.Errorf("save slot: delete entry %s: %w", entry.ID, err)
		}
	}

	for _, rec := range entryRecordsForContent(day.ID, mealType, content) {
		if _, err := s.storage.CreateEntryRecord(ctx, rec); err != nil {
			return fmt.Errorf("save slot: create entry: %w", err)
		}
	}

	s.applyLocalSlot(ownerUserID, date, mealType, content)
	return nil
}

// entryRecordsForContent maps slot content onto its persisted shape: an
// outing slot becomes a single record carrying the outing fields, otherwise
// one record per entry in list order.
func entryRecordsForContent(dayID uuid.UUID, mealType MealType, content SlotContent) []storage.NewEntryRecord {
	if content.IsOutside {
		return []storage.NewEntryRecord{{
			DayRecordID:     dayID,
			MealType:        string(mealType),
			Notes:           content.Notes,
			IsOutside:       true,
			OutsideLocation: content.OutsideLocation,
		}}
	}

	records := make([]storage.NewEntryRecord, 0, len(content.Entries))
	for i, entry := range content.Entries {
		rec := storage.NewEntryRecord{
			DayRecordID: dayID,
			MealType:    string(mealType),
			Name:        entry.Name,
			Notes:       entry.Notes,
			Position:    i,
		}
		if entry.RecipeID != nil {
			if recipeID, err := uuid.Parse(*entry.RecipeID); err == nil {
				rec.RecipeID = &recipeID
			}
		}
		records = append(records, rec)
	}
	return records
}

// resolveDayRecord finds the parent day record by exact-day range query,
// creating it when absent.
func (s *Store) resolveDayRecord(ctx context.Context, ownerUserID string, date time.Time) (storage.DayRecord, error) {
	days, err := s.storage.QueryDayRecordsInRange(ctx, ownerUserID, dateutil.DayStart(date), dateutil.DayEnd(date))
	if err != nil {
		return storage.DayRecord{}, fmt.Errorf("resolve day record: %w", err)
	}
	if len(days) > 0 {
		return days[0], nil
	}
	day, err := s.storage.CreateDayRecord(ctx, ownerUserID, dateutil.DayStart(date))
	if err != nil {
		return storage.DayRecord{}, fmt.Errorf("resolve day record: %w", err)
	}
	return day, nil
}

// applyLocalSlot mirrors content into the loaded window. Slots outside the
// loaded 21 days are skipped; the next fetch will pick them up.
func (s *Store) applyLocalSlot(ownerUserID string, date time.Time, mealType MealType, content SlotContent) {
	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window == nil {
		return
	}
	if slot := b.window.FindSlot(date, mealType); slot != nil {
		slot.SlotContent = content.Clone()
	}
}

// MoveEntry relocates a whole slot (specificEntryID empty) or one entry out
// of a multi-entry slot to the target slot. The destination save is issued
// before the source save so a failure mid-move favors "entry exists twice"
// over "entry vanished"; a reconciling fetch always runs last, success or
// failure, to converge local state on persisted truth.
//
// sourceContent may be nil, in which case the source slot is read from the
// loaded window.
func (s *Store) MoveEntry(ctx context.Context, ownerUserID string, sourceContent *SlotContent, fromDate time.Time, fromMeal MealType, toDate time.Time, toMeal MealType, specificEntryID string) (err error) {
	if dateutil.SameDay(fromDate, toDate) && fromMeal == toMeal {
		return nil
	}

	source, err := s.resolveSourceContent(ownerUserID, sourceContent, fromDate, fromMeal)
	if err != nil {
		return err
	}

	defer func() {
		if _, ferr := s.Fetch(ctx, ownerUserID, s.reconcileAnchor(ownerUserID, toDate)); err == nil && ferr != nil {
			err = ferr
		}
	}()

	if specificEntryID == "" {
		// Whole-slot move: target takes the source content, source is emptied.
		if err = s.SaveSlot(ctx, ownerUserID, toDate, toMeal, source); err != nil {
			return err
		}
		return s.SaveSlot(ctx, ownerUserID, fromDate, fromMeal, SlotContent{})
	}

	moved, remaining, found := splitEntry(source.Entries, specificEntryID)
	if !found {
		err = fmt.Errorf("entry %s not found in slot %s", specificEntryID, SlotID(fromDate, fromMeal))
		return err
	}

	if err = s.SaveSlot(ctx, ownerUserID, toDate, toMeal, SlotContent{Entries: []MenuItemEntry{moved}}); err != nil {
		return err
	}
	return s.SaveSlot(ctx, ownerUserID, fromDate, fromMeal, SlotContent{Entries: remaining})
}

func (s *Store) resolveSourceContent(ownerUserID string, provided *SlotContent, fromDate time.Time, fromMeal MealType) (SlotContent, error) {
	if provided != nil {
		return provided.Clone(), nil
	}

	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window == nil {
		return SlotContent{}, ErrWindowNotLoaded
	}
	slot := b.window.FindSlot(fromDate, fromMeal)
	if slot == nil {
		return SlotContent{}, ErrSlotNotLoaded
	}
	return slot.SlotContent.Clone(), nil
}

// reconcileAnchor keeps the reconciling fetch centered on the currently
// loaded window so a move near its edge does not slide the whole board.
func (s *Store) reconcileAnchor(ownerUserID string, fallback time.Time) time.Time {
	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window != nil && b.window.Current != nil {
		return b.window.Current.Start
	}
	return fallback
}

// splitEntry extracts the entry with the given id, preserving the relative
// order of the remaining entries.
func splitEntry(entries []MenuItemEntry, entryID string) (MenuItemEntry, []MenuItemEntry, bool) {
	remaining := make([]MenuItemEntry, 0, len(entries))
	var moved MenuItemEntry
	found := false
	for _, e := range entries {
		if !found && e.ID == entryID {
			moved = e
			found = true
			continue
		}
		remaining = append(remaining, e)
	}
	return moved, remaining, found
}

// SnapshotTemplate saves the current week's arrangement as a named template.
// Empty slots are not snapshotted.
func (s *Store) SnapshotTemplate(ownerUserID, name string) (templates.Template, error) {
	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window == nil || b.window.Current == nil {
		return templates.Template{}, ErrWindowNotLoaded
	}

	var slots []templates.TemplateSlot
	for dayIndex, day := range b.window.Current.Days {
		for _, slot := range day.Slots {
			if len(slot.Entries) == 0 {
				continue
			}
			ts := templates.TemplateSlot{
				DayIndex: dayIndex,
				MealType: string(slot.MealType),
			}
			for _, entry := range slot.Entries {
				ts.Entries = append(ts.Entries, templates.TemplateEntry{
					Name:     entry.Name,
					RecipeID: entry.RecipeID,
				})
			}
			slots = append(slots, ts)
		}
	}

	tpl, ok := s.templates.Save(ownerUserID, name, slots)
	if !ok {
		return templates.Template{}, fmt.Errorf("template limit reached")
	}
	return tpl, nil
}

// ApplyTemplate overwrites the name/recipe fields of the current week's
// slots from the template, matching by week position. Local state only; the
// caller persists with follow-up SaveSlot calls if required. Returns false
// without effect for an unknown template id.
func (s *Store) ApplyTemplate(ownerUserID, templateID string) bool {
	tpl, ok := s.templates.Get(ownerUserID, templateID)
	if !ok {
		return false
	}

	b := s.board(ownerUserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window == nil || b.window.Current == nil {
		return false
	}

	for _, ts := range tpl.Slots {
		if ts.DayIndex < 0 || ts.DayIndex >= len(b.window.Current.Days) {
			continue
		}
		mealType, err := ParseMealType(ts.MealType)
		if err != nil {
			continue
		}
		day := &b.window.Current.Days[ts.DayIndex]
		slot := day.Slot(mealType)
		if slot == nil {
			continue
		}

		entries := make([]MenuItemEntry, 0, len(ts.Entries))
		for _, te := range ts.Entries {
			entries = append(entries, MenuItemEntry{
				ID:       uuid.New().String(), // provisional until persisted
				Name:     te.Name,
				RecipeID: te.RecipeID,
			})
		}
		slot.Entries = entries
		slot.IsOutside = false
		slot.OutsideLocation = ""
	}
	return true
}
