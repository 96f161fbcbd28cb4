package dragdrop

import (
	"context"
	"errors"
	"testing"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %s: %v", s, err)
	}
	return d
}

func TestSlotDragIDRoundTrip(t *testing.T) {
	date := day(t, "2025-03-05")
	id := SlotDragID(date, planboard.MealLunch)
	if id != "2025-03-05-lunch-2025-03-05-lunch" {
		t.Fatalf("slot drag id = %s", id)
	}

	p, err := ParseDragID(id)
	if err != nil {
		t.Fatalf("ParseDragID: %v", err)
	}
	if p.Kind != KindSlot || !dateutil.SameDay(p.Date, date) || p.MealType != planboard.MealLunch {
		t.Errorf("payload = %+v", p)
	}
	if p.SlotID != "2025-03-05-lunch" {
		t.Errorf("slot id = %s", p.SlotID)
	}
}

func TestEntryDragIDRoundTripWithDashedEntryID(t *testing.T) {
	date := day(t, "2025-03-05")
	entryID := "3f2a1b04-9c1d-4e8a-b7d2-0123456789ab" // uuid, full of dashes
	id := EntryDragID(date, planboard.MealDinner, entryID)

	p, err := ParseDragID(id)
	if err != nil {
		t.Fatalf("ParseDragID: %v", err)
	}
	if p.Kind != KindEntry || p.EntryID != entryID {
		t.Errorf("payload = %+v, want entry id %s", p, entryID)
	}
	if !dateutil.SameDay(p.Date, date) || p.MealType != planboard.MealDinner {
		t.Errorf("payload = %+v", p)
	}
}

func TestParseDropID(t *testing.T) {
	id := DropZoneID(day(t, "2025-03-07"), planboard.MealBreakfast)
	if id != "drop-2025-03-07-breakfast" {
		t.Fatalf("drop id = %s", id)
	}

	p, err := ParseDropID(id)
	if err != nil {
		t.Fatalf("ParseDropID: %v", err)
	}
	if p.Kind != KindZone || p.MealType != planboard.MealBreakfast || !dateutil.SameDay(p.Date, day(t, "2025-03-07")) {
		t.Errorf("payload = %+v", p)
	}
}

func TestParseMalformedIDs(t *testing.T) {
	for _, id := range []string{
		"",
		"garbage",
		"2025-03-05",              // date only, no meal
		"2025-03-05-brunch-x",     // unknown meal type
		"item-2025-03-05-lunch",   // entry id missing
		"drop-2025-03-05",         // meal missing
		"drop-notadate-xx-lunch",  // unparseable date
		"item-2025-13-99-lunch-e", // invalid date
	} {
		if _, err := ParseDragID(id); err == nil {
			t.Errorf("ParseDragID(%q) accepted malformed id", id)
		}
	}
	if _, err := ParseDropID("drop-2025-03-05"); err == nil {
		t.Error("ParseDropID accepted id with missing meal")
	}
	if _, err := ParseDropID("2025-03-05-lunch"); err == nil {
		t.Error("ParseDropID accepted id without drop prefix")
	}
}

// recordingMover records the moves the engine issues.
type recordingMover struct {
	calls []string
	err   error
}

func (m *recordingMover) MoveEntry(ctx context.Context, owner string, src *planboard.SlotContent, fromDate time.Time, fromMeal planboard.MealType, toDate time.Time, toMeal planboard.MealType, entryID string) error {
	m.calls = append(m.calls,
		dateutil.FormatDay(fromDate)+"/"+string(fromMeal)+"->"+dateutil.FormatDay(toDate)+"/"+string(toMeal)+":"+entryID)
	return m.err
}

func TestEngineResolvesSlotDrop(t *testing.T) {
	mover := &recordingMover{}
	engine := NewEngine(mover)
	ctx := context.Background()

	engine.Start("u1", Payload{Kind: KindSlot, Date: day(t, "2025-03-05"), MealType: planboard.MealLunch})
	if engine.Active("u1") == nil {
		t.Fatal("expected active drag after Start")
	}

	target := &Payload{Kind: KindZone, Date: day(t, "2025-03-07"), MealType: planboard.MealDinner}
	if !engine.End(ctx, "u1", target) {
		t.Fatal("End returned moved=false")
	}

	want := "2025-03-05/lunch->2025-03-07/dinner:"
	if len(mover.calls) != 1 || mover.calls[0] != want {
		t.Errorf("calls = %v, want [%s]", mover.calls, want)
	}
	if engine.Active("u1") != nil {
		t.Error("engine not idle after End")
	}
}

func TestEngineResolvesEntryDrop(t *testing.T) {
	mover := &recordingMover{}
	engine := NewEngine(mover)

	engine.Start("u1", Payload{
		Kind:     KindEntry,
		Date:     day(t, "2025-03-05"),
		MealType: planboard.MealLunch,
		EntryID:  "e-42",
	})
	target := &Payload{Kind: KindZone, Date: day(t, "2025-03-06"), MealType: planboard.MealLunch}
	if !engine.End(context.Background(), "u1", target) {
		t.Fatal("End returned moved=false")
	}

	want := "2025-03-05/lunch->2025-03-06/lunch:e-42"
	if len(mover.calls) != 1 || mover.calls[0] != want {
		t.Errorf("calls = %v, want [%s]", mover.calls, want)
	}
}

func TestEngineSilentNoOps(t *testing.T) {
	mover := &recordingMover{}
	engine := NewEngine(mover)
	ctx := context.Background()
	source := Payload{Kind: KindSlot, Date: day(t, "2025-03-05"), MealType: planboard.MealLunch}

	// No tracked drag.
	if engine.End(ctx, "u1", &Payload{Kind: KindZone, Date: day(t, "2025-03-06"), MealType: planboard.MealLunch}) {
		t.Error("End without Start reported moved")
	}

	// Drop outside any target.
	engine.Start("u1", source)
	if engine.End(ctx, "u1", nil) {
		t.Error("End on nil target reported moved")
	}
	if engine.Active("u1") != nil {
		t.Error("engine not idle after nil-target End")
	}

	// Drop back onto the source slot.
	engine.Start("u1", source)
	sameSlot := &Payload{Kind: KindZone, Date: source.Date, MealType: source.MealType}
	if engine.End(ctx, "u1", sameSlot) {
		t.Error("same-slot drop reported moved")
	}

	// Cancel discards the gesture.
	engine.Start("u1", source)
	engine.Cancel("u1")
	if engine.Active("u1") != nil {
		t.Error("Cancel left the drag active")
	}

	if len(mover.calls) != 0 {
		t.Errorf("no-op gestures issued moves: %v", mover.calls)
	}
}

func TestEngineMoveFailureReturnsIdle(t *testing.T) {
	mover := &recordingMover{err: errors.New("storage down")}
	engine := NewEngine(mover)

	engine.Start("u1", Payload{Kind: KindSlot, Date: day(t, "2025-03-05"), MealType: planboard.MealLunch})
	target := &Payload{Kind: KindZone, Date: day(t, "2025-03-07"), MealType: planboard.MealDinner}
	if engine.End(context.Background(), "u1", target) {
		t.Error("failed move reported moved=true")
	}
	if engine.Active("u1") != nil {
		t.Error("engine not idle after failed move")
	}
}

func TestEngineStartReplacesTrackedDrag(t *testing.T) {
	mover := &recordingMover{}
	engine := NewEngine(mover)

	engine.Start("u1", Payload{Kind: KindSlot, Date: day(t, "2025-03-05"), MealType: planboard.MealLunch})
	engine.Start("u1", Payload{Kind: KindSlot, Date: day(t, "2025-03-06"), MealType: planboard.MealDinner})

	active := engine.Active("u1")
	if active == nil || !dateutil.SameDay(active.Date, day(t, "2025-03-06")) || active.MealType != planboard.MealDinner {
		t.Errorf("active = %+v, want replacement drag", active)
	}
}
