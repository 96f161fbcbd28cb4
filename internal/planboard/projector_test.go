package planboard

import (
	"context"
	"testing"
	"time"

	"menuboard/internal/dateutil"
)

// loadWindow fetches a window around anchor backed by an empty fake storage,
// so every day is a placeholder with the full 21-day shape.
func loadWindow(t *testing.T, anchor time.Time) *PlanWindow {
	t.Helper()
	store := newTestStore(newFakePlanStorage())
	window, err := store.Fetch(context.Background(), owner, anchor)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	return window
}

func dates(days []DayPlan) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, dateutil.FormatDay(d.Date))
	}
	return out
}

func assertDates(t *testing.T, got []DayPlan, want ...string) {
	t.Helper()
	g := dates(got)
	if len(g) != len(want) {
		t.Fatalf("days = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("days = %v, want %v", g, want)
		}
	}
}

func TestProjectDay(t *testing.T) {
	anchor := mustDay(t, "2025-03-05")
	window := loadWindow(t, anchor)

	view := Project(window, ViewDay, anchor)
	assertDates(t, view.Days, "2025-03-05")

	// Outside the loaded window the day view renders nothing.
	outside := Project(window, ViewDay, mustDay(t, "2025-05-01"))
	if len(outside.Days) != 0 {
		t.Errorf("outside-window day view = %v, want empty", dates(outside.Days))
	}
}

func TestProjectThreeDayCentersOnCursor(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))

	view := Project(window, ViewThreeDay, mustDay(t, "2025-03-05"))
	assertDates(t, view.Days, "2025-03-04", "2025-03-05", "2025-03-06")
}

func TestProjectThreeDayClampsToTimelineEdges(t *testing.T) {
	// Window spans 2025-02-24 .. 2025-03-16.
	window := loadWindow(t, mustDay(t, "2025-03-05"))

	atStart := Project(window, ViewThreeDay, mustDay(t, "2025-02-24"))
	assertDates(t, atStart.Days, "2025-02-24", "2025-02-25", "2025-02-26")

	atEnd := Project(window, ViewThreeDay, mustDay(t, "2025-03-16"))
	assertDates(t, atEnd.Days, "2025-03-14", "2025-03-15", "2025-03-16")
}

func TestProjectWeekAlwaysSevenDays(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))

	view := Project(window, ViewWeek, mustDay(t, "2025-03-05"))
	assertDates(t, view.Days,
		"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
		"2025-03-07", "2025-03-08", "2025-03-09")

	// Even with no window at all, week views stay structurally complete.
	empty := Project(nil, ViewWeek, mustDay(t, "2025-03-05"))
	if len(empty.Days) != 7 {
		t.Fatalf("week view without window has %d days, want 7", len(empty.Days))
	}
	for _, d := range empty.Days {
		if len(d.Slots) != 3 {
			t.Errorf("placeholder day %s has %d slots, want 3", dateutil.FormatDay(d.Date), len(d.Slots))
		}
	}
}

func TestNavigateDay(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))
	view := Project(window, ViewDay, mustDay(t, "2025-03-05"))

	if got := Navigate(view, true); !dateutil.SameDay(got, mustDay(t, "2025-03-06")) {
		t.Errorf("next = %s", dateutil.FormatDay(got))
	}
	if got := Navigate(view, false); !dateutil.SameDay(got, mustDay(t, "2025-03-04")) {
		t.Errorf("prev = %s", dateutil.FormatDay(got))
	}
}

func TestNavigateThreeDayIsAsymmetric(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))

	// Rendered days are 03-04..03-06.
	view := Project(window, ViewThreeDay, mustDay(t, "2025-03-05"))

	// next advances one past the rendered last day.
	if got := Navigate(view, true); !dateutil.SameDay(got, mustDay(t, "2025-03-07")) {
		t.Errorf("next = %s, want 2025-03-07", dateutil.FormatDay(got))
	}
	// prev retreats three from the rendered first day.
	if got := Navigate(view, false); !dateutil.SameDay(got, mustDay(t, "2025-03-01")) {
		t.Errorf("prev = %s, want 2025-03-01", dateutil.FormatDay(got))
	}
}

func TestNavigateThreeDayClampedViewStillMoves(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))

	// Cursor at the window's last day; the view clamps to 03-14..03-16, so
	// next lands one past it, outside the window.
	view := Project(window, ViewThreeDay, mustDay(t, "2025-03-16"))
	next := Navigate(view, true)
	if !dateutil.SameDay(next, mustDay(t, "2025-03-17")) {
		t.Errorf("next = %s, want 2025-03-17", dateutil.FormatDay(next))
	}
	if !NeedsFetch(window, ViewThreeDay, next) {
		t.Error("expected a refetch once the cursor leaves the window")
	}
}

func TestNavigateWeekStepsFromMonday(t *testing.T) {
	window := loadWindow(t, mustDay(t, "2025-03-05"))
	view := Project(window, ViewWeek, mustDay(t, "2025-03-05"))

	if got := Navigate(view, true); !dateutil.SameDay(got, mustDay(t, "2025-03-10")) {
		t.Errorf("next = %s, want 2025-03-10", dateutil.FormatDay(got))
	}
	if got := Navigate(view, false); !dateutil.SameDay(got, mustDay(t, "2025-02-24")) {
		t.Errorf("prev = %s, want 2025-02-24", dateutil.FormatDay(got))
	}
}

func TestNeedsFetch(t *testing.T) {
	if !NeedsFetch(nil, ViewWeek, mustDay(t, "2025-03-05")) {
		t.Error("nil window must need a fetch")
	}

	window := loadWindow(t, mustDay(t, "2025-03-05"))
	if NeedsFetch(window, ViewDay, mustDay(t, "2025-03-16")) {
		t.Error("last loaded day should not need a fetch")
	}
	if !NeedsFetch(window, ViewDay, mustDay(t, "2025-03-17")) {
		t.Error("day past the window must need a fetch")
	}
	if !NeedsFetch(window, ViewDay, mustDay(t, "2025-02-23")) {
		t.Error("day before the window must need a fetch")
	}
}

func TestParseViewUnit(t *testing.T) {
	for _, s := range []string{"day", "three_day", "week"} {
		if _, err := ParseViewUnit(s); err != nil {
			t.Errorf("ParseViewUnit(%q): %v", s, err)
		}
	}
	if _, err := ParseViewUnit("month"); err == nil {
		t.Error("expected error for unknown unit")
	}
}
