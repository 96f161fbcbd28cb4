package dateutil

import (
	"testing"
	"time"
)

func TestStartOfWeek_MondayAligned(t *testing.T) {
	// 2025-03-05 is a Wednesday; its week starts Monday 2025-03-03.
	wed := time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC)
	got := StartOfWeek(wed)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfWeek(Wednesday) = %v, want %v", got, want)
	}
}

func TestStartOfWeek_SundayBelongsToPreviousMonday(t *testing.T) {
	// 2025-03-09 is a Sunday; Monday-aligned weeks put it at 2025-03-03.
	sun := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sun); !got.Equal(want) {
		t.Errorf("StartOfWeek(Sunday) = %v, want %v", got, want)
	}
}

func TestStartOfWeek_MondayIsFixpoint(t *testing.T) {
	mon := time.Date(2025, 3, 3, 23, 59, 0, 0, time.UTC)
	if got := StartOfWeek(mon); !got.Equal(DayStart(mon)) {
		t.Errorf("StartOfWeek(Monday) = %v, want %v", got, DayStart(mon))
	}
}

func TestDayStart_NormalizesTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 01:00 on March 5 in UTC+9 is still March 4 in UTC.
	local := time.Date(2025, 3, 5, 1, 0, 0, 0, loc)
	got := DayStart(local)
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayStart across timezone = %v, want %v", got, want)
	}
}

func TestDayEnd_IsLastInstantOfDay(t *testing.T) {
	d := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	end := DayEnd(d)
	if !SameDay(end, d) {
		t.Errorf("DayEnd left the day: %v", end)
	}
	if !end.Add(time.Nanosecond).Equal(AddDays(d, 1)) {
		t.Errorf("DayEnd + 1ns should be next day start, got %v", end.Add(time.Nanosecond))
	}
}

func TestWeekDays_SevenContiguous(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	days := WeekDays(start)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i, d := range days {
		want := AddDays(start, i)
		if !d.Equal(want) {
			t.Errorf("day[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 5, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("expected a and b on the same day")
	}
	if SameDay(b, c) {
		t.Error("expected b and c on different days")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, err := ParseDay("2025-03-05")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if got := FormatDay(d); got != "2025-03-05" {
		t.Errorf("FormatDay = %q, want %q", got, "2025-03-05")
	}
	if _, err := ParseDay("March 5"); err == nil {
		t.Error("expected error for malformed date")
	}
}
