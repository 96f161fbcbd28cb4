package planboard

import (
	"fmt"
	"time"

	"menuboard/internal/dateutil"
)

// ViewUnit selects how many days a projection spans.
type ViewUnit string

const (
	ViewDay      ViewUnit = "day"
	ViewThreeDay ViewUnit = "three_day"
	ViewWeek     ViewUnit = "week"
)

func ParseViewUnit(s string) (ViewUnit, error) {
	switch ViewUnit(s) {
	case ViewDay, ViewThreeDay, ViewWeek:
		return ViewUnit(s), nil
	}
	return "", fmt.Errorf("unknown view unit %q", s)
}

// Span returns the number of days the unit covers.
func (u ViewUnit) Span() int {
	switch u {
	case ViewDay:
		return 1
	case ViewThreeDay:
		return 3
	default:
		return 7
	}
}

// View is a render-ready slice of the plan window.
type View struct {
	Unit   ViewUnit  `json:"unit"`
	Cursor time.Time `json:"cursor"`
	Days   []DayPlan `json:"days"`
}

// Project cuts a view out of the loaded window.
//
// day returns the single matching day, or nothing when the cursor falls
// outside the window. three_day returns three contiguous days centered on
// the cursor, clamped to the loaded timeline at its edges. week is always
// exactly seven days from the cursor's Monday, synthesizing placeholders
// for gaps the window does not cover.
func Project(window *PlanWindow, unit ViewUnit, cursor time.Time) View {
	cursor = dateutil.DayStart(cursor)

	switch unit {
	case ViewDay:
		view := View{Unit: unit, Cursor: cursor}
		if window != nil {
			if day := window.FindDay(cursor); day != nil {
				view.Days = append(view.Days, *day)
			}
		}
		return view
	case ViewThreeDay:
		return projectThreeDay(window, cursor)
	default:
		return projectWeek(window, cursor)
	}
}

func projectThreeDay(window *PlanWindow, cursor time.Time) View {
	view := View{Unit: ViewThreeDay, Cursor: cursor}
	if window == nil {
		return view
	}

	timeline := window.Timeline()
	if len(timeline) == 0 {
		return view
	}

	start := dateutil.AddDays(cursor, -1)
	if last := dateutil.AddDays(timeline[len(timeline)-1].Date, -2); start.After(last) {
		start = last
	}
	if first := timeline[0].Date; start.Before(first) {
		start = dateutil.DayStart(first)
	}

	for i := 0; i < 3; i++ {
		if day := window.FindDay(dateutil.AddDays(start, i)); day != nil {
			view.Days = append(view.Days, *day)
		}
	}
	return view
}

func projectWeek(window *PlanWindow, cursor time.Time) View {
	start := dateutil.StartOfWeek(cursor)
	view := View{Unit: ViewWeek, Cursor: start}
	for _, date := range dateutil.WeekDays(start) {
		if window != nil {
			if day := window.FindDay(date); day != nil {
				view.Days = append(view.Days, *day)
				continue
			}
		}
		view.Days = append(view.Days, NewPlaceholderDay(date))
	}
	return view
}

// Navigate computes the cursor of the adjacent view. day steps one day,
// week steps seven. three_day is deliberately asymmetric: next advances one
// day past the rendered view's last day, previous retreats three days from
// its first, so repeated "next" slides while "previous" pages a full block.
func Navigate(view View, forward bool) time.Time {
	first := dateutil.DayStart(view.Cursor)
	last := first
	if len(view.Days) > 0 {
		first = dateutil.DayStart(view.Days[0].Date)
		last = dateutil.DayStart(view.Days[len(view.Days)-1].Date)
	}

	switch view.Unit {
	case ViewDay:
		if forward {
			return dateutil.AddDays(dateutil.DayStart(view.Cursor), 1)
		}
		return dateutil.AddDays(dateutil.DayStart(view.Cursor), -1)
	case ViewThreeDay:
		if forward {
			return dateutil.AddDays(last, 1)
		}
		return dateutil.AddDays(first, -3)
	default:
		if forward {
			return dateutil.AddDays(dateutil.StartOfWeek(view.Cursor), 7)
		}
		return dateutil.AddDays(dateutil.StartOfWeek(view.Cursor), -7)
	}
}

// NeedsFetch reports whether the cursor has left the loaded window, meaning
// the caller must refetch recentered on it before projecting. Projection
// never invents data beyond the loaded window on its own.
func NeedsFetch(window *PlanWindow, unit ViewUnit, cursor time.Time) bool {
	if window == nil {
		return true
	}
	return !window.Contains(dateutil.DayStart(cursor))
}
