// Package planboard implements the planning-board state engine: the windowed
// week data model, the window store over the persistence collaborator, and
// the view projection used to render it.
package planboard

import (
	"fmt"
	"time"

	"menuboard/internal/dateutil"
)

// MealType identifies one of the three meal slots of a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes lists the meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// ParseMealType validates a wire-format meal type.
func ParseMealType(s string) (MealType, error) {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return MealType(s), nil
	}
	return "", fmt.Errorf("invalid meal type %q", s)
}

// MenuItemEntry is a single dish placed in a slot. ID is store-assigned once
// persisted; before persistence the client generates a provisional id.
// An entry is owned by exactly one slot at a time; reassignment is a move,
// never a copy.
type MenuItemEntry struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	RecipeID        *string `json:"recipe_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	IsOutside       bool    `json:"is_outside,omitempty"`
	OutsideLocation string  `json:"outside_location,omitempty"`
}

// SlotContent is what a meal slot holds: an ordered entry list, or an outing
// marker (restaurant name + notes) that suppresses the entry list.
type SlotContent struct {
	Entries         []MenuItemEntry `json:"entries"`
	IsOutside       bool            `json:"is_outside,omitempty"`
	OutsideLocation string          `json:"outside_location,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// IsEmpty reports whether the slot renders as "empty, click to add".
func (c SlotContent) IsEmpty() bool {
	return len(c.Entries) == 0 && !c.IsOutside
}

// Clone deep-copies the content so optimistic local mutation never aliases
// caller-held slices.
func (c SlotContent) Clone() SlotContent {
	cp := c
	cp.Entries = make([]MenuItemEntry, len(c.Entries))
	copy(cp.Entries, c.Entries)
	return cp
}

// MealSlot is the (date, meal type) addressable unit of the calendar. Its ID
// is derived from date+mealType, not from its entries, so the identity
// survives entry mutation. A slot is never deleted, only emptied.
type MealSlot struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	MealType MealType  `json:"meal_type"`
	SlotContent
}

// SlotID derives the stable slot identifier from its coordinates.
func SlotID(date time.Time, mealType MealType) string {
	return fmt.Sprintf("%s-%s", dateutil.FormatDay(date), mealType)
}

// NewMealSlot builds a slot with the given content.
func NewMealSlot(date time.Time, mealType MealType, content SlotContent) MealSlot {
	return MealSlot{
		ID:          SlotID(date, mealType),
		Date:        dateutil.DayStart(date),
		MealType:    mealType,
		SlotContent: content,
	}
}

// DayPlan is one calendar date with exactly one slot per meal type,
// generated eagerly even when no backing data exists. Placeholder days are
// structurally identical to persisted ones, just empty.
type DayPlan struct {
	Date  time.Time  `json:"date"`
	Slots []MealSlot `json:"slots"` // always len 3, MealTypes order
}

// NewPlaceholderDay builds a day with three empty slots.
func NewPlaceholderDay(date time.Time) DayPlan {
	day := DayPlan{Date: dateutil.DayStart(date)}
	for _, mt := range MealTypes {
		day.Slots = append(day.Slots, NewMealSlot(date, mt, SlotContent{}))
	}
	return day
}

// Clone deep-copies the day so callers never alias the store's slot slices.
func (d DayPlan) Clone() DayPlan {
	cp := d
	cp.Slots = make([]MealSlot, len(d.Slots))
	for i, slot := range d.Slots {
		slot.SlotContent = slot.SlotContent.Clone()
		cp.Slots[i] = slot
	}
	return cp
}

// Slot returns the day's slot for a meal type.
func (d *DayPlan) Slot(mealType MealType) *MealSlot {
	for i := range d.Slots {
		if d.Slots[i].MealType == mealType {
			return &d.Slots[i]
		}
	}
	return nil
}

// WeekWindow is 7 contiguous days starting at a Monday-aligned week start.
type WeekWindow struct {
	ID    string    `json:"id"` // week start day, YYYY-MM-DD
	Start time.Time `json:"start"`
	Days  []DayPlan `json:"days"`
}

// Clone deep-copies the week.
func (w *WeekWindow) Clone() *WeekWindow {
	if w == nil {
		return nil
	}
	cp := *w
	cp.Days = make([]DayPlan, len(w.Days))
	for i, day := range w.Days {
		cp.Days[i] = day.Clone()
	}
	return &cp
}

// PlanWindow is the root aggregate: three time-adjacent week windows whose
// concatenation forms a single 21-day timeline with no gaps.
type PlanWindow struct {
	Previous *WeekWindow `json:"previous"`
	Current  *WeekWindow `json:"current"`
	Next     *WeekWindow `json:"next"`
}

// Clone deep-copies the whole window.
func (w *PlanWindow) Clone() *PlanWindow {
	if w == nil {
		return nil
	}
	return &PlanWindow{
		Previous: w.Previous.Clone(),
		Current:  w.Current.Clone(),
		Next:     w.Next.Clone(),
	}
}

// Timeline flattens the three weeks into the 21-day date-ordered sequence
// the view projector slices.
func (w *PlanWindow) Timeline() []DayPlan {
	var days []DayPlan
	for _, week := range []*WeekWindow{w.Previous, w.Current, w.Next} {
		if week != nil {
			days = append(days, week.Days...)
		}
	}
	return days
}

// Contains reports whether the date falls inside the loaded timeline.
func (w *PlanWindow) Contains(date time.Time) bool {
	return w.FindDay(date) != nil
}

// FindDay returns the loaded day plan for a date, or nil.
func (w *PlanWindow) FindDay(date time.Time) *DayPlan {
	for _, week := range []*WeekWindow{w.Previous, w.Current, w.Next} {
		if week == nil {
			continue
		}
		for i := range week.Days {
			if dateutil.SameDay(week.Days[i].Date, date) {
				return &week.Days[i]
			}
		}
	}
	return nil
}

// FindSlot returns the loaded slot for (date, mealType), or nil.
func (w *PlanWindow) FindSlot(date time.Time, mealType MealType) *MealSlot {
	day := w.FindDay(date)
	if day == nil {
		return nil
	}
	return day.Slot(mealType)
}
