package dragdrop

import (
	"fmt"
	"strings"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
)

// Kind discriminates what a drag payload refers to.
type Kind string

const (
	KindSlot  Kind = "slot"
	KindEntry Kind = "entry"
	KindZone  Kind = "zone"
)

// Payload is the structured description of a draggable or droppable unit.
// The string ids below exist for wire interoperability; inside the engine
// the payload is authoritative and ids are treated as opaque keys.
type Payload struct {
	Kind     Kind               `json:"kind"`
	Date     time.Time          `json:"date"`
	MealType planboard.MealType `json:"meal_type"`
	SlotID   string             `json:"slot_id,omitempty"`
	EntryID  string             `json:"entry_id,omitempty"`
}

// SlotDragID builds the draggable id for a whole meal slot:
// {isoDate}-{mealType}-{slotId}.
func SlotDragID(date time.Time, mealType planboard.MealType) string {
	return fmt.Sprintf("%s-%s-%s", dateutil.FormatDay(date), mealType, planboard.SlotID(date, mealType))
}

// EntryDragID builds the draggable id for a single entry within a slot:
// item-{isoDate}-{mealType}-{entryId}.
func EntryDragID(date time.Time, mealType planboard.MealType, entryID string) string {
	return fmt.Sprintf("item-%s-%s-%s", dateutil.FormatDay(date), mealType, entryID)
}

// DropZoneID builds the droppable id for a date+meal cell:
// drop-{isoDate}-{mealType}.
func DropZoneID(date time.Time, mealType planboard.MealType) string {
	return fmt.Sprintf("drop-%s-%s", dateutil.FormatDay(date), mealType)
}

// ParseDragID decodes a draggable id into its payload. The ISO date spans
// three dash-separated tokens; entry ids may themselves contain dashes, so
// everything after the meal-type token is the entry id.
func ParseDragID(id string) (Payload, error) {
	parts := strings.Split(id, "-")

	if parts[0] == "item" {
		if len(parts) < 6 {
			return Payload{}, fmt.Errorf("malformed entry drag id %q", id)
		}
		date, err := dateutil.ParseDay(strings.Join(parts[1:4], "-"))
		if err != nil {
			return Payload{}, fmt.Errorf("entry drag id %q: %w", id, err)
		}
		mealType, err := planboard.ParseMealType(parts[4])
		if err != nil {
			return Payload{}, fmt.Errorf("entry drag id %q: %w", id, err)
		}
		return Payload{
			Kind:     KindEntry,
			Date:     date,
			MealType: mealType,
			EntryID:  strings.Join(parts[5:], "-"),
		}, nil
	}

	if len(parts) < 4 {
		return Payload{}, fmt.Errorf("malformed slot drag id %q", id)
	}
	date, err := dateutil.ParseDay(strings.Join(parts[0:3], "-"))
	if err != nil {
		return Payload{}, fmt.Errorf("slot drag id %q: %w", id, err)
	}
	mealType, err := planboard.ParseMealType(parts[3])
	if err != nil {
		return Payload{}, fmt.Errorf("slot drag id %q: %w", id, err)
	}
	return Payload{
		Kind:     KindSlot,
		Date:     date,
		MealType: mealType,
		SlotID:   planboard.SlotID(date, mealType),
	}, nil
}

// ParseDropID decodes a droppable zone id: drop-{isoDate}-{mealType}. The
// trailing token identifies the meal type.
func ParseDropID(id string) (Payload, error) {
	parts := strings.Split(id, "-")
	if len(parts) < 5 || parts[0] != "drop" {
		return Payload{}, fmt.Errorf("malformed drop zone id %q", id)
	}
	date, err := dateutil.ParseDay(strings.Join(parts[1:4], "-"))
	if err != nil {
		return Payload{}, fmt.Errorf("drop zone id %q: %w", id, err)
	}
	mealType, err := planboard.ParseMealType(parts[len(parts)-1])
	if err != nil {
		return Payload{}, fmt.Errorf("drop zone id %q: %w", id, err)
	}
	return Payload{Kind: KindZone, Date: date, MealType: mealType}, nil
}
