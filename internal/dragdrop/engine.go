package dragdrop

import (
	"context"
	"sync"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
)

// Mover performs the resolved move. *planboard.Store satisfies it.
type Mover interface {
	MoveEntry(ctx context.Context, ownerUserID string, sourceContent *planboard.SlotContent, fromDate time.Time, fromMeal planboard.MealType, toDate time.Time, toMeal planboard.MealType, specificEntryID string) error
}

// Engine is the drag gesture state machine. It has exactly two states per
// owner: idle (no tracked drag) and dragging (an active payload is held).
// Drag-end returns to idle whether or not a move was resolved.
type Engine struct {
	mover Mover

	mu     sync.Mutex
	active map[string]*Payload // owner user id -> active drag
}

func NewEngine(mover Mover) *Engine {
	return &Engine{
		mover:  mover,
		active: make(map[string]*Payload),
	}
}

// Start transitions the owner's gesture to dragging, replacing any
// previously tracked drag.
func (e *Engine) Start(ownerUserID string, payload Payload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active[ownerUserID] = &payload
}

// Active returns the tracked drag payload, or nil when idle.
func (e *Engine) Active(ownerUserID string) *Payload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active[ownerUserID]
}

// Cancel drops the tracked drag without resolving a move.
func (e *Engine) Cancel(ownerUserID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.active, ownerUserID)
}

// End completes the gesture. target is the drop zone payload, or nil when
// the drag ended outside any valid target. Unresolvable drops (no tracked
// drag, no target, source equals target, or a move failure) are silent
// no-ops: the gesture most often just ended nowhere useful, and the board
// stays as it was. The engine always returns to idle.
//
// Moved reports whether a move was issued and succeeded, so callers can
// decide whether to re-project.
func (e *Engine) End(ctx context.Context, ownerUserID string, target *Payload) (moved bool) {
	e.mu.Lock()
	source := e.active[ownerUserID]
	delete(e.active, ownerUserID)
	e.mu.Unlock()

	if source == nil || target == nil {
		return false
	}
	if dateutil.SameDay(source.Date, target.Date) && source.MealType == target.MealType {
		return false
	}

	entryID := ""
	if source.Kind == KindEntry {
		entryID = source.EntryID
	}

	err := e.mover.MoveEntry(ctx, ownerUserID, nil, source.Date, source.MealType, target.Date, target.MealType, entryID)
	return err == nil
}
