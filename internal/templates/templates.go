// Package templates holds named, date-independent snapshots of one week's
// slot arrangement. Templates live in process memory for the lifetime of the
// server; they are created by snapshot, mutated only by deletion.
package templates

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TemplateEntry is one dish in a template slot: name and recipe link only.
// Notes, outing state and entry ids are not snapshotted; applying a
// template matches slots by position, not by id.
type TemplateEntry struct {
	Name     string  `json:"name"`
	RecipeID *string `json:"recipe_id,omitempty"`
}

// TemplateSlot addresses one slot by week position (0=Monday … 6=Sunday)
// and meal type.
type TemplateSlot struct {
	DayIndex int             `json:"day_index"`
	MealType string          `json:"meal_type"`
	Entries  []TemplateEntry `json:"entries"`
}

// Template is a saved weekly arrangement.
type Template struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slots     []TemplateSlot `json:"slots"`
	CreatedAt time.Time      `json:"created_at"`
}

// Engine stores templates per owner.
type Engine struct {
	mu          sync.RWMutex
	byOwner     map[string]map[string]Template // owner -> template id -> template
	maxPerOwner int
}

// NewEngine creates an empty template engine. maxPerOwner <= 0 disables the
// limit.
func NewEngine(maxPerOwner int) *Engine {
	return &Engine{
		byOwner:     make(map[string]map[string]Template),
		maxPerOwner: maxPerOwner,
	}
}

// Save stores a new template and returns it with its assigned id.
func (e *Engine) Save(ownerUserID, name string, slots []TemplateSlot) (Template, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	owned := e.byOwner[ownerUserID]
	if owned == nil {
		owned = make(map[string]Template)
		e.byOwner[ownerUserID] = owned
	}
	if e.maxPerOwner > 0 && len(owned) >= e.maxPerOwner {
		return Template{}, false
	}

	tpl := Template{
		ID:        uuid.New().String(),
		Name:      name,
		Slots:     slots,
		CreatedAt: time.Now().UTC(),
	}
	owned[tpl.ID] = tpl
	return tpl, true
}

// Get returns a template by id within the owner.
func (e *Engine) Get(ownerUserID, id string) (Template, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tpl, ok := e.byOwner[ownerUserID][id]
	return tpl, ok
}

// List returns the owner's templates, newest first.
func (e *Engine) List(ownerUserID string) []Template {
	e.mu.RLock()
	defer e.mu.RUnlock()

	owned := e.byOwner[ownerUserID]
	list := make([]Template, 0, len(owned))
	for _, tpl := range owned {
		list = append(list, tpl)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// Delete removes a template. Returns false if the id is unknown.
func (e *Engine) Delete(ownerUserID, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	owned := e.byOwner[ownerUserID]
	if _, ok := owned[id]; !ok {
		return false
	}
	delete(owned, id)
	return true
}
