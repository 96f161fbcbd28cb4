package planboard

import (
	"encoding/json"
	"net/http"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/userctx"
)

// Handler handles HTTP requests for the planning board.
type Handler struct {
	store *Store
}

// NewHandler creates a new planning board handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// FetchRequest selects the window anchor. Anchor defaults to today.
type FetchRequest struct {
	Anchor string `json:"anchor,omitempty"`
}

// WindowResponse is the full three-week window.
type WindowResponse struct {
	Previous WeekDTO `json:"previous"`
	Current  WeekDTO `json:"current"`
	Next     WeekDTO `json:"next"`
}

type WeekDTO struct {
	ID    string   `json:"id"`
	Start string   `json:"start"`
	Days  []DayDTO `json:"days"`
}

type DayDTO struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

type SlotDTO struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	MealType        string          `json:"meal_type"`
	Entries         []MenuItemEntry `json:"entries"`
	IsOutside       bool            `json:"is_outside,omitempty"`
	OutsideLocation string          `json:"outside_location,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ViewResponse is a projected slice of the window.
type ViewResponse struct {
	Unit   string   `json:"unit"`
	Cursor string   `json:"cursor"`
	Days   []DayDTO `json:"days"`
}

// SaveSlotRequest replaces one slot's content.
type SaveSlotRequest struct {
	Date            string          `json:"date"`
	MealType        string          `json:"meal_type"`
	Entries         []MenuItemEntry `json:"entries"`
	IsOutside       bool            `json:"is_outside,omitempty"`
	OutsideLocation string          `json:"outside_location,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// MoveRequest relocates a slot's content, or a single entry of it when
// entry_id is set.
type MoveRequest struct {
	FromDate     string `json:"from_date"`
	FromMealType string `json:"from_meal_type"`
	ToDate       string `json:"to_date"`
	ToMealType   string `json:"to_meal_type"`
	EntryID      string `json:"entry_id,omitempty"`
}

type SnapshotTemplateRequest struct {
	Name string `json:"name"`
}

type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

// HandleFetch handles POST /v1/board/fetch
func (h *Handler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	var req FetchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
			return
		}
	}

	anchor := time.Now().UTC()
	if req.Anchor != "" {
		parsed, err := dateutil.ParseDay(req.Anchor)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "anchor must be YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	window, err := h.store.Fetch(ctx, owner, anchor)
	if err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", "Failed to fetch plan window")
		return
	}

	writeJSON(w, http.StatusOK, windowToResponse(window))
}

// HandleWindow handles GET /v1/board
func (h *Handler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())

	window := h.store.Window(owner)
	if window == nil {
		writeError(w, http.StatusConflict, "window_not_loaded", "No plan window loaded; fetch first")
		return
	}

	writeJSON(w, http.StatusOK, windowToResponse(window))
}

// HandleView handles GET /v1/board/view?unit=&cursor=YYYY-MM-DD
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	unit, err := ParseViewUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unit must be day, three_day or week")
		return
	}

	cursor := time.Now().UTC()
	if s := r.URL.Query().Get("cursor"); s != "" {
		if cursor, err = dateutil.ParseDay(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "cursor must be YYYY-MM-DD")
			return
		}
	}

	window := h.store.Window(owner)
	if NeedsFetch(window, unit, cursor) {
		if window, err = h.store.Fetch(ctx, owner, cursor); err != nil {
			writeError(w, http.StatusBadGateway, "storage_error", "Failed to fetch plan window")
			return
		}
	}

	writeJSON(w, http.StatusOK, viewToResponse(Project(window, unit, cursor)))
}

// HandleNavigate handles GET /v1/board/navigate?unit=&cursor=&direction=next|prev
func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	unit, err := ParseViewUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unit must be day, three_day or week")
		return
	}

	direction := r.URL.Query().Get("direction")
	if direction != "next" && direction != "prev" {
		writeError(w, http.StatusBadRequest, "invalid_request", "direction must be next or prev")
		return
	}

	cursor := time.Now().UTC()
	if s := r.URL.Query().Get("cursor"); s != "" {
		if cursor, err = dateutil.ParseDay(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "cursor must be YYYY-MM-DD")
			return
		}
	}

	current := Project(h.store.Window(owner), unit, cursor)
	next := Navigate(current, direction == "next")

	window := h.store.Window(owner)
	if NeedsFetch(window, unit, next) {
		if window, err = h.store.Fetch(ctx, owner, next); err != nil {
			writeError(w, http.StatusBadGateway, "storage_error", "Failed to fetch plan window")
			return
		}
	}

	writeJSON(w, http.StatusOK, viewToResponse(Project(window, unit, next)))
}

// HandleSaveSlot handles PUT /v1/board/slots
func (h *Handler) HandleSaveSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	var req SaveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}
	mealType, err := ParseMealType(req.MealType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "meal_type must be breakfast, lunch or dinner")
		return
	}

	content := SlotContent{
		Entries:         req.Entries,
		IsOutside:       req.IsOutside,
		OutsideLocation: req.OutsideLocation,
		Notes:           req.Notes,
	}
	if err := h.store.SaveSlot(ctx, owner, date, mealType, content); err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", "Failed to save slot")
		return
	}

	slot := NewMealSlot(date, mealType, content)
	writeJSON(w, http.StatusOK, slotToDTO(slot))
}

// HandleMove handles POST /v1/board/move
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	fromDate, err := dateutil.ParseDay(req.FromDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from_date must be YYYY-MM-DD")
		return
	}
	toDate, err := dateutil.ParseDay(req.ToDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to_date must be YYYY-MM-DD")
		return
	}
	fromMeal, err := ParseMealType(req.FromMealType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from_meal_type is invalid")
		return
	}
	toMeal, err := ParseMealType(req.ToMealType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to_meal_type is invalid")
		return
	}

	if err := h.store.MoveEntry(ctx, owner, nil, fromDate, fromMeal, toDate, toMeal, req.EntryID); err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", "Failed to move entry")
		return
	}

	writeJSON(w, http.StatusOK, windowToResponse(h.store.Window(owner)))
}

// HandleSnapshotTemplate handles POST /v1/templates/snapshot
func (h *Handler) HandleSnapshotTemplate(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())

	var req SnapshotTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	tpl, err := h.store.SnapshotTemplate(owner, req.Name)
	if err != nil {
		if err == ErrWindowNotLoaded {
			writeError(w, http.StatusConflict, "window_not_loaded", "Fetch the board before snapshotting")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "template_limit", "Template limit reached")
		return
	}

	writeJSON(w, http.StatusCreated, tpl)
}

// HandleApplyTemplate handles POST /v1/templates/apply
func (h *Handler) HandleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())

	var req ApplyTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	if !h.store.ApplyTemplate(owner, req.TemplateID) {
		writeError(w, http.StatusNotFound, "not_found", "Template not found")
		return
	}

	writeJSON(w, http.StatusOK, windowToResponse(h.store.Window(owner)))
}

// HandleListTemplates handles GET /v1/templates
func (h *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": h.store.Templates().List(owner),
	})
}

// HandleDeleteTemplate handles DELETE /v1/templates/{id}
func (h *Handler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())
	if !h.store.Templates().Delete(owner, r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "not_found", "Template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func windowToResponse(window *PlanWindow) WindowResponse {
	if window == nil {
		return WindowResponse{}
	}
	return WindowResponse{
		Previous: weekToDTO(window.Previous),
		Current:  weekToDTO(window.Current),
		Next:     weekToDTO(window.Next),
	}
}

func weekToDTO(week *WeekWindow) WeekDTO {
	if week == nil {
		return WeekDTO{}
	}
	dto := WeekDTO{
		ID:    week.ID,
		Start: dateutil.FormatDay(week.Start),
	}
	for _, day := range week.Days {
		dto.Days = append(dto.Days, dayToDTO(day))
	}
	return dto
}

func dayToDTO(day DayPlan) DayDTO {
	dto := DayDTO{Date: dateutil.FormatDay(day.Date)}
	for _, slot := range day.Slots {
		dto.Slots = append(dto.Slots, slotToDTO(slot))
	}
	return dto
}

func slotToDTO(slot MealSlot) SlotDTO {
	entries := slot.Entries
	if entries == nil {
		entries = []MenuItemEntry{}
	}
	return SlotDTO{
		ID:              slot.ID,
		Date:            dateutil.FormatDay(slot.Date),
		MealType:        string(slot.MealType),
		Entries:         entries,
		IsOutside:       slot.IsOutside,
		OutsideLocation: slot.OutsideLocation,
		Notes:           slot.Notes,
	}
}

func viewToResponse(view View) ViewResponse {
	resp := ViewResponse{
		Unit:   string(view.Unit),
		Cursor: dateutil.FormatDay(view.Cursor),
		Days:   []DayDTO{},
	}
	for _, day := range view.Days {
		resp.Days = append(resp.Days, dayToDTO(day))
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
