package dragdrop

import (
	"encoding/json"
	"net/http"

	"menuboard/internal/userctx"
)

// Handler handles HTTP requests for drag gestures.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// StartRequest begins a drag. Clients send the structured payload when they
// have it; the drag id alone is accepted as a fallback and decoded here, at
// the edge, so the engine only ever sees payloads.
type StartRequest struct {
	DragID  string   `json:"drag_id,omitempty"`
	Payload *Payload `json:"payload,omitempty"`
}

// EndRequest completes a drag. An absent target means the drag ended
// outside any droppable zone.
type EndRequest struct {
	DropID string   `json:"drop_id,omitempty"`
	Target *Payload `json:"target,omitempty"`
}

type EndResponse struct {
	Moved bool `json:"moved"`
}

// HandleStart handles POST /v1/board/drag/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	owner := userctx.OwnerID(r.Context())

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	payload := req.Payload
	if payload == nil {
		if req.DragID == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "drag_id or payload is required")
			return
		}
		parsed, err := ParseDragID(req.DragID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Unrecognized drag id")
			return
		}
		payload = &parsed
	}

	h.engine.Start(owner, *payload)
	w.WriteHeader(http.StatusNoContent)
}

// HandleEnd handles POST /v1/board/drag/end
//
// An unresolvable drop is not an error: the engine treats it as a no-op and
// the response reports moved=false.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	var req EndRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
			return
		}
	}

	target := req.Target
	if target == nil && req.DropID != "" {
		if parsed, err := ParseDropID(req.DropID); err == nil {
			target = &parsed
		}
	}

	moved := h.engine.End(ctx, owner, target)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(EndResponse{Moved: moved})
}

// HandleCancel handles POST /v1/board/drag/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.engine.Cancel(userctx.OwnerID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

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
