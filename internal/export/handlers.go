package export

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
	"menuboard/internal/userctx"
)

// Handler handles HTTP requests for week-menu exports.
type Handler struct {
	store     *planboard.Store
	generator *Generator
}

func NewHandler(store *planboard.Store, generator *Generator) *Handler {
	return &Handler{store: store, generator: generator}
}

// HandleExport handles GET /v1/board/export?format=pdf|csv&cursor=YYYY-MM-DD
//
// Exports the week containing the cursor, fetching it first when it falls
// outside the loaded window.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := userctx.OwnerID(ctx)

	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "format must be pdf or csv")
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
	if planboard.NeedsFetch(window, planboard.ViewWeek, cursor) {
		if window, err = h.store.Fetch(ctx, owner, cursor); err != nil {
			writeError(w, http.StatusBadGateway, "storage_error", "Failed to fetch plan window")
			return
		}
	}

	view := planboard.Project(window, planboard.ViewWeek, cursor)
	data, err := h.generator.Generate(view.Days, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate export")
		return
	}

	filename := fmt.Sprintf("menu-%s.%s", dateutil.FormatDay(view.Cursor), format)
	switch format {
	case FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
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
