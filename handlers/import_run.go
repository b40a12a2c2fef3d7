package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/camden-git/photoopsbackend/database"
)

const defaultImportRunLimit = 20

// ImportRunHandler serves the import-run audit log.
type ImportRunHandler struct {
	DB *sql.DB
}

// ListImportRuns returns recent import passes, newest first. The optional
// ?limit= query parameter bounds the result.
func (h *ImportRunHandler) ListImportRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultImportRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteAPIError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := database.ListImportRuns(h.DB, limit)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list import runs")
		return
	}
	WriteJSON(w, http.StatusOK, runs)
}
