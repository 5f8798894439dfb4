package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/services"
)

// writeServiceError maps service errors onto HTTP responses following the
// taxonomy: validation -> 400, not found -> 404, duplicate -> 409,
// anything else -> 500 (already logged at the service boundary).
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	var ue *services.UnknownItemError
	var ie *services.ItemUnavailableError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{ve.Field: ve.Reason})
	case errors.As(err, &ue):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_menu_item", map[string]any{"menu_item_id": ue.ItemID})
	case errors.As(err, &ie):
		httpx.JSONError(w, http.StatusBadRequest, "item_unavailable", map[string]any{"menu_item_id": ie.ItemID, "name": ie.Name})
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrDuplicate):
		httpx.JSONError(w, http.StatusConflict, "duplicate_key", nil)
	case errors.Is(err, services.ErrWrongPassword):
		httpx.JSONError(w, http.StatusBadRequest, "wrong_password", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

const defaultPageSize = 50

// pageParams reads the limit/page query parameters every listing accepts.
// limit defaults to 50 and is capped at 200; page is 1-based.
func pageParams(r *http.Request) services.Page {
	limit := defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return services.Page{Limit: limit, Offset: offset}
}

func parseID(r *http.Request) uint {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	n, err := strconv.Atoi(idStr)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}
