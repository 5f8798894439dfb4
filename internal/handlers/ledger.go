package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/services"
	"pizzeria-app/internal/validation"
)

type LedgerHandler struct {
	Svc *services.LedgerService
}

func NewLedgerHandler(svc *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{Svc: svc}
}

// List supports type, from/to (YYYY-MM-DD, inclusive) and order_id
// filters plus limit/page pagination.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	f := services.LedgerFilter{}
	f.Type = strings.TrimSpace(r.URL.Query().Get("type"))
	var errFrom, errTo error
	f.From, errFrom = parseDate(r.URL.Query().Get("from"), false)
	f.To, errTo = parseDate(r.URL.Query().Get("to"), true)
	if errFrom != nil || errTo != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"format": "YYYY-MM-DD"})
		return
	}
	if v := r.URL.Query().Get("order_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			id := uint(n)
			f.OrderID = &id
		}
	}
	p := pageParams(r)
	entries, total, err := h.Svc.Search(f, p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_entries", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries, "total": total, "limit": p.Limit, "offset": p.Offset})
}

func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
		OrderID     *uint   `json:"order_id"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.PositiveFloat("amount", req.Amount, v)
	validation.OneOf("type", req.Type, []string{"Income", "Expense"}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	entry, err := h.Svc.Add(req.Amount, req.Type, req.Description, req.OrderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// Summary returns income, expense and net totals over an optional range.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, errFrom := parseDate(r.URL.Query().Get("from"), false)
	to, errTo := parseDate(r.URL.Query().Get("to"), true)
	if errFrom != nil || errTo != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"format": "YYYY-MM-DD"})
		return
	}
	income, err := h.Svc.TotalIncome(from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	expense, err := h.Svc.TotalExpense(from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"income":  income,
		"expense": expense,
		"net":     income - expense,
	})
}
