package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/models"
	"pizzeria-app/internal/services"
	"pizzeria-app/internal/validation"
)

type MenuHandler struct {
	Svc *services.MenuService
}

func NewMenuHandler(svc *services.MenuService) *MenuHandler {
	return &MenuHandler{Svc: svc}
}

// --- categories ---

func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Svc.ListCategories()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_categories", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": cats, "total": len(cats)})
}

func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	cat, err := h.Svc.AddCategory(req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cat)
}

func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.MenuCategory
	if !httpx.Decode(w, r, &req) {
		return
	}
	if err := h.Svc.UpdateCategory(&req); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, req)
}

func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.DeleteCategory(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// --- items ---

// ListItems supports q (name/description substring), category_id and
// available filters plus limit/page pagination.
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var categoryID uint
	if v := r.URL.Query().Get("category_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			categoryID = uint(n)
		}
	}
	var available *bool
	if v := r.URL.Query().Get("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			available = &b
		}
	}
	p := pageParams(r)
	items, total, err := h.Svc.SearchItems(q, categoryID, available, p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_items", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total, "limit": p.Limit, "offset": p.Offset})
}

func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url"`
		Available   *bool   `json:"available"`
		CategoryID  uint    `json:"category_id"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.PositiveFloat("price", req.Price, v)
	if req.CategoryID == 0 {
		v["category_id"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
		CategoryID:  req.CategoryID,
	}
	if err := h.Svc.AddItem(&item); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	current, err := h.Svc.GetItemByID(id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if current == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		Available   *bool    `json:"available"`
		CategoryID  *uint    `json:"category_id"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		current.Available = *req.Available
	}
	if req.CategoryID != nil {
		current.CategoryID = *req.CategoryID
	}
	if err := h.Svc.UpdateItem(current); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, current)
}

func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.DeleteItem(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
