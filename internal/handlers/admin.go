package handlers

import (
	"net/http"

	"pizzeria-app/internal/auth"
	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/services"
	"pizzeria-app/internal/validation"
)

type AdminHandler struct {
	Svc *services.AdminService
}

func NewAdminHandler(svc *services.AdminService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pageParams(r)
	admins, total, err := h.Svc.List(p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_admins", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": admins, "total": total, "limit": p.Limit, "offset": p.Offset})
}

// Create requires the calling administrator to be a super admin.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.AdminIDFromContext(r.Context())
	caller, err := h.Svc.GetByID(callerID)
	if err != nil || caller == nil || !caller.SuperAdmin {
		httpx.JSONError(w, http.StatusForbidden, "super_admin_required", nil)
		return
	}
	var req struct {
		Username   string  `json:"username"`
		Password   string  `json:"password"`
		Email      *string `json:"email"`
		SuperAdmin bool    `json:"super_admin"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	admin, err := h.Svc.Create(req.Username, req.Password, req.Email, req.SuperAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, admin)
}

// ChangePassword changes the calling administrator's own password.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.AdminIDFromContext(r.Context())
	if !ok || callerID == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	if err := h.Svc.ChangePassword(callerID, req.Current, req.New); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.AdminIDFromContext(r.Context())
	caller, err := h.Svc.GetByID(callerID)
	if err != nil || caller == nil || !caller.SuperAdmin {
		httpx.JSONError(w, http.StatusForbidden, "super_admin_required", nil)
		return
	}
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if id == callerID {
		httpx.JSONError(w, http.StatusBadRequest, "cannot_delete_self", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
