package handlers

import (
	"net/http"

	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/services"
)

type ProfileHandler struct {
	Svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Svc: svc}
}

// Get is public: the pizzeria's information is what the storefront shows.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_configured", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Ensure creates the profile when absent and returns the existing row
// otherwise, so repeated calls are harmless.
func (h *ProfileHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		Hours     string `json:"hours"`
		Facebook  string `json:"facebook"`
		Instagram string `json:"instagram"`

		MobilePayBank        string `json:"mobile_pay_bank"`
		MobilePayPhone       string `json:"mobile_pay_phone"`
		MobilePayNationalID  string `json:"mobile_pay_national_id"`
		MobilePayAccount     string `json:"mobile_pay_account"`
		MobilePayBeneficiary string `json:"mobile_pay_beneficiary"`

		WhatsAppNumber   string `json:"whatsapp_number"`
		WhatsAppChatLink string `json:"whatsapp_chat_link"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	p, err := h.Svc.Ensure(services.ProfileInput{
		Name:                 req.Name,
		Address:              req.Address,
		Phone:                req.Phone,
		Email:                req.Email,
		Hours:                req.Hours,
		Facebook:             req.Facebook,
		Instagram:            req.Instagram,
		MobilePayBank:        req.MobilePayBank,
		MobilePayPhone:       req.MobilePayPhone,
		MobilePayNationalID:  req.MobilePayNationalID,
		MobilePayAccount:     req.MobilePayAccount,
		MobilePayBeneficiary: req.MobilePayBeneficiary,
		WhatsAppNumber:       req.WhatsAppNumber,
		WhatsAppChatLink:     req.WhatsAppChatLink,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Update applies a partial update; absent JSON fields stay unchanged.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd services.ProfileUpdate
	if !httpx.Decode(w, r, &upd) {
		return
	}
	p, err := h.Svc.Update(upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
