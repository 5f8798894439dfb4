package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/services"
	"pizzeria-app/internal/validation"
)

type OrderHandler struct {
	Svc *services.OrderService
}

func NewOrderHandler(svc *services.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

// Create places an order: resolves the customer from the supplied info,
// validates the requested items and returns the persisted order with its
// lines and ledger entry.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Phone   string `json:"phone"`
			Address string `json:"address"`
		} `json:"customer"`
		DeliveryAddress string                     `json:"delivery_address"`
		Items           []services.OrderItemInput  `json:"items"`
		PaymentMethod   string                     `json:"payment_method"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("customer.name", req.Customer.Name, v)
	validation.Required("customer.email", req.Customer.Email, v)
	validation.Email("customer.email", req.Customer.Email, v)
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	for _, it := range req.Items {
		if it.MenuItemID == 0 || it.Quantity <= 0 {
			v["items"] = "invalid_item_or_quantity"
			break
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	order, err := h.Svc.PlaceOrder(services.PlaceOrderInput{
		Customer: services.ResolveInput{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// List supports customer_id, status substring and from/to date filters
// (YYYY-MM-DD, inclusive) plus limit/page pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	f := services.SearchFilter{}
	if v := r.URL.Query().Get("customer_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.CustomerID = uint(n)
		}
	}
	f.Status = strings.TrimSpace(r.URL.Query().Get("status"))
	var errFrom, errTo error
	f.From, errFrom = parseDate(r.URL.Query().Get("from"), false)
	f.To, errTo = parseDate(r.URL.Query().Get("to"), true)
	if errFrom != nil || errTo != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"format": "YYYY-MM-DD"})
		return
	}
	p := pageParams(r)
	orders, total, err := h.Svc.Search(f, p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": total, "limit": p.Limit, "offset": p.Offset})
}

// Get fetches one order by ?id= or ?ref=.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if ref := strings.TrimSpace(r.URL.Query().Get("ref")); ref != "" {
		order, err := h.Svc.GetByReference(ref)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			return
		}
		if order == nil {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, order)
		return
	}
	id := parseID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	order, err := h.Svc.GetByID(id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if order == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	order, err := h.Svc.UpdateStatus(req.ID, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// parseDate parses YYYY-MM-DD; endOfDay widens the bound to the last
// instant of that day so to-filters stay inclusive.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
