package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
	"pizzeria-app/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{}, &models.MenuCategory{}, &models.MenuItem{},
		&models.Order{}, &models.OrderLine{}, &models.LedgerEntry{},
		&models.PizzeriaProfile{}, &models.Administrator{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMenu(t *testing.T, db *gorm.DB) (models.MenuItem, models.MenuItem) {
	t.Helper()
	cat := models.MenuCategory{Name: "Pizzas"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	pizza := models.MenuItem{Name: "Pizza Margherita", Price: 10.00, Available: true, CategoryID: cat.ID}
	if err := db.Create(&pizza).Error; err != nil {
		t.Fatalf("seed pizza: %v", err)
	}
	side := models.MenuItem{Name: "Pan de Ajo", Price: 4.00, Available: true, CategoryID: cat.ID}
	if err := db.Create(&side).Error; err != nil {
		t.Fatalf("seed side: %v", err)
	}
	return pizza, side
}

func TestOrderCreateHTTP(t *testing.T) {
	db := setupTestDB(t)
	h := NewOrderHandler(services.NewOrderService(db, zap.NewNop()))
	pizza, side := seedMenu(t, db)

	body := fmt.Sprintf(`{
		"customer": {"name":"Ana","email":"ana@x.com","address":"Calle 1"},
		"items": [{"menu_item_id":%d,"quantity":2},{"menu_item_id":%d,"quantity":1}],
		"payment_method": "Cash"
	}`, pizza.ID, side.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Total != 24.00 {
		t.Fatalf("expected total 24.00 got %v", order.Total)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines got %d", len(order.Lines))
	}
	if order.Ledger == nil || order.Ledger.Amount != 24.00 {
		t.Fatalf("expected linked ledger entry, got %+v", order.Ledger)
	}
}

func TestOrderCreateUnavailableItem(t *testing.T) {
	db := setupTestDB(t)
	h := NewOrderHandler(services.NewOrderService(db, zap.NewNop()))
	pizza, _ := seedMenu(t, db)
	if err := db.Model(&models.MenuItem{}).Where("id = ?", pizza.ID).Update("available", false).Error; err != nil {
		t.Fatalf("mark unavailable: %v", err)
	}

	body := fmt.Sprintf(`{"customer":{"name":"Ana","email":"ana@x.com","address":"Calle 1"},"items":[{"menu_item_id":%d,"quantity":1}]}`, pizza.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "item_unavailable") {
		t.Fatalf("expected item_unavailable error, got %s", w.Body.String())
	}
	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if orders != 0 {
		t.Fatalf("expected no persisted order got %d", orders)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewOrderHandler(services.NewOrderService(db, zap.NewNop()))

	for _, body := range []string{
		`not json`,
		`{"customer":{"name":"Ana"},"items":[]}`,
		`{"customer":{"name":"Ana","email":"a@x.com"},"items":[{"menu_item_id":1,"quantity":0}]}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Create(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q got %d", body, w.Code)
		}
	}
}

func TestOrderGetByReferenceHTTP(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewOrderService(db, zap.NewNop())
	h := NewOrderHandler(svc)
	pizza, _ := seedMenu(t, db)

	order, err := svc.PlaceOrder(services.PlaceOrderInput{
		Customer: services.ResolveInput{Name: "Ana", Email: "ana@x.com", Address: "Calle 1"},
		Items:    []services.OrderItemInput{{MenuItemID: pizza.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/get?ref="+order.Reference, nil)
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/orders/get?ref=does-not-exist", nil)
	w2 := httptest.NewRecorder()
	h.Get(w2, req2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w2.Code)
	}
}

func TestOrderListInvalidDate(t *testing.T) {
	db := setupTestDB(t)
	h := NewOrderHandler(services.NewOrderService(db, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/orders?from=13-2024-99", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestOrderUpdateStatusHTTP(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewOrderService(db, zap.NewNop())
	h := NewOrderHandler(svc)
	pizza, _ := seedMenu(t, db)

	order, err := svc.PlaceOrder(services.PlaceOrderInput{
		Customer: services.ResolveInput{Name: "Ana", Email: "ana@x.com", Address: "Calle 1"},
		Items:    []services.OrderItemInput{{MenuItemID: pizza.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	body := fmt.Sprintf(`{"id":%d,"status":"Preparing"}`, order.ID)
	req := httptest.NewRequest(http.MethodPost, "/orders/status", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != models.StatusPreparing {
		t.Fatalf("expected Preparing got %s", got.Status)
	}

	bad := fmt.Sprintf(`{"id":%d,"status":"Teleported"}`, order.ID)
	w2 := httptest.NewRecorder()
	h.UpdateStatus(w2, httptest.NewRequest(http.MethodPost, "/orders/status", strings.NewReader(bad)))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w2.Code)
	}
}
