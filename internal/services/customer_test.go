package services

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"pizzeria-app/internal/models"
)

func TestCustomerCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	first := models.Customer{Name: "Ana", Email: "ana@x.com", Address: "Calle 1"}
	if err := svc.Create(&first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := models.Customer{Name: "Otra Ana", Email: "ana@x.com", Address: "Calle 2"}
	if err := svc.Create(&second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate got %v", err)
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	var ve *ValidationError
	if err := svc.Create(&models.Customer{Email: "a@x.com", Address: "Calle 1"}); !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error got %v", err)
	}
	if err := svc.Create(&models.Customer{Name: "Ana", Address: "Calle 1"}); !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email validation error got %v", err)
	}
	if err := svc.Create(&models.Customer{Name: "Ana", Email: "a@x.com"}); !errors.As(err, &ve) || ve.Field != "address" {
		t.Fatalf("expected address validation error got %v", err)
	}
}

func TestCustomerResolvePrefersEmailMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	existing := models.Customer{Name: "Ana", Email: "ana@x.com", Phone: "555-1234", Address: "Calle 1"}
	if err := svc.Create(&existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Email wins even when the name differs.
	got, err := svc.Resolve(ResolveInput{Name: "Different Name", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("expected existing customer %d got %d", existing.ID, got.ID)
	}
}

func TestCustomerResolvePhoneRequiresNameMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	existing := models.Customer{Name: "Ana", Email: "ana@x.com", Phone: "555-1234", Address: "Calle 1"}
	if err := svc.Create(&existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Same phone, matching name (case-insensitive): reuse.
	got, err := svc.Resolve(ResolveInput{Name: "ANA", Phone: "555-1234"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("expected existing customer got %d", got.ID)
	}

	// Same phone, different name: new customer required.
	got2, err := svc.Resolve(ResolveInput{Name: "Luis", Email: "luis@x.com", Phone: "555-1234", Address: "Calle 2"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got2.ID == existing.ID {
		t.Fatalf("expected new customer, reused %d", existing.ID)
	}
}

func TestCustomerResolveCreateRequiresFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	var ve *ValidationError
	if _, err := svc.Resolve(ResolveInput{Email: "new@x.com", Address: "Calle 1"}); !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error got %v", err)
	}
	if _, err := svc.Resolve(ResolveInput{Name: "Ana", Email: "new@x.com"}); !errors.As(err, &ve) || ve.Field != "address" {
		t.Fatalf("expected address validation error got %v", err)
	}
}

func TestCustomerSearchAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	ana := models.Customer{Name: "Ana García", Email: "ana@x.com", Phone: "555-1234", Address: "Calle 1"}
	luis := models.Customer{Name: "Luis Pérez", Email: "luis@x.com", Phone: "555-9999", Address: "Calle 2"}
	for _, c := range []*models.Customer{&ana, &luis} {
		if err := svc.Create(c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	found, total, err := svc.Search("garcía", Page{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || total != 1 || found[0].ID != ana.ID {
		t.Fatalf("expected Ana only, got %d rows total=%d", len(found), total)
	}
	byPhone, _, err := svc.Search("9999", Page{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].ID != luis.ID {
		t.Fatalf("expected Luis only, got %d rows", len(byPhone))
	}

	ana.Address = "Calle Nueva 5"
	if err := svc.Update(&ana); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.GetByID(ana.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Address != "Calle Nueva 5" {
		t.Fatalf("update not applied: %s", got.Address)
	}

	missing := models.Customer{ID: 9999, Name: "X", Email: "x@x.com", Address: "y"}
	if err := svc.Update(&missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestCustomerDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, zap.NewNop())

	c := models.Customer{Name: "Ana", Email: "ana@x.com", Address: "Calle 1"}
	if err := svc.Create(&c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := svc.GetByID(c.ID)
	if err != nil || got != nil {
		t.Fatalf("expected customer gone, got %+v, %v", got, err)
	}
	if err := svc.Delete(c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
