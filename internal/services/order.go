package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// OrderService carries the order-placement workflow plus the usual CRUD
// and filtered queries over orders.
type OrderService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewOrderService(db *gorm.DB, log *zap.Logger) *OrderService {
	return &OrderService{DB: db, Log: log}
}

type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type PlaceOrderInput struct {
	Customer        ResolveInput
	DeliveryAddress string // falls back to the customer's stored address
	Items           []OrderItemInput
	PaymentMethod   string // optional: Cash | MobilePayment
}

// PlaceOrder resolves the customer, validates and prices the requested menu
// items, persists the order with its lines and records the matching income
// ledger entry, all in a single transaction. Any failure rolls back the
// whole order; no partial rows survive.
//
// The total is always computed here from current menu prices; unit prices
// are snapshot into the lines. Unknown menu item ids reject the whole order.
func (s *OrderService) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "required"}
	}
	if pm := in.PaymentMethod; pm != "" && pm != models.PaymentCash && pm != models.PaymentMobilePayment {
		return nil, &ValidationError{Field: "payment_method", Reason: "unknown_method"}
	}

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cust, err := resolveCustomer(tx, in.Customer)
		if err != nil {
			return err
		}
		addr := strings.TrimSpace(in.DeliveryAddress)
		if addr == "" {
			addr = cust.Address
		}
		if addr == "" {
			return &ValidationError{Field: "delivery_address", Reason: "required"}
		}

		var total float64
		lines := make([]models.OrderLine, 0, len(in.Items))
		for _, req := range in.Items {
			if req.Quantity <= 0 {
				return &ValidationError{Field: "quantity", Reason: "must_be_positive"}
			}
			var item models.MenuItem
			err := tx.First(&item, req.MenuItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &UnknownItemError{ItemID: req.MenuItemID}
			}
			if err != nil {
				return err
			}
			if !item.Available {
				return &ItemUnavailableError{ItemID: item.ID, Name: item.Name}
			}
			// Snapshot the price at this instant.
			lines = append(lines, models.OrderLine{
				MenuItemID: item.ID,
				Quantity:   req.Quantity,
				UnitPrice:  item.Price,
			})
			total += float64(req.Quantity) * item.Price
		}

		order := models.Order{
			Reference:       uuid.NewString(),
			CustomerID:      cust.ID,
			DeliveryAddress: addr,
			Total:           total,
			Status:          models.StatusPending,
			PaymentMethod:   in.PaymentMethod,
			Lines:           lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		entry := models.LedgerEntry{
			Amount:      total,
			Type:        models.LedgerIncome,
			Description: fmt.Sprintf("Order #%d for %s", order.ID, cust.Name),
			OrderID:     &order.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		var ve *ValidationError
		var ue *UnknownItemError
		var ie *ItemUnavailableError
		if !errors.As(err, &ve) && !errors.As(err, &ue) && !errors.As(err, &ie) && !errors.Is(err, ErrDuplicate) {
			s.Log.Error("order placement failed", zap.Error(err))
		}
		return nil, err
	}
	return s.GetByID(orderID)
}

// GetByID returns the order with customer, lines (and their items) and
// ledger entry eagerly loaded, or (nil, nil) when it does not exist.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	err := s.DB.
		Preload("Customer").
		Preload("Lines.Item").
		Preload("Ledger").
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderService) GetByReference(ref string) (*models.Order, error) {
	var o models.Order
	err := s.DB.
		Preload("Customer").
		Preload("Lines.Item").
		Preload("Ledger").
		Where("reference = ?", ref).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus sets the order status. The value must be a known status but
// transitions are otherwise unrestricted.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: "unknown_status"}
	}
	res := s.DB.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		s.Log.Error("order status update failed", zap.Uint("id", id), zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

// SearchFilter narrows order listings. Zero values are skipped; the date
// bounds are inclusive.
type SearchFilter struct {
	CustomerID uint
	Status     string
	From       time.Time
	To         time.Time
}

// Search returns the matching page of orders plus the total match count.
func (s *OrderService) Search(f SearchFilter, p Page) ([]models.Order, int64, error) {
	dbq := s.DB.Model(&models.Order{})
	if f.CustomerID != 0 {
		dbq = dbq.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		dbq = dbq.Where("lower(status) LIKE ?", "%"+strings.ToLower(f.Status)+"%")
	}
	if !f.From.IsZero() {
		dbq = dbq.Where("placed_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		dbq = dbq.Where("placed_at <= ?", f.To)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Order
	if err := p.apply(dbq.Preload("Customer").Order("id desc")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Delete removes an order and its lines; a linked ledger entry is kept but
// unlinked. The three steps run in one transaction so no half-deleted order
// is ever visible.
func (s *OrderService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LedgerEntry{}).Where("order_id = ?", id).Update("order_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
