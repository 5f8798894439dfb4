package models

import "time"

// Order statuses. Any status can be set by an administrative action;
// there is no enforced transition graph.
const (
	StatusPending        = "Pending"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "OutForDelivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// Payment method tags.
const (
	PaymentCash          = "Cash"
	PaymentMobilePayment = "MobilePayment"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Reference       string      `gorm:"size:36;uniqueIndex" json:"reference"`
	CustomerID      uint        `gorm:"not null;index" json:"customer_id"`
	Customer        Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	DeliveryAddress string      `gorm:"not null" json:"delivery_address"`
	Total           float64     `gorm:"not null" json:"total"`
	Status          string      `gorm:"size:50;not null;default:'Pending'" json:"status"`
	PaymentMethod   string      `gorm:"size:30" json:"payment_method,omitempty"`
	PlacedAt        time.Time   `gorm:"autoCreateTime" json:"placed_at"`
	Lines           []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	// At most one income entry per order; unlinked (SET NULL) if the order goes away.
	Ledger *LedgerEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL" json:"ledger,omitempty"`
}

func (Order) TableName() string { return "pedidos" }

// OrderLine captures the unit price at order time so historical orders are
// immune to later menu price changes.
type OrderLine struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null;index" json:"order_id"`
	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	Item       MenuItem `gorm:"foreignKey:MenuItemID" json:"item,omitempty"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	UnitPrice  float64  `gorm:"not null" json:"unit_price"`
}

func (OrderLine) TableName() string { return "detalles_pedido" }
