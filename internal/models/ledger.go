package models

import "time"

// Ledger entry types. The sign of a movement is tracked via the type tag,
// amounts are stored positive.
const (
	LedgerIncome  = "Income"
	LedgerExpense = "Expense"
)

// LedgerEntry records an income or expense of the pizzeria, optionally
// linked to the order that generated it.
type LedgerEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OccurredAt  time.Time `gorm:"autoCreateTime;not null" json:"occurred_at"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `json:"description,omitempty"`
	OrderID     *uint     `gorm:"index" json:"order_id,omitempty"`
}

func (LedgerEntry) TableName() string { return "registros_financieros" }
