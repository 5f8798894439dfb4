package models

import "time"

// Customer entity
type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;index" json:"name"`
	Email        string    `gorm:"size:120;unique;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Address      string    `gorm:"not null" json:"address"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	// Deleting a customer removes their orders (ON DELETE CASCADE at the DB level).
	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}

func (Customer) TableName() string { return "clientes" }
