package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrNotFound  = errors.New("not_found")
	ErrDuplicate = errors.New("duplicate_key")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

// ItemUnavailableError names the menu item that blocked an order.
type ItemUnavailableError struct {
	ItemID uint
	Name   string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("menu item %q (id=%d) is not available", e.Name, e.ItemID)
}

// UnknownItemError reports an order referencing a menu item id that does
// not exist. The whole order is rejected.
type UnknownItemError struct {
	ItemID uint
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("menu item with id=%d not found", e.ItemID)
}

// isDuplicate detects unique-constraint violations across drivers.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
