package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// LedgerService manages income/expense entries and range totals.
type LedgerService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewLedgerService(db *gorm.DB, log *zap.Logger) *LedgerService {
	return &LedgerService{DB: db, Log: log}
}

func (s *LedgerService) Add(amount float64, entryType, description string, orderID *uint) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must_be_positive"}
	}
	if entryType != models.LedgerIncome && entryType != models.LedgerExpense {
		return nil, &ValidationError{Field: "type", Reason: "unknown_type"}
	}
	entry := models.LedgerEntry{Amount: amount, Type: entryType, Description: description, OrderID: orderID}
	if err := s.DB.Create(&entry).Error; err != nil {
		s.Log.Error("ledger entry create failed", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

func (s *LedgerService) GetByID(id uint) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := s.DB.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *LedgerService) Update(entry *models.LedgerEntry) error {
	if entry.ID == 0 {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	res := s.DB.Model(&models.LedgerEntry{}).Where("id = ?", entry.ID).Updates(map[string]any{
		"amount": entry.Amount, "type": entry.Type, "description": entry.Description,
	})
	if res.Error != nil {
		s.Log.Error("ledger entry update failed", zap.Uint("id", entry.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LedgerService) Delete(id uint) error {
	res := s.DB.Delete(&models.LedgerEntry{}, id)
	if res.Error != nil {
		s.Log.Error("ledger entry delete failed", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LedgerFilter narrows ledger searches; zero values are skipped and the
// date bounds are inclusive.
type LedgerFilter struct {
	Type    string
	From    time.Time
	To      time.Time
	OrderID *uint
}

// Search returns the matching page of entries plus the total match count.
func (s *LedgerService) Search(f LedgerFilter, p Page) ([]models.LedgerEntry, int64, error) {
	dbq := s.DB.Model(&models.LedgerEntry{})
	if f.Type != "" {
		dbq = dbq.Where("lower(type) LIKE ?", "%"+strings.ToLower(f.Type)+"%")
	}
	if !f.From.IsZero() {
		dbq = dbq.Where("occurred_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		dbq = dbq.Where("occurred_at <= ?", f.To)
	}
	if f.OrderID != nil {
		dbq = dbq.Where("order_id = ?", *f.OrderID)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.LedgerEntry
	if err := p.apply(dbq.Order("occurred_at desc")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// TotalIncome sums income entries within the inclusive range. Zero time
// bounds are skipped.
func (s *LedgerService) TotalIncome(from, to time.Time) (float64, error) {
	return s.total(models.LedgerIncome, from, to)
}

// TotalExpense sums expense entries within the inclusive range.
func (s *LedgerService) TotalExpense(from, to time.Time) (float64, error) {
	return s.total(models.LedgerExpense, from, to)
}

func (s *LedgerService) total(entryType string, from, to time.Time) (float64, error) {
	dbq := s.DB.Model(&models.LedgerEntry{}).Where("type = ?", entryType)
	if !from.IsZero() {
		dbq = dbq.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		dbq = dbq.Where("occurred_at <= ?", to)
	}
	var total *float64
	if err := dbq.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
