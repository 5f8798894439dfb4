package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// CustomerService wraps CRUD and lookup operations for customers.
type CustomerService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewCustomerService(db *gorm.DB, log *zap.Logger) *CustomerService {
	return &CustomerService{DB: db, Log: log}
}

// ResolveInput is the partial identifying information supplied with an order.
type ResolveInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *CustomerService) Create(c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &ValidationError{Field: "email", Reason: "required"}
	}
	if strings.TrimSpace(c.Address) == "" {
		return &ValidationError{Field: "address", Reason: "required"}
	}
	if err := s.DB.Create(c).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("customer %s: %w", c.Email, ErrDuplicate)
		}
		s.Log.Error("customer create failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	var c models.Customer
	err := s.DB.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) GetByEmail(email string) (*models.Customer, error) {
	var c models.Customer
	err := s.DB.Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Search matches name, email or phone against q (case-insensitive
// substring) and returns the page plus the total match count.
func (s *CustomerService) Search(q string, p Page) ([]models.Customer, int64, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	dbq := s.DB.Model(&models.Customer{}).
		Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ?", like, like, like)
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Customer
	if err := p.apply(dbq.Order("id")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Resolve returns an existing customer for the supplied info or creates a
// new one. Exact email match takes priority; a phone match is accepted only
// when the stored name also matches case-insensitively; creation is the
// last resort. An existing email match is never duplicated.
func (s *CustomerService) Resolve(in ResolveInput) (*models.Customer, error) {
	return resolveCustomer(s.DB, in)
}

// resolveCustomer carries the actual lookup-or-create logic so the order
// workflow can run it inside its own transaction.
func resolveCustomer(tx *gorm.DB, in ResolveInput) (*models.Customer, error) {
	email := strings.TrimSpace(in.Email)
	if email != "" {
		var c models.Customer
		err := tx.Where("email = ?", email).First(&c).Error
		if err == nil {
			return &c, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		var c models.Customer
		err := tx.Where("phone = ?", phone).First(&c).Error
		if err == nil && strings.EqualFold(c.Name, strings.TrimSpace(in.Name)) {
			return &c, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	c := models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Phone:   phone,
		Address: strings.TrimSpace(in.Address),
	}
	if c.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if c.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if c.Address == "" {
		return nil, &ValidationError{Field: "address", Reason: "required"}
	}
	if err := tx.Create(&c).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("customer %s: %w", c.Email, ErrDuplicate)
		}
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Update(c *models.Customer) error {
	if c.ID == 0 {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	res := s.DB.Model(&models.Customer{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name": c.Name, "email": c.Email, "phone": c.Phone, "address": c.Address,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return fmt.Errorf("customer %s: %w", c.Email, ErrDuplicate)
		}
		s.Log.Error("customer update failed", zap.Uint("id", c.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerService) Delete(id uint) error {
	res := s.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		s.Log.Error("customer delete failed", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerService) List(p Page) ([]models.Customer, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Customer
	if err := p.apply(s.DB.Order("id")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
