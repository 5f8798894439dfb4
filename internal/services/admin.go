package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// ErrWrongPassword is returned by ChangePassword when the current password
// does not match.
var ErrWrongPassword = errors.New("wrong_password")

// AdminService manages administrator accounts and credential checks.
type AdminService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAdminService(db *gorm.DB, log *zap.Logger) *AdminService {
	return &AdminService{DB: db, Log: log}
}

// Create hashes the password with bcrypt and stores the administrator.
func (s *AdminService) Create(username, password string, email *string, superAdmin bool) (*models.Administrator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := models.Administrator{Username: username, PasswordHash: string(hash), Email: email, SuperAdmin: superAdmin}
	if err := s.DB.Create(&admin).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("administrator %s: %w", username, ErrDuplicate)
		}
		s.Log.Error("administrator create failed", zap.Error(err))
		return nil, err
	}
	return &admin, nil
}

func (s *AdminService) GetByID(id uint) (*models.Administrator, error) {
	var a models.Administrator
	err := s.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByUsername is case-sensitive.
func (s *AdminService) GetByUsername(username string) (*models.Administrator, error) {
	var a models.Administrator
	err := s.DB.Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminService) GetByEmail(email string) (*models.Administrator, error) {
	var a models.Administrator
	err := s.DB.Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Verify reports whether the username/password pair matches a stored
// administrator. It never returns an error: unknown usernames, lookup
// failures and malformed stored hashes all read as false.
func (s *AdminService) Verify(username, password string) bool {
	admin, err := s.GetByUsername(username)
	if err != nil {
		s.Log.Error("administrator lookup failed", zap.String("username", username), zap.Error(err))
		return false
	}
	if admin == nil {
		return false
	}
	// CompareHashAndPassword rejects malformed hashes with an error,
	// which is exactly the failure answer we want.
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AdminService) ChangePassword(id uint, current, updated string) error {
	if updated == "" {
		return &ValidationError{Field: "new_password", Reason: "required"}
	}
	var a models.Administrator
	if err := s.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.Model(&a).Update("password_hash", string(hash)).Error
}

// Update changes username/email/super-admin flag. Password changes go
// through ChangePassword so the hash is never bypassed.
func (s *AdminService) Update(a *models.Administrator) error {
	if a.ID == 0 {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	res := s.DB.Model(&models.Administrator{}).Where("id = ?", a.ID).Updates(map[string]any{
		"username": a.Username, "email": a.Email, "super_admin": a.SuperAdmin,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return fmt.Errorf("administrator %s: %w", a.Username, ErrDuplicate)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminService) Delete(id uint) error {
	res := s.DB.Delete(&models.Administrator{}, id)
	if res.Error != nil {
		s.Log.Error("administrator delete failed", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminService) List(p Page) ([]models.Administrator, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Administrator{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Administrator
	if err := p.apply(s.DB.Order("username")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
