package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// MenuService manages menu categories and items.
type MenuService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewMenuService(db *gorm.DB, log *zap.Logger) *MenuService {
	return &MenuService{DB: db, Log: log}
}

// --- categories ---

func (s *MenuService) AddCategory(name, description string) (*models.MenuCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	cat := models.MenuCategory{Name: name, Description: description}
	if err := s.DB.Create(&cat).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("category %s: %w", name, ErrDuplicate)
		}
		s.Log.Error("category create failed", zap.Error(err))
		return nil, err
	}
	return &cat, nil
}

func (s *MenuService) GetCategoryByID(id uint) (*models.MenuCategory, error) {
	var cat models.MenuCategory
	err := s.DB.First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *MenuService) GetCategoryByName(name string) (*models.MenuCategory, error) {
	var cat models.MenuCategory
	err := s.DB.Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *MenuService) UpdateCategory(cat *models.MenuCategory) error {
	if cat.ID == 0 {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	res := s.DB.Model(&models.MenuCategory{}).Where("id = ?", cat.ID).Updates(map[string]any{
		"name": cat.Name, "description": cat.Description,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return fmt.Errorf("category %s: %w", cat.Name, ErrDuplicate)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category and, via cascade, its items.
func (s *MenuService) DeleteCategory(id uint) error {
	res := s.DB.Delete(&models.MenuCategory{}, id)
	if res.Error != nil {
		s.Log.Error("category delete failed", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MenuService) ListCategories() ([]models.MenuCategory, error) {
	var out []models.MenuCategory
	if err := s.DB.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --- items ---

func (s *MenuService) AddItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if item.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must_be_positive"}
	}
	if item.CategoryID == 0 {
		return &ValidationError{Field: "category_id", Reason: "required"}
	}
	var count int64
	if err := s.DB.Model(&models.MenuCategory{}).Where("id = ?", item.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Field: "category_id", Reason: "unknown_category"}
	}
	if err := s.DB.Create(item).Error; err != nil {
		s.Log.Error("menu item create failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *MenuService) GetItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.Preload("Category").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SearchItems filters by name/description substring, category and
// availability, skipping nil filters, and returns the page plus the
// total match count.
func (s *MenuService) SearchItems(q string, categoryID uint, available *bool, p Page) ([]models.MenuItem, int64, error) {
	dbq := s.DB.Model(&models.MenuItem{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(description) LIKE ?", like, like)
	}
	if categoryID != 0 {
		dbq = dbq.Where("category_id = ?", categoryID)
	}
	if available != nil {
		dbq = dbq.Where("available = ?", *available)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.MenuItem
	if err := p.apply(dbq.Order("id")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *MenuService) UpdateItem(item *models.MenuItem) error {
	if item.ID == 0 {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	if item.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must_be_positive"}
	}
	res := s.DB.Model(&models.MenuItem{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"image_url":   item.ImageURL,
		"available":   item.Available,
		"category_id": item.CategoryID,
	})
	if res.Error != nil {
		s.Log.Error("menu item update failed", zap.Uint("id", item.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MenuService) DeleteItem(id uint) error {
	res := s.DB.Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		s.Log.Error("menu item delete failed", zap.Uint("id", id), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
