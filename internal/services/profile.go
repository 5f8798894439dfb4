package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/models"
)

// ProfileService manages the single pizzeria information record.
type ProfileService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewProfileService(db *gorm.DB, log *zap.Logger) *ProfileService {
	return &ProfileService{DB: db, Log: log}
}

type ProfileInput struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	Hours     string
	Facebook  string
	Instagram string

	MobilePayBank        string
	MobilePayPhone       string
	MobilePayNationalID  string
	MobilePayAccount     string
	MobilePayBeneficiary string

	WhatsAppNumber   string
	WhatsAppChatLink string
}

// ProfileUpdate carries a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Hours     *string `json:"hours"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`

	MobilePayBank        *string `json:"mobile_pay_bank"`
	MobilePayPhone       *string `json:"mobile_pay_phone"`
	MobilePayNationalID  *string `json:"mobile_pay_national_id"`
	MobilePayAccount     *string `json:"mobile_pay_account"`
	MobilePayBeneficiary *string `json:"mobile_pay_beneficiary"`

	WhatsAppNumber   *string `json:"whatsapp_number"`
	WhatsAppChatLink *string `json:"whatsapp_chat_link"`
}

// Ensure creates the profile row when none exists yet and returns the
// existing one otherwise. Calling it any number of times leaves exactly
// one row.
func (s *ProfileService) Ensure(in ProfileInput) (*models.PizzeriaProfile, error) {
	var out *models.PizzeriaProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.PizzeriaProfile
		err := tx.First(&existing).Error
		if err == nil {
			out = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if strings.TrimSpace(in.Name) == "" {
			return &ValidationError{Field: "name", Reason: "required"}
		}
		if strings.TrimSpace(in.Address) == "" {
			return &ValidationError{Field: "address", Reason: "required"}
		}
		if strings.TrimSpace(in.Phone) == "" {
			return &ValidationError{Field: "phone", Reason: "required"}
		}
		p := models.PizzeriaProfile{
			Name:                 in.Name,
			Address:              in.Address,
			Phone:                in.Phone,
			Email:                in.Email,
			Hours:                in.Hours,
			Facebook:             in.Facebook,
			Instagram:            in.Instagram,
			MobilePayBank:        in.MobilePayBank,
			MobilePayPhone:       in.MobilePayPhone,
			MobilePayNationalID:  in.MobilePayNationalID,
			MobilePayAccount:     in.MobilePayAccount,
			MobilePayBeneficiary: in.MobilePayBeneficiary,
			WhatsAppNumber:       in.WhatsAppNumber,
			WhatsAppChatLink:     in.WhatsAppChatLink,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			s.Log.Error("profile ensure failed", zap.Error(err))
		}
		return nil, err
	}
	return out, nil
}

// Get returns the profile if present, otherwise (nil, nil): "not yet
// configured" is a normal state, not an error.
func (s *ProfileService) Get() (*models.PizzeriaProfile, error) {
	var p models.PizzeriaProfile
	err := s.DB.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the non-nil fields of upd to the existing profile.
func (s *ProfileService) Update(upd ProfileUpdate) (*models.PizzeriaProfile, error) {
	var p models.PizzeriaProfile
	if err := s.DB.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, upd.Name)
	set(&p.Address, upd.Address)
	set(&p.Phone, upd.Phone)
	set(&p.Email, upd.Email)
	set(&p.Hours, upd.Hours)
	set(&p.Facebook, upd.Facebook)
	set(&p.Instagram, upd.Instagram)
	set(&p.MobilePayBank, upd.MobilePayBank)
	set(&p.MobilePayPhone, upd.MobilePayPhone)
	set(&p.MobilePayNationalID, upd.MobilePayNationalID)
	set(&p.MobilePayAccount, upd.MobilePayAccount)
	set(&p.MobilePayBeneficiary, upd.MobilePayBeneficiary)
	set(&p.WhatsAppNumber, upd.WhatsAppNumber)
	set(&p.WhatsAppChatLink, upd.WhatsAppChatLink)
	if err := s.DB.Save(&p).Error; err != nil {
		s.Log.Error("profile update failed", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile row. Mostly useful in tests; a configured
// pizzeria has no reason to drop its own record.
func (s *ProfileService) Delete() error {
	res := s.DB.Where("1 = 1").Delete(&models.PizzeriaProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
