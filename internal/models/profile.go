package models

// PizzeriaProfile is the single record holding the pizzeria's public
// information. At most one row is expected; callers treat "no row" as
// "not yet configured".
type PizzeriaProfile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Address   string `gorm:"not null" json:"address"`
	Phone     string `gorm:"size:20;not null" json:"phone"`
	Email     string `gorm:"size:120" json:"email,omitempty"`
	Hours     string `json:"hours,omitempty"` // ex: "Mon-Fri: 10 AM - 10 PM"
	Facebook  string `gorm:"size:255" json:"facebook,omitempty"`
	Instagram string `gorm:"size:255" json:"instagram,omitempty"`

	// Mobile-payment details shown to customers paying by transfer.
	MobilePayBank        string `gorm:"size:100" json:"mobile_pay_bank,omitempty"`
	MobilePayPhone       string `gorm:"size:20" json:"mobile_pay_phone,omitempty"`
	MobilePayNationalID  string `gorm:"size:20" json:"mobile_pay_national_id,omitempty"`
	MobilePayAccount     string `gorm:"size:30" json:"mobile_pay_account,omitempty"`
	MobilePayBeneficiary string `gorm:"size:100" json:"mobile_pay_beneficiary,omitempty"`

	WhatsAppNumber   string `gorm:"size:20" json:"whatsapp_number,omitempty"`
	WhatsAppChatLink string `gorm:"size:255" json:"whatsapp_chat_link,omitempty"`
}

func (PizzeriaProfile) TableName() string { return "informacion_pizzeria" }
