package models

// Administrator manages the back office. The password is stored as a
// bcrypt hash, never in clear.
type Administrator struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"size:50;unique;not null" json:"username"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Email        *string `gorm:"size:120;uniqueIndex" json:"email,omitempty"`
	SuperAdmin   bool    `gorm:"default:false" json:"super_admin"`
}

func (Administrator) TableName() string { return "administradores" }
