package models

// Menu models: categories group items (ex: pizzas, drinks, desserts).
type MenuCategory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:50;unique;not null" json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (MenuCategory) TableName() string { return "categorias_menu" }

type MenuItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:100;not null;index" json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `gorm:"not null" json:"price"`
	ImageURL    string       `gorm:"size:255" json:"image_url,omitempty"`
	Available   bool         `gorm:"default:true" json:"available"`
	CategoryID  uint         `gorm:"not null;index" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (MenuItem) TableName() string { return "items_menu" }
