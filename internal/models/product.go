// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string  `json:"image" gorm:"size:512;not null"`
	Category    string  `json:"category" gorm:"size:100;not null;index;default:'Phones'"`
	Brand       string  `json:"brand" gorm:"size:100;not null;index"`
	Stock       int     `json:"stock" gorm:"not null;default:0"`
}
