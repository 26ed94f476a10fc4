// internal/models/car.go
package models

import "github.com/lib/pq"

// Car listings are contact-to-buy only; no cart or stock handling.
type Car struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Brand       string         `json:"brand" gorm:"size:100;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	ContactType ContactType    `json:"contact_type" gorm:"type:varchar(20);default:'whatsapp'"`
	ContactLink string         `json:"contact_link" gorm:"size:512;not null"`
}
