// internal/models/order.go
package models

import "github.com/google/uuid"

// Order is an immutable snapshot of a cart at checkout time. Line items
// copy the product name and unit price as they were when the order was
// placed; TotalPrice is never recomputed afterwards.
type Order struct {
	BaseModel
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalPrice    float64       `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(20);default:'whatsapp'"`
	PaymentRef    string        `json:"payment_ref,omitempty" gorm:"size:255"`

	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
