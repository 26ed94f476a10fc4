// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
)

// orderTransitions holds the allowed forward moves of the status machine.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusCompleted,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions[s] == next
}

type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodWhatsapp PaymentMethod = "whatsapp"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCard || m == PaymentMethodWhatsapp
}

type ContactType string

const (
	ContactTypeWhatsapp  ContactType = "whatsapp"
	ContactTypeInstagram ContactType = "instagram"
)

func (t ContactType) IsValid() bool {
	return t == ContactTypeWhatsapp || t == ContactTypeInstagram
}

type AdminRole string

const (
	AdminRoleManager    AdminRole = "manager"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Fallback labels used when a category or brand is removed from the registry.
const (
	FallbackCategory = "Uncategorized"
	FallbackBrand    = "Unbranded"
)
