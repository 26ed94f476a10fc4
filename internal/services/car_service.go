// internal/services/car_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CarService struct {
	db *gorm.DB
}

type CreateCarRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=255"`
	Brand       string             `json:"brand" validate:"required"`
	Price       float64            `json:"price" validate:"required,gt=0"`
	Description string             `json:"description,omitempty"`
	Images      []string           `json:"images,omitempty"`
	ContactType models.ContactType `json:"contactType,omitempty"`
	ContactLink string             `json:"contactLink" validate:"required"`
}

type UpdateCarRequest struct {
	Name        string             `json:"name,omitempty"`
	Brand       string             `json:"brand,omitempty"`
	Price       *float64           `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description string             `json:"description,omitempty"`
	Images      []string           `json:"images,omitempty"`
	ContactType models.ContactType `json:"contactType,omitempty"`
	ContactLink string             `json:"contactLink,omitempty"`
}

func NewCarService(db *gorm.DB) *CarService {
	return &CarService{db: db}
}

func (s *CarService) CreateCar(req *CreateCarRequest) (*models.Car, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	contactType := req.ContactType
	if contactType == "" {
		contactType = models.ContactTypeWhatsapp
	}
	if !contactType.IsValid() {
		return nil, apperrors.Validation("Invalid contact type")
	}

	car := &models.Car{
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		Description: req.Description,
		Images:      pq.StringArray(req.Images),
		ContactType: contactType,
		ContactLink: req.ContactLink,
	}

	if err := s.db.Create(car).Error; err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	return car, nil
}

func (s *CarService) ListCars() ([]models.Car, error) {
	var cars []models.Car
	if err := s.db.Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cars: %w", err)
	}
	return cars, nil
}

// UpdateCar applies a partial update; omitted fields keep their values.
func (s *CarService) UpdateCar(id uuid.UUID, req *UpdateCarRequest) (*models.Car, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var car models.Car
	if err := s.db.First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Car not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.ContactType != "" {
		if !req.ContactType.IsValid() {
			return nil, apperrors.Validation("Invalid contact type")
		}
		updates["contact_type"] = req.ContactType
	}
	if req.ContactLink != "" {
		updates["contact_link"] = req.ContactLink
	}

	if len(updates) > 0 {
		if err := s.db.Model(&car).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update car: %w", err)
		}
	}

	return &car, nil
}

func (s *CarService) DeleteCar(id uuid.UUID) error {
	result := s.db.Delete(&models.Car{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete car: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Car not found")
	}
	return nil
}
