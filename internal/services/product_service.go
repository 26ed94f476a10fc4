// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	catalogService *CatalogService
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Brand       string  `json:"brand" validate:"required"`
	Stock       int     `json:"stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
}

type ProductFilter struct {
	Category string
	Brand    string
}

func NewProductService(db *gorm.DB, catalogService *CatalogService) *ProductService {
	return &ProductService{
		db:             db,
		catalogService: catalogService,
	}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	// Unrecognized labels fall back to the defaults instead of rejecting.
	category, err := s.catalogService.ResolveCategory(req.Category)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    category,
		Brand:       strings.TrimSpace(req.Brand),
		Stock:       req.Stock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListProducts returns products newest first, optionally narrowed by
// category and brand.
func (s *ProductService) ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := s.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.Category != "" {
		category, err := s.catalogService.ResolveCategory(req.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if req.Brand != "" {
		updates["brand"] = strings.TrimSpace(req.Brand)
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Product not found")
	}
	return nil
}

// SetProductImage stores the uploaded image URL on the product.
func (s *ProductService) SetProductImage(id uuid.UUID, imageURL string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("image", imageURL).Error; err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}

	return &product, nil
}
