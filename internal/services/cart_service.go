// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetItems returns the user's cart lines with product details resolved.
// A missing cart is an empty list, never an error.
func (s *CartService) GetItems(userID uuid.UUID) ([]models.CartItem, error) {
	cart, err := s.findCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []models.CartItem{}, nil
	}
	return cart.Items, nil
}

// AddItem merges the requested quantity into the user's cart, creating the
// cart on first use. The merged line quantity may not exceed current stock.
func (s *CartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) ([]models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Product ID and quantity required").WithError(err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Quantity > product.Stock {
		return nil, apperrors.InsufficientStock(product.Name)
	}

	cart, err := s.findCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
		if err := s.db.Create(cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	}

	var line *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			line = &cart.Items[i]
			break
		}
	}

	if line != nil {
		newQuantity := line.Quantity + req.Quantity
		if newQuantity > product.Stock {
			return nil, apperrors.InsufficientStock(product.Name)
		}
		if err := s.db.Model(line).Update("quantity", newQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.GetItems(userID)
}

// RemoveItem drops the line for the product if present. Removing a line
// that does not exist is not an error.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) ([]models.CartItem, error) {
	cart, err := s.findCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []models.CartItem{}, nil
	}

	// Hard delete; a soft-deleted row would collide with the unique
	// cart/product index when the item is re-added.
	if err := s.db.Unscoped().Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.GetItems(userID)
}

// Clear deletes the cart document entirely; clearing a missing cart is a no-op.
func (s *CartService) Clear(userID uuid.UUID) error {
	cart, err := s.findCart(s.db, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	if err := s.db.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	if err := s.db.Unscoped().Delete(cart).Error; err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

// findCart loads the user's cart with items and products preloaded;
// nil means no cart exists yet.
func (s *CartService) findCart(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}
