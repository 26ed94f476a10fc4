// internal/services/order_service.go
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

type OrderService struct {
	db *gorm.DB
}

type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Checkout converts the user's cart into an order. The whole flow runs in
// one transaction: every line's stock is decremented with a conditional
// update, the order snapshot is written with prices as loaded at the
// start, and the cart is deleted. Any failing line rolls the entire
// operation back, so stock never goes negative and no partial order is
// ever visible. Concurrent checkouts are arbitrated by the
// stock >= quantity guard in the UPDATE.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodWhatsapp
	}
	if !paymentMethod.IsValid() {
		return nil, apperrors.Validation("Invalid payment method")
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.EmptyCart()
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(cart.Items) == 0 {
			return apperrors.EmptyCart()
		}

		var totalPrice float64
		orderItems := make([]models.OrderItem, 0, len(cart.Items))

		for _, item := range cart.Items {
			// Conditional decrement: succeeds only while enough stock
			// remains, which closes the concurrent-checkout oversell race.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return apperrors.InsufficientStock(item.Product.Name)
			}

			totalPrice += item.Product.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				UnitPrice: item.Product.Price,
				Quantity:  item.Quantity,
			})
		}

		order = &models.Order{
			UserID:        userID,
			TotalPrice:    totalPrice,
			Status:        models.OrderStatusPending,
			PaymentMethod: paymentMethod,
			Items:         orderItems,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Hard delete so the unique user index never collides with a
		// soft-deleted cart on the next add-to-cart.
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		if err := tx.Unscoped().Delete(&cart).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetAllOrders is the admin listing, paginated.
func (s *OrderService) GetAllOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Preload("User").
		Preload("Items.Product")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total_price", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus advances an order along pending → processing → shipped →
// completed. Skipping ahead or moving backwards is rejected.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("Unknown order status '%s'", req.Status))
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.Validation(
			fmt.Sprintf("Cannot move order from '%s' to '%s'", order.Status, req.Status))
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// MarkPaid records a successful payment: the reference is stored and a
// pending order moves to processing.
func (s *OrderService) MarkPaid(orderID uuid.UUID, paymentRef string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.Status != models.OrderStatusPending {
		return nil, apperrors.Validation("Order has already been paid")
	}

	updates := map[string]interface{}{
		"status":      models.OrderStatusProcessing,
		"payment_ref": paymentRef,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &order, nil
}
