// internal/services/payment_service.go
package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/config"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

// PaymentService drives the card payment flow for pending orders through
// Stripe PaymentIntents. The whatsapp payment method never touches it.
type PaymentService struct {
	db           *gorm.DB
	config       *config.Config
	orderService *OrderService
}

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"paymentIntentId" validate:"required"`
	OrderID         uuid.UUID `json:"orderId" validate:"required"`
}

// toMinorUnits converts a decimal amount to the smallest currency unit.
// Rounded, not truncated: 19.99 held as 19.989999... must become 1999.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func NewPaymentService(db *gorm.DB, config *config.Config, orderService *OrderService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:           db,
		config:       config,
		orderService: orderService,
	}
}

// CreatePaymentIntent opens a Stripe intent for the order total. Only the
// order's owner may pay it, and only while it is pending.
func (s *PaymentService) CreatePaymentIntent(userID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	order, err := s.orderService.GetOrder(req.OrderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, apperrors.Forbidden("Order belongs to another user")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.Validation("Order has already been paid")
	}
	if order.PaymentMethod != models.PaymentMethodCard {
		return nil, apperrors.Validation("Order is not a card payment")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(order.TotalPrice)),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the intent status with Stripe and, on success,
// records the payment on the order.
func (s *PaymentService) ConfirmPayment(userID uuid.UUID, req *ConfirmPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	order, err := s.orderService.GetOrder(req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.Forbidden("Order belongs to another user")
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, apperrors.Validation(fmt.Sprintf("Payment not completed (status '%s')", pi.Status))
	}

	return s.orderService.MarkPaid(order.ID, pi.ID)
}
