// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trueworldtech/storefront-api/internal/middleware"
	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /api/order
func (h *OrderHandler) Checkout(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Checkout(user.ID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Order placed successfully", order)
}

// GET /api/order/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.GetUserOrders(user.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Orders fetched successfully", orders)
}

// GET /api/order/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	// Owners see their own orders, admins see any
	if _, isAdmin := middleware.AdminFromContext(c); !isAdmin {
		user, ok := middleware.UserFromContext(c)
		if !ok || order.UserID != user.ID {
			utils.ForbiddenResponse(c, "Not authorized to view this order")
			return
		}
	}

	utils.SuccessResponse(c, "Order fetched successfully", order)
}

// GET /api/order/all (admin)
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.GetAllOrders(params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, "Orders fetched successfully", utils.CreatePaginationResult(orders, total, params))
}

// PUT /api/order/:id/status (admin)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Order status updated", order)
}
