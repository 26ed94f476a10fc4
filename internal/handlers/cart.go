// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trueworldtech/storefront-api/internal/middleware"
	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	items, err := h.cartService.GetItems(user.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart fetched successfully", items)
}

// POST /api/cart
func (h *CartHandler) AddItem(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	items, err := h.cartService.AddItem(user.ID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Item added to cart", items)
}

// DELETE /api/cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.cartService.Clear(user.ID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart cleared", nil)
}

// DELETE /api/cart/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	items, err := h.cartService.RemoveItem(user.ID, productID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Item removed from cart", items)
}
