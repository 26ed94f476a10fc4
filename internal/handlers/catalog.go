// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// POST /api/categories (admin)
func (h *CatalogHandler) AddCategory(c *gin.Context) {
	var req services.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	category, err := h.catalogService.AddCategory(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Category added successfully", category)
}

// DELETE /api/categories/:name (admin)
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.BadRequestResponse(c, "Category name is required", nil)
		return
	}

	if err := h.catalogService.DeleteCategory(name); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Category deleted successfully", nil)
}

// POST /api/brands (admin)
func (h *CatalogHandler) AddBrand(c *gin.Context) {
	var req services.AddBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	brand, err := h.catalogService.AddBrand(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Brand added successfully", brand)
}

// DELETE /api/brands/:name (admin)
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.BadRequestResponse(c, "Brand name is required", nil)
		return
	}

	if err := h.catalogService.DeleteBrand(name); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Brand deleted successfully", nil)
}
