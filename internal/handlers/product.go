// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, catalogService *services.CatalogService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}

	products, err := h.productService.ListProducts(filter)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Products fetched successfully", products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Product fetched successfully", product)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Product created successfully", product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Product updated successfully", product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Product deleted successfully", nil)
}

// POST /api/products/:id/image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.ImageUploadOptions("products"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	product, err := h.productService.SetProductImage(id, result.URL)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Product image uploaded successfully", product)
}

// GET /api/products/categories
func (h *ProductHandler) ListCatalog(c *gin.Context) {
	listing, err := h.catalogService.ListCatalog()
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Catalog fetched successfully", listing)
}
