// internal/handlers/car.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CarHandler struct {
	carService     *services.CarService
	storageService *services.StorageService
}

func NewCarHandler(carService *services.CarService, storageService *services.StorageService) *CarHandler {
	return &CarHandler{
		carService:     carService,
		storageService: storageService,
	}
}

// GET /api/cars
func (h *CarHandler) ListCars(c *gin.Context) {
	cars, err := h.carService.ListCars()
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Cars fetched successfully", cars)
}

// POST /api/cars (admin)
func (h *CarHandler) CreateCar(c *gin.Context) {
	var req services.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	car, err := h.carService.CreateCar(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Car listed successfully", car)
}

// PUT /api/cars/:id (admin)
func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID", nil)
		return
	}

	var req services.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	car, err := h.carService.UpdateCar(id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car updated successfully", car)
}

// DELETE /api/cars/:id (admin)
func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID", nil)
		return
	}

	if err := h.carService.DeleteCar(id); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car deleted successfully", nil)
}

// POST /api/cars/upload (admin)
func (h *CarHandler) UploadCarImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Image files are required", nil)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "Image files are required", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read image file", nil)
			return
		}

		result, err := h.storageService.UploadFile(file, header, services.ImageUploadOptions("cars"))
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}

		urls = append(urls, result.URL)
	}

	utils.SuccessResponse(c, "Images uploaded successfully", gin.H{"urls": urls})
}
