// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	productService *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	catalogService := NewCatalogService(suite.db)
	suite.productService = NewProductService(suite.db, catalogService)

	suite.Require().NoError(suite.db.Create(&models.Category{Name: "Phones", Label: "Phones"}).Error)
}

func (suite *ProductServiceTestSuite) TestCreateProduct() {
	product, err := suite.productService.CreateProduct(&CreateProductRequest{
		Name:        "Galaxy S24",
		Description: "Flagship phone",
		Price:       800,
		Image:       "https://example.com/s24.jpg",
		Category:    "Phones",
		Brand:       "Samsung",
		Stock:       10,
	})

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, product.ID)
	suite.Equal("Phones", product.Category)
}

func (suite *ProductServiceTestSuite) TestCreateProductUnknownCategoryFallsBack() {
	product, err := suite.productService.CreateProduct(&CreateProductRequest{
		Name:        "Mystery Gadget",
		Description: "Unknown category",
		Price:       50,
		Image:       "https://example.com/gadget.jpg",
		Category:    "Spaceships",
		Brand:       "Acme",
		Stock:       1,
	})

	suite.NoError(err)
	suite.Equal(models.FallbackCategory, product.Category)
}

func (suite *ProductServiceTestSuite) TestCreateProductRejectsInvalidPrice() {
	_, err := suite.productService.CreateProduct(&CreateProductRequest{
		Name:        "Freebie",
		Description: "No price",
		Price:       0,
		Image:       "https://example.com/free.jpg",
		Category:    "Phones",
		Brand:       "Acme",
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeValidation, appErr.Code)
}

func (suite *ProductServiceTestSuite) TestListProductsFilters() {
	createTestProduct(suite.T(), suite.db, "Galaxy S24", 800, 5)   // Phones / Samsung
	createTestProduct(suite.T(), suite.db, "Galaxy Buds", 150, 10) // Phones / Samsung

	other := createTestProduct(suite.T(), suite.db, "Pixel 9", 700, 5)
	suite.db.Model(other).Update("brand", "Google")

	all, err := suite.productService.ListProducts(ProductFilter{})
	suite.NoError(err)
	suite.Len(all, 3)

	samsung, err := suite.productService.ListProducts(ProductFilter{Brand: "Samsung"})
	suite.NoError(err)
	suite.Len(samsung, 2)

	google, err := suite.productService.ListProducts(ProductFilter{Category: "Phones", Brand: "Google"})
	suite.NoError(err)
	suite.Len(google, 1)
	suite.Equal("Pixel 9", google[0].Name)
}

func (suite *ProductServiceTestSuite) TestUpdateProductPartial() {
	product := createTestProduct(suite.T(), suite.db, "Galaxy S24", 800, 5)

	newPrice := 750.0
	updated, err := suite.productService.UpdateProduct(product.ID, &UpdateProductRequest{
		Price: &newPrice,
	})

	suite.NoError(err)
	suite.Equal(750.0, updated.Price)
	suite.Equal("Galaxy S24", updated.Name)
}

func (suite *ProductServiceTestSuite) TestUpdateUnknownProduct() {
	name := "Renamed"
	_, err := suite.productService.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: name})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeNotFound, appErr.Code)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	product := createTestProduct(suite.T(), suite.db, "Galaxy S24", 800, 5)

	suite.NoError(suite.productService.DeleteProduct(product.ID))

	_, err := suite.productService.GetProduct(product.ID)
	suite.Error(err)

	// Deleting again reports not found
	err = suite.productService.DeleteProduct(product.ID)
	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeNotFound, appErr.Code)
}

func (suite *ProductServiceTestSuite) TestSetProductImage() {
	product := createTestProduct(suite.T(), suite.db, "Galaxy S24", 800, 5)

	updated, err := suite.productService.SetProductImage(product.ID, "https://cdn.example.com/s24-new.jpg")

	suite.NoError(err)
	suite.Equal("https://cdn.example.com/s24-new.jpg", updated.Image)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
