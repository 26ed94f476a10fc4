// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	cartService *CartService
	user        *models.User
	product     *models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.cartService = NewCartService(suite.db)
	suite.user = createTestUser(suite.T(), suite.db, "cart@example.com")
	suite.product = createTestProduct(suite.T(), suite.db, "Galaxy S24", 1000, 5)
}

func (suite *CartServiceTestSuite) TestGetItemsWithoutCart() {
	items, err := suite.cartService.GetItems(suite.user.ID)

	suite.NoError(err)
	suite.Empty(items)
}

func (suite *CartServiceTestSuite) TestAddItemCreatesCart() {
	items, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})

	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(2, items[0].Quantity)
	suite.Equal(suite.product.Name, items[0].Product.Name)

	var carts []models.Cart
	suite.db.Where("user_id = ?", suite.user.ID).Find(&carts)
	suite.Len(carts, 1)
}

func (suite *CartServiceTestSuite) TestAddItemMergesQuantity() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	suite.NoError(err)

	items, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  3,
	})

	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(5, items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  6,
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeInsufficientStock, appErr.Code)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsMergedOverStock() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  4,
	})
	suite.NoError(err)

	_, err = suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  4,
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeInsufficientStock, appErr.Code)

	// The existing line is untouched
	items, err := suite.cartService.GetItems(suite.user.ID)
	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(4, items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeNotFound, appErr.Code)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsZeroQuantity() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  0,
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeValidation, appErr.Code)
}

func (suite *CartServiceTestSuite) TestRemoveItem() {
	second := createTestProduct(suite.T(), suite.db, "Galaxy Buds", 150, 10)

	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.NoError(err)
	_, err = suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: second.ID,
		Quantity:  2,
	})
	suite.NoError(err)

	items, err := suite.cartService.RemoveItem(suite.user.ID, suite.product.ID)

	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(second.ID, items[0].ProductID)
}

func (suite *CartServiceTestSuite) TestRemoveMissingItemIsNoop() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.NoError(err)

	items, err := suite.cartService.RemoveItem(suite.user.ID, uuid.New())

	suite.NoError(err)
	suite.Len(items, 1)
}

func (suite *CartServiceTestSuite) TestClearCart() {
	_, err := suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	suite.NoError(err)

	suite.NoError(suite.cartService.Clear(suite.user.ID))

	var carts []models.Cart
	suite.db.Unscoped().Where("user_id = ?", suite.user.ID).Find(&carts)
	suite.Empty(carts)

	items, err := suite.cartService.GetItems(suite.user.ID)
	suite.NoError(err)
	suite.Empty(items)

	// The cart can be recreated afterwards
	items, err = suite.cartService.AddItem(suite.user.ID, &AddCartItemRequest{
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.NoError(err)
	suite.Len(items, 1)
}

func (suite *CartServiceTestSuite) TestClearMissingCartIsNoop() {
	suite.NoError(suite.cartService.Clear(suite.user.ID))
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
