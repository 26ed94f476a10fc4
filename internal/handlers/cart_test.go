// internal/handlers/cart_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trueworldtech/storefront-api/internal/middleware"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type CartHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	user    *models.User
	product *models.Product
	token   string
}

func (suite *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
	))
	suite.db = db

	suite.user = &models.User{Name: "Shopper", Email: "shopper@example.com"}
	suite.Require().NoError(suite.user.SetPassword("secret123"))
	suite.Require().NoError(db.Create(suite.user).Error)

	suite.product = &models.Product{
		Name:        "Galaxy S24",
		Description: "Flagship phone",
		Price:       800,
		Image:       "https://example.com/s24.jpg",
		Category:    "Phones",
		Brand:       "Samsung",
		Stock:       5,
	}
	suite.Require().NoError(db.Create(suite.product).Error)

	suite.token, err = utils.GenerateJWT(suite.user.ID, false, 1)
	suite.Require().NoError(err)

	cartHandler := NewCartHandler(services.NewCartService(db))

	suite.router = gin.New()
	cart := suite.router.Group("/api/cart")
	cart.Use(middleware.AuthRequired(db))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("", cartHandler.AddItem)
		cart.DELETE("/clear", cartHandler.ClearCart)
		cart.DELETE("/:productId", cartHandler.RemoveItem)
	}
}

func (suite *CartHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CartHandlerTestSuite) envelope(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *CartHandlerTestSuite) TestAddAndGetCart() {
	w := suite.request("POST", "/api/cart", gin.H{
		"productId": suite.product.ID,
		"quantity":  2,
	})
	suite.Equal(http.StatusOK, w.Code)

	response := suite.envelope(w)
	suite.True(response["success"].(bool))

	w = suite.request("GET", "/api/cart", nil)
	suite.Equal(http.StatusOK, w.Code)

	response = suite.envelope(w)
	items := response["data"].([]interface{})
	suite.Len(items, 1)

	line := items[0].(map[string]interface{})
	suite.Equal(float64(2), line["quantity"])
	suite.Equal("Galaxy S24", line["product"].(map[string]interface{})["name"])
}

func (suite *CartHandlerTestSuite) TestAddOverStock() {
	w := suite.request("POST", "/api/cart", gin.H{
		"productId": suite.product.ID,
		"quantity":  10,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	response := suite.envelope(w)
	suite.False(response["success"].(bool))
}

func (suite *CartHandlerTestSuite) TestRequiresAuth() {
	req, _ := http.NewRequest("GET", "/api/cart", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *CartHandlerTestSuite) TestClearBeforeProductIDRoute() {
	w := suite.request("POST", "/api/cart", gin.H{
		"productId": suite.product.ID,
		"quantity":  1,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	// /clear must hit the clear handler, not match :productId
	w = suite.request("DELETE", "/api/cart/clear", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/api/cart", nil)
	response := suite.envelope(w)
	suite.Empty(response["data"])
}

func (suite *CartHandlerTestSuite) TestRemoveItem() {
	w := suite.request("POST", "/api/cart", gin.H{
		"productId": suite.product.ID,
		"quantity":  1,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("DELETE", "/api/cart/"+suite.product.ID.String(), nil)
	suite.Equal(http.StatusOK, w.Code)

	response := suite.envelope(w)
	suite.True(response["success"].(bool))
	suite.Empty(response["data"])
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}
