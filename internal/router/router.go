// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/config"
	"github.com/trueworldtech/storefront-api/internal/handlers"
	"github.com/trueworldtech/storefront-api/internal/middleware"
	"github.com/trueworldtech/storefront-api/internal/services"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	productService := services.NewProductService(db, catalogService)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg, orderService)
	carService := services.NewCarService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, catalogService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	carHandler := handlers.NewCarHandler(carService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// User account routes
		users := api.Group("/users")
		users.Use(middleware.AuthRateLimit())
		{
			users.POST("/register", authHandler.RegisterUser)
			users.POST("/login", authHandler.LoginUser)
		}

		// Admin account routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRateLimit())
		{
			admin.POST("/register", authHandler.RegisterAdmin)
			admin.POST("/login", authHandler.LoginAdmin)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/categories", productHandler.ListCatalog)
			products.GET("/:id", productHandler.GetProduct)

			// Admin-only routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired(db), middleware.AdminRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/image", middleware.UploadRateLimit(), productHandler.UploadProductImage)
			}
		}

		// Cart routes
		cart := api.Group("/cart")
		cart.Use(middleware.AuthRequired(db))
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("", cartHandler.AddItem)
			// /clear must register before /:productId
			cart.DELETE("/clear", cartHandler.ClearCart)
			cart.DELETE("/:productId", cartHandler.RemoveItem)
		}

		// Order routes
		order := api.Group("/order")
		order.Use(middleware.AuthRequired(db))
		{
			order.POST("", orderHandler.Checkout)
			order.GET("/my-orders", orderHandler.GetMyOrders)
			order.POST("/payment-intent", paymentHandler.CreatePaymentIntent)
			order.POST("/confirm-payment", paymentHandler.ConfirmPayment)
			order.GET("/:id", orderHandler.GetOrder)

			// Admin-only routes
			protected := order.Group("")
			protected.Use(middleware.AdminRequired())
			{
				protected.GET("/all", orderHandler.GetAllOrders)
				protected.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}
		}

		// Car listing routes
		cars := api.Group("/cars")
		{
			cars.GET("", carHandler.ListCars)

			protected := cars.Group("")
			protected.Use(middleware.AuthRequired(db), middleware.AdminRequired())
			{
				protected.POST("", carHandler.CreateCar)
				protected.POST("/upload", middleware.UploadRateLimit(), carHandler.UploadCarImages)
				protected.PUT("/:id", carHandler.UpdateCar)
				protected.DELETE("/:id", carHandler.DeleteCar)
			}
		}

		// Category registry routes (admin)
		categories := api.Group("/categories")
		categories.Use(middleware.AuthRequired(db), middleware.AdminRequired())
		{
			categories.POST("", catalogHandler.AddCategory)
			categories.DELETE("/:name", catalogHandler.DeleteCategory)
		}

		// Brand registry routes (admin)
		brands := api.Group("/brands")
		brands.Use(middleware.AuthRequired(db), middleware.AdminRequired())
		{
			brands.POST("", catalogHandler.AddBrand)
			brands.DELETE("/:name", catalogHandler.DeleteBrand)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
