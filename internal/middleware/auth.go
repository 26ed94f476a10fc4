// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

const (
	ContextUserKey  = "auth_user"
	ContextAdminKey = "auth_admin"
)

// AuthRequired validates the bearer token and attaches whichever account
// the embedded id resolves to: a storefront user or an admin.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "No token, not authorized")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", accountID).Error; err == nil {
			c.Set(ContextUserKey, &user)
			c.Next()
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalErrorResponse(c, "")
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, "id = ?", accountID).Error; err == nil {
			c.Set(ContextAdminKey, &admin)
			c.Next()
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalErrorResponse(c, "")
			c.Abort()
			return
		}

		utils.UnauthorizedResponse(c, "Account not found")
		c.Abort()
	}
}

// AdminRequired allows the request through only when AuthRequired resolved
// an admin account.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextAdminKey); !exists {
			utils.ForbiddenResponse(c, "Admin access only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFromContext returns the authenticated storefront user, if any.
func UserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// AdminFromContext returns the authenticated admin, if any.
func AdminFromContext(c *gin.Context) (*models.Admin, bool) {
	value, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}
