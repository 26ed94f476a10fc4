// internal/models/common_test.go
package models

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The schema must migrate on sqlite as well as postgres, with ids
// assigned client-side by the BeforeCreate hook.
func TestBaseModelMigratesAndAssignsID(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	assert.NoError(t, db.AutoMigrate(&Product{}))

	product := &Product{
		Name:        "Galaxy S24",
		Description: "Flagship phone",
		Price:       800,
		Image:       "https://example.com/s24.jpg",
		Category:    "Phones",
		Brand:       "Samsung",
		Stock:       5,
	}
	assert.NoError(t, db.Create(product).Error)
	assert.NotEqual(t, uuid.Nil, product.ID)

	// A pre-assigned id is kept as-is
	fixed := uuid.New()
	second := &Product{
		BaseModel:   BaseModel{ID: fixed},
		Name:        "Galaxy Buds",
		Description: "Earbuds",
		Price:       150,
		Image:       "https://example.com/buds.jpg",
		Category:    "Accessories",
		Brand:       "Samsung",
		Stock:       10,
	}
	assert.NoError(t, db.Create(second).Error)
	assert.Equal(t, fixed, second.ID)
}
