// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/database"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

// CatalogService maintains the category and brand registry. The stored
// rows and the distinct values on product documents are two sources of
// the same list; MergeLabels folds them together with stored labels
// taking precedence.
type CatalogService struct {
	db *gorm.DB
}

type AddCategoryRequest struct {
	Category string `json:"category" validate:"required,min=1,max=100"`
	Label    string `json:"label,omitempty" validate:"omitempty,max=100"`
}

type AddBrandRequest struct {
	Brand string `json:"brand" validate:"required,min=1,max=100"`
	Label string `json:"label,omitempty" validate:"omitempty,max=100"`
}

type CatalogListing struct {
	Brands     []models.CatalogLabel `json:"brands"`
	Categories []models.CatalogLabel `json:"categories"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// MergeLabels combines stored registry entries with ad-hoc values derived
// from product documents. A stored entry wins on a name collision; the
// result is sorted by name for stable output.
func MergeLabels(stored []models.CatalogLabel, derived []string) []models.CatalogLabel {
	byName := make(map[string]models.CatalogLabel, len(stored)+len(derived))

	for _, name := range derived {
		if name == "" {
			continue
		}
		byName[name] = models.CatalogLabel{Name: name, Label: name}
	}

	for _, entry := range stored {
		label := entry.Label
		if label == "" {
			label = entry.Name
		}
		byName[entry.Name] = models.CatalogLabel{Name: entry.Name, Label: label}
	}

	merged := make([]models.CatalogLabel, 0, len(byName))
	for _, entry := range byName {
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })

	return merged
}

// ListCatalog returns the merged category and brand listings.
func (s *CatalogService) ListCatalog() (*CatalogListing, error) {
	var derivedCategories []string
	if err := s.db.Model(&models.Product{}).Distinct("category").Pluck("category", &derivedCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product categories: %w", err)
	}

	var derivedBrands []string
	if err := s.db.Model(&models.Product{}).Distinct("brand").Pluck("brand", &derivedBrands).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product brands: %w", err)
	}

	var storedCategories []models.Category
	if err := s.db.Find(&storedCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stored categories: %w", err)
	}

	var storedBrands []models.Brand
	if err := s.db.Find(&storedBrands).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stored brands: %w", err)
	}

	categoryLabels := make([]models.CatalogLabel, 0, len(storedCategories))
	for _, c := range storedCategories {
		categoryLabels = append(categoryLabels, models.CatalogLabel{Name: c.Name, Label: c.Label})
	}

	brandLabels := make([]models.CatalogLabel, 0, len(storedBrands))
	for _, b := range storedBrands {
		brandLabels = append(brandLabels, models.CatalogLabel{Name: b.Name, Label: b.Label})
	}

	return &CatalogListing{
		Brands:     MergeLabels(brandLabels, derivedBrands),
		Categories: MergeLabels(categoryLabels, derivedCategories),
	}, nil
}

func (s *CatalogService) AddCategory(req *AddCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	name := strings.TrimSpace(req.Category)

	exists, err := s.categoryExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Category already exists")
	}

	label := req.Label
	if label == "" {
		label = name
	}

	category := &models.Category{Name: name, Label: label}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// DeleteCategory reassigns affected products to the fallback label and
// removes the stored entry, in one transaction.
func (s *CatalogService) DeleteCategory(name string) error {
	if name == "" {
		return apperrors.Validation("Category name is required")
	}

	exists, err := s.categoryExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("Category not found")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category = ?", name).
			Update("category", models.FallbackCategory).Error; err != nil {
			return fmt.Errorf("failed to reassign products: %w", err)
		}

		// Hard delete keeps the unique name index free for re-adding.
		if err := tx.Unscoped().Where("name = ?", name).Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		return nil
	})
}

func (s *CatalogService) AddBrand(req *AddBrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	name := strings.TrimSpace(req.Brand)

	exists, err := s.brandExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Brand already exists")
	}

	label := req.Label
	if label == "" {
		label = name
	}

	brand := &models.Brand{Name: name, Label: label}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}

func (s *CatalogService) DeleteBrand(name string) error {
	if name == "" {
		return apperrors.Validation("Brand name is required")
	}

	exists, err := s.brandExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("Brand not found")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("brand = ?", name).
			Update("brand", models.FallbackBrand).Error; err != nil {
			return fmt.Errorf("failed to reassign products: %w", err)
		}

		if err := tx.Unscoped().Where("name = ?", name).Delete(&models.Brand{}).Error; err != nil {
			return fmt.Errorf("failed to delete brand: %w", err)
		}

		return nil
	})
}

// ResolveCategory maps a requested category onto a known registry or
// product label, falling back to the default when unrecognized.
func (s *CatalogService) ResolveCategory(requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return models.FallbackCategory, nil
	}

	listing, err := s.ListCatalog()
	if err != nil {
		return "", err
	}

	for _, entry := range listing.Categories {
		if strings.EqualFold(entry.Name, requested) {
			return entry.Name, nil
		}
	}

	return models.FallbackCategory, nil
}

func (s *CatalogService) categoryExists(name string) (bool, error) {
	var stored models.Category
	err := s.db.Where("name = ?", name).First(&stored).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("category = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *CatalogService) brandExists(name string) (bool, error) {
	var stored models.Brand
	err := s.db.Where("name = ?", name).First(&stored).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("brand = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
