package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"darimac/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves one page of products matching the query, newest first.
func (r *GORMProductRepository) List(q ProductQuery) ([]models.Product, int64, error) {
	tx := r.db.Model(&models.Product{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := tx.Preload("Images").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product with its images.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product along with its image rows.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the product's scalar fields and replaces its image set
// wholesale. Both steps run inside one transaction so a failure leaves
// either the old set or the new set, never a mix.
func (r *GORMProductRepository) Update(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %d not found for update", product.ID)
			}
			return fmt.Errorf("failed to load product %d for update: %w", product.ID, err)
		}

		// Map form so zero values (inStock=false, empty description) are
		// written too.
		updates := map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image":       product.Image,
			"category":    product.Category,
			"in_stock":    product.InStock,
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product %d: %w", product.ID, err)
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images for product %d: %w", product.ID, err)
		}
		for i := range product.Images {
			product.Images[i].ID = 0
			product.Images[i].ProductID = product.ID
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return fmt.Errorf("failed to recreate images for product %d: %w", product.ID, err)
			}
		}
		return nil
	})
}

// Delete removes a product and its image rows.
func (r *GORMProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images for product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d not found for deletion", id)
		}
		return nil
	})
}
