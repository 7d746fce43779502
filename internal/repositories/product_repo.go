package repositories

import (
	"darimac/internal/models"
)

// ProductQuery holds the catalog listing parameters. Page and Limit are
// assumed normalized (>= 1) by the caller; empty Search and Category mean
// no filtering.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string // substring match against name or description
	Category string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products ordered by creation time
	// descending, plus the total count matching the filters.
	List(q ProductQuery) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	// Update persists the product's scalar fields and replaces its image
	// set wholesale with product.Images.
	Update(product *models.Product) error
	Delete(id uint) error
}
