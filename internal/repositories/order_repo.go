package repositories

import (
	"darimac/internal/models"
)

// OrderQuery holds the order listing parameters. An empty Status means no
// status filtering.
type OrderQuery struct {
	Page   int
	Limit  int
	Status string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// List returns one page of orders ordered by creation time descending
	// (items and their products included), plus the total count matching
	// the filter.
	List(q OrderQuery) ([]models.Order, int64, error)
	GetByID(id uint) (*models.Order, error)
	// Create persists the order and its items in one nested write.
	Create(order *models.Order) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}
