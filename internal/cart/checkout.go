package cart

import (
	"errors"

	"darimac/internal/models"
)

// Checkout errors.
var (
	ErrEmptyCart       = errors.New("cannot check out an empty cart")
	ErrMissingCustomer = errors.New("all customer contact fields are required")
)

// CustomerInfo is the contact data collected by the checkout form. All
// fields are required; none are content-validated.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// OrderPlacer submits an order-creation request to the order API.
type OrderPlacer interface {
	PlaceOrder(req *models.CreateOrderRequest) (*models.Order, error)
}

// Checkout converts the cart into an order-creation request, snapshotting
// each line's quantity and price and the computed total, and submits it
// through the placer. The cart is cleared only after the order is
// accepted; on any failure it is left untouched so the user can retry.
func (c *Cart) Checkout(placer OrderPlacer, customer CustomerInfo) (*models.Order, error) {
	if len(c.items) == 0 {
		return nil, ErrEmptyCart
	}
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" || customer.Address == "" {
		return nil, ErrMissingCustomer
	}

	items := make([]models.OrderItemRequest, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, models.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	req := &models.CreateOrderRequest{
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Items:           items,
		TotalAmount:     c.totalAmount,
	}

	order, err := placer.PlaceOrder(req)
	if err != nil {
		return nil, err
	}

	c.Clear()
	return order, nil
}
