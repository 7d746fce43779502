package models

// ProductRequest is the create/update payload for a product. Price arrives
// as a string from the admin form and is parsed server-side. The Images
// list replaces the product's image set wholesale on update, so callers
// must always resend the full set.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	InStock     *bool    `json:"inStock"` // defaults to true when omitted
}

// OrderItemRequest is one cart line inside an order-creation request.
// Price is the client's snapshot from add-to-cart time and is stored
// as-is.
type OrderItemRequest struct {
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the checkout payload. All customer contact fields
// are presence-validated only; content (email format etc.) is not checked.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required"`
	CustomerEmail   string             `json:"customerEmail" validate:"required"`
	CustomerPhone   string             `json:"customerPhone" validate:"required"`
	CustomerAddress string             `json:"customerAddress" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"totalAmount" validate:"gte=0"`
}

// UpdateOrderStatusRequest is the body of an order status update.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
