package services

import (
	"encoding/json"
	"fmt"
	"log"

	"darimac/internal/models"
	"darimac/internal/repositories"
)

// DefaultOrderPageSize is the admin order-list page size when the client
// sends none.
const DefaultOrderPageSize = 10

// validOrderStatuses is the full status enum. Membership is the only check
// on updates: any status may overwrite any other.
var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderPage is one page of orders plus pagination metadata.
type OrderPage struct {
	Orders     []models.Order  `json:"orders"`
	Pagination OrderPagination `json:"pagination"`
}

// OrderPagination mirrors the storefront API's pagination object.
type OrderPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. The publisher may be nil, in
// which case events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// ListOrders returns one page of orders, optionally filtered by status.
func (s *OrderService) ListOrders(q repositories.OrderQuery) (*OrderPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultOrderPageSize
	}

	orders, total, err := s.orderRepo.List(q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &OrderPage{
		Orders: orders,
		Pagination: OrderPagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalOrders: total,
			HasNextPage: q.Page < totalPages,
			HasPrevPage: q.Page > 1,
			Limit:       q.Limit,
		},
	}, nil
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder creates an order from a checkout request. Each cart line
// becomes one OrderItem snapshotting the quantity and price the client
// sent. The per-item prices and totalAmount are stored as-is rather than
// recomputed from current product prices; this is the trust boundary where
// a server-side recomputation would go.
func (s *OrderService) CreateOrder(req *models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderStatusPending,
		Items:           items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// UpdateOrderStatus writes the given status over the order's current one.
// Legality is enum membership only; there is no transition-adjacency
// guard, so e.g. "shipped" over "pending" succeeds.
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", order)
	return order, nil
}

// DeleteOrder deletes an order and its items by ID.
func (s *OrderService) DeleteOrder(id uint) error {
	return s.orderRepo.Delete(id)
}

// publishEvent sends an order lifecycle event. Publishing is best-effort:
// a broker failure is logged and never fails the request.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"orderId":     order.ID,
		"status":      order.Status,
		"totalAmount": order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", routingKey, order.ID, err)
	}
}
