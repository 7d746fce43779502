package models

import "time"

// Order statuses. Updates are validated by membership in this set only;
// any status may be written over any other.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a customer order placed through checkout.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	CustomerName    string      `json:"customerName" gorm:"not null"`
	CustomerEmail   string      `json:"customerEmail" gorm:"not null"`
	CustomerPhone   string      `json:"customerPhone" gorm:"not null"`
	CustomerAddress string      `json:"customerAddress" gorm:"not null"`
	TotalAmount     float64     `json:"totalAmount" gorm:"not null"`
	Status          string      `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Items           []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem is a single line of an order. Price is the unit price at order
// time, intentionally decoupled from the product's current price.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	OrderID   uint     `json:"orderId" gorm:"index;not null"`
	ProductID uint     `json:"productId" gorm:"not null"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"not null"`
	Product   *Product `json:"product,omitempty"`
}
