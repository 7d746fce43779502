package models

import "time"

// Product represents an item in the storefront catalog.
// JSON field names are camelCase to match the storefront API contract.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(200);not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Image       string         `json:"image"` // primary image URL; when unset the first of Images is used by convention
	Category    string         `json:"category" gorm:"type:varchar(100);index"`
	InStock     bool           `json:"inStock" gorm:"default:true"`
	Images      []ProductImage `json:"images" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProductImage is one entry of a product's image carousel. Rows are owned
// exclusively by their product: a product update deletes the existing set
// and recreates it from the submitted list.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"productId" gorm:"index;not null"`
	URL       string `json:"url" gorm:"not null"`
	PublicID  string `json:"publicId,omitempty"` // asset identifier at the image host, when uploaded through us
}
