package services

import (
	"fmt"
	"strconv"

	"darimac/internal/models"
	"darimac/internal/repositories"
)

// DefaultProductPageSize is the catalog page size when the client sends
// none.
const DefaultProductPageSize = 12

// ProductPage is one page of catalog results plus pagination metadata.
type ProductPage struct {
	Products   []models.Product  `json:"products"`
	Pagination ProductPagination `json:"pagination"`
}

// ProductPagination mirrors the storefront API's pagination object.
type ProductPagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	Limit         int   `json:"limit"`
}

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns one page of the catalog. Page and limit are clamped
// to minimum 1, and a category of "all" (or empty) disables category
// filtering.
func (s *ProductService) ListProducts(q repositories.ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultProductPageSize
	}
	if q.Category == "all" {
		q.Category = ""
	}

	products, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &ProductPage{
		Products: products,
		Pagination: ProductPagination{
			CurrentPage:   q.Page,
			TotalPages:    totalPages,
			TotalProducts: total,
			HasNextPage:   q.Page < totalPages,
			HasPrevPage:   q.Page > 1,
			Limit:         q.Limit,
		},
	}, nil
}

// GetProductByID retrieves a single product with its images.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a product from the request payload. The price
// string is parsed here, inStock defaults to true when omitted, and each
// submitted image URL becomes one ProductImage row, in order.
func (s *ProductService) CreateProduct(req *models.ProductRequest) (*models.Product, error) {
	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates a product with replace-all image semantics: the
// existing image rows are dropped and recreated from req.Images, so an
// omitted image list leaves the product with zero images.
func (s *ProductService) UpdateProduct(id uint, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	// Re-read so the response carries the freshly created image rows.
	return s.repo.GetByID(id)
}

// DeleteProduct deletes a product and its images by ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}

func (s *ProductService) productFromRequest(req *models.ProductRequest) (*models.Product, error) {
	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: must be a number", req.Price)
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	images := make([]models.ProductImage, 0, len(req.Images))
	for _, url := range req.Images {
		images = append(images, models.ProductImage{URL: url})
	}

	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Category:    req.Category,
		InStock:     inStock,
		Images:      images,
	}, nil
}
