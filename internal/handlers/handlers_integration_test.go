package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"darimac/internal/handlers"
	"darimac/internal/models"
	"darimac/internal/repositories"
	"darimac/internal/services"
	"darimac/pkg/imagehost"
)

// setupApp builds a Fiber app backed by a fresh in-memory SQLite database.
// The uploader may be nil for tests that never hit the upload route.
func setupApp(t *testing.T, uploader handlers.Uploader) (*fiber.App, repositories.ProductRepository, repositories.OrderRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
	))

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewUploadHandler(uploader).RegisterRoutes(apiV1)

	return app, productRepo, orderRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// TestMain suppresses handler logging for cleaner test output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestProductCRUD(t *testing.T) {
	app, _, _ := setupApp(t, nil)

	// Create with two carousel images.
	createBody := map[string]interface{}{
		"name":        "Mechanical Keyboard",
		"description": "Hot-swappable switches",
		"price":       "149.99",
		"image":       "https://img.example/kb-main.jpg",
		"images":      []string{"https://img.example/kb-1.jpg", "https://img.example/kb-2.jpg"},
		"category":    "keyboards",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 149.99, created.Price)
	assert.True(t, created.InStock, "inStock defaults to true when omitted")
	require.Len(t, created.Images, 2)
	assert.Equal(t, "https://img.example/kb-1.jpg", created.Images[0].URL)

	// Fetch it back with images.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Images, 2)

	// Update replaces the image set wholesale.
	updateBody := map[string]interface{}{
		"name":     "Mechanical Keyboard v2",
		"price":    "159.99",
		"images":   []string{"https://img.example/kb-new.jpg"},
		"category": "keyboards",
		"inStock":  false,
	}
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", created.ID), updateBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Mechanical Keyboard v2", updated.Name)
	assert.False(t, updated.InStock)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "https://img.example/kb-new.jpg", updated.Images[0].URL)

	// Omitting images on update leaves zero images behind.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", created.ID), map[string]interface{}{
		"name":  "Mechanical Keyboard v2",
		"price": "159.99",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Empty(t, updated.Images, "replace-all semantics: omitted images wipe the set")

	// Delete, then a fetch is a 404.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]string
	decodeBody(t, resp, &deleted)
	assert.Equal(t, "Product deleted successfully", deleted["message"])

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductValidation(t *testing.T) {
	app, _, _ := setupApp(t, nil)

	// Missing name.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{"price": "10"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unparseable price.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":  "Mystery Box",
		"price": "a lot",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProductListPagination(t *testing.T) {
	app, productRepo, _ := setupApp(t, nil)

	for i := 1; i <= 25; i++ {
		product := models.Product{
			Name:     fmt.Sprintf("Product %02d", i),
			Price:    float64(i),
			Category: "accessories",
			InStock:  true,
		}
		require.NoError(t, productRepo.Create(&product))
	}

	type listResponse struct {
		Products   []models.Product           `json:"products"`
		Pagination services.ProductPagination `json:"pagination"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products?page=2&limit=12", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page2 listResponse
	decodeBody(t, resp, &page2)
	assert.Len(t, page2.Products, 12)
	assert.Equal(t, 2, page2.Pagination.CurrentPage)
	assert.Equal(t, 3, page2.Pagination.TotalPages)
	assert.Equal(t, int64(25), page2.Pagination.TotalProducts)
	assert.True(t, page2.Pagination.HasNextPage)
	assert.True(t, page2.Pagination.HasPrevPage)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?page=3&limit=12", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page3 listResponse
	decodeBody(t, resp, &page3)
	assert.Len(t, page3.Products, 1)
	assert.False(t, page3.Pagination.HasNextPage)
	assert.True(t, page3.Pagination.HasPrevPage)

	// Substring search against name.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?search=Product%2007", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var searched listResponse
	decodeBody(t, resp, &searched)
	require.Len(t, searched.Products, 1)
	assert.Equal(t, "Product 07", searched.Products[0].Name)

	// category=all disables the filter.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?category=all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all listResponse
	decodeBody(t, resp, &all)
	assert.Equal(t, int64(25), all.Pagination.TotalProducts)
}

func TestOrderCheckoutFlow(t *testing.T) {
	app, _, _ := setupApp(t, nil)

	// Missing customer fields.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customerName": "Jane Doe",
		"items":        []map[string]interface{}{{"productId": 1, "quantity": 1, "price": 10.0}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Empty item list.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customerName":    "Jane Doe",
		"customerEmail":   "jane@example.com",
		"customerPhone":   "555-0101",
		"customerAddress": "1 Main Street",
		"items":           []map[string]interface{}{},
		"totalAmount":     0.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Valid checkout: one order, one item per cart line, trusted total.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customerName":    "Jane Doe",
		"customerEmail":   "jane@example.com",
		"customerPhone":   "555-0101",
		"customerAddress": "1 Main Street",
		"items": []map[string]interface{}{
			{"productId": 1, "quantity": 2, "price": 100.0},
			{"productId": 2, "quantity": 1, "price": 50.0},
		},
		"totalAmount": 250.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 250.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Fetch it back.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Order
	decodeBody(t, resp, &fetched)
	assert.Len(t, fetched.Items, 2)
}

func TestOrderStatusUpdate(t *testing.T) {
	app, _, orderRepo := setupApp(t, nil)

	order := models.Order{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "555-0101",
		CustomerAddress: "1 Main Street",
		TotalAmount:     250.0,
		Status:          models.OrderStatusPending,
		Items:           []models.OrderItem{{ProductID: 1, Quantity: 2, Price: 100.0}},
	}
	require.NoError(t, orderRepo.Create(&order))

	// A status outside the enum is rejected.
	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", order.ID),
		map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// "shipped" over "pending" succeeds: no adjacency check.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", order.ID),
		map[string]string{"status": models.OrderStatusShipped})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Order
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	// And back to "pending": the state machine is permissive.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", order.ID),
		map[string]string{"status": models.OrderStatusPending})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Unknown order.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/orders/9999",
		map[string]string{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderListFilterAndDelete(t *testing.T) {
	app, _, orderRepo := setupApp(t, nil)

	statuses := []string{
		models.OrderStatusPending,
		models.OrderStatusPending,
		models.OrderStatusShipped,
	}
	var lastID uint
	for i, status := range statuses {
		order := models.Order{
			CustomerName:    fmt.Sprintf("Customer %d", i+1),
			CustomerEmail:   "c@example.com",
			CustomerPhone:   "555-0101",
			CustomerAddress: "1 Main Street",
			Status:          status,
			TotalAmount:     10.0,
		}
		require.NoError(t, orderRepo.Create(&order))
		lastID = order.ID
	}

	type listResponse struct {
		Orders     []models.Order           `json:"orders"`
		Pagination services.OrderPagination `json:"pagination"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/orders?status=pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending listResponse
	decodeBody(t, resp, &pending)
	assert.Equal(t, int64(2), pending.Pagination.TotalOrders)
	assert.Len(t, pending.Orders, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all listResponse
	decodeBody(t, resp, &all)
	assert.Equal(t, int64(3), all.Pagination.TotalOrders)
	assert.Equal(t, services.DefaultOrderPageSize, all.Pagination.Limit)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", lastID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]string
	decodeBody(t, resp, &deleted)
	assert.Equal(t, "Order deleted successfully", deleted["message"])

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", lastID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUploadEndpoint(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		publicID := r.FormValue("public_id")
		json.NewEncoder(w).Encode(map[string]string{
			"secureUrl": "https://cdn.example/" + publicID + ".png",
			"publicId":  publicID,
		})
	}))
	defer host.Close()

	uploader := imagehost.NewClient(imagehost.Config{BaseURL: host.URL, Folder: "computer-accessories"})
	app, _, _ := setupApp(t, uploader)

	// No file part.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Multipart upload.
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "hub.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result imagehost.UploadResult
	decodeBody(t, resp, &result)
	assert.Contains(t, result.ImageURL, "https://cdn.example/computer-accessories/product-")
	assert.Contains(t, result.PublicID, "computer-accessories/product-")
}
