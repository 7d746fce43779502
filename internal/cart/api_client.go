package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"darimac/internal/models"
)

const defaultAPITimeout = 30 * time.Second

// APIClient submits orders to the storefront HTTP API. It satisfies
// OrderPlacer.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates an APIClient for the given storefront base URL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout == 0 {
		timeout = defaultAPITimeout
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PlaceOrder posts the order-creation request and decodes the created
// order. A non-2xx response becomes an error carrying the server's
// message.
func (c *APIClient) PlaceOrder(req *models.CreateOrderRequest) (*models.Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/v1/orders", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("order API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode created order: %w", err)
	}
	return &order, nil
}
