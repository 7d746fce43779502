// Package imagehost is a small HTTP client for the external image hosting
// service the storefront delegates uploads to. The host accepts a binary
// file and returns a hosted URL plus an asset identifier.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Config holds image host connection details.
type Config struct {
	BaseURL string
	Folder  string // remote folder uploaded assets are grouped under
	Timeout time.Duration
}

// Client talks to the image host.
type Client struct {
	baseURL    string
	folder     string
	httpClient *http.Client
}

// UploadResult is what the storefront API returns to callers after a
// successful upload.
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// uploadResponse is the host's wire response.
type uploadResponse struct {
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId"`
}

// NewClient creates a new image host client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		folder:  cfg.Folder,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upload sends the file to the host under a fresh public ID
// ("<folder>/product-<uuid>") and returns the hosted URL and the ID the
// host stored it as.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	publicID := fmt.Sprintf("%s/product-%s", c.folder, uuid.New().String())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("public_id", publicID); err != nil {
		return nil, fmt.Errorf("failed to write public_id field: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image host request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image host returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var hostResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&hostResp); err != nil {
		return nil, fmt.Errorf("failed to decode image host response: %w", err)
	}

	return &UploadResult{
		ImageURL: hostResp.SecureURL,
		PublicID: hostResp.PublicID,
	}, nil
}
