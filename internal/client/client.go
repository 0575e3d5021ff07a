// Package client is a typed client for the storefront REST API. It is the
// transport layer the browse and seller packages are built on.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"storefront/internal/models"
	"storefront/internal/services"
)

var (
	// ErrNotFound is returned when the API reports an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrPermission is returned when the API rejects a write for a product
	// owned by another user.
	ErrPermission = errors.New("permission denied")
	// ErrUnauthorized is returned for a failed login.
	ErrUnauthorized = errors.New("unauthorized")
)

// DefaultCategories is the fallback list used when the categories endpoint
// cannot be reached.
var DefaultCategories = []string{"men's clothing", "jewelery", "electronics", "women's clothing"}

// Client talks to the storefront API. Requests carry no timeout or retry:
// each caller action is a single outstanding call that either resolves or
// leaves the caller in its busy state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// apiError is the {message} envelope every error response carries.
type apiError struct {
	Message string `json:"message"`
}

// do issues a request and decodes the response into out (unless out is nil).
// Non-2xx responses are mapped onto the error kinds above.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e apiError
		_ = json.NewDecoder(resp.Body).Decode(&e)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", e.Message, ErrNotFound)
		case http.StatusForbidden:
			return fmt.Errorf("%s: %w", e.Message, ErrPermission)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", e.Message, ErrUnauthorized)
		default:
			return fmt.Errorf("%s %s: %s (status %d)", method, path, e.Message, resp.StatusCode)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListProducts fetches the full product list.
func (c *Client) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := c.do(http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct submits a new product and returns the stored record.
func (c *Client) CreateProduct(product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(http.MethodPost, "/api/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the given fields on a product. The callerID rides
// along as the user field for the server-side ownership check.
func (c *Client) UpdateProduct(id, callerID string, update services.ProductUpdate) (*models.Product, error) {
	body := struct {
		services.ProductUpdate
		User string `json:"user"`
	}{ProductUpdate: update, User: callerID}

	var updated models.Product
	if err := c.do(http.MethodPut, "/api/products/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product. callerID may be empty.
func (c *Client) DeleteProduct(id, callerID string) error {
	path := "/api/products/" + url.PathEscape(id)
	if callerID != "" {
		path += "?user=" + url.QueryEscape(callerID)
	}
	return c.do(http.MethodDelete, path, nil, nil)
}

// ListByUser fetches all products owned by the given user.
func (c *Client) ListByUser(userID string) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(http.MethodGet, "/api/products/user/"+url.PathEscape(userID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories fetches the distinct category list. A failed fetch falls back
// to DefaultCategories rather than surfacing an error.
func (c *Client) Categories() []string {
	var categories []string
	if err := c.do(http.MethodGet, "/api/products/categories", nil, &categories); err != nil {
		return append([]string(nil), DefaultCategories...)
	}
	return categories
}

// Register creates a new user account and returns the stored user object.
func (c *Client) Register(username, email, password string) (*models.User, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	var user models.User
	if err := c.do(http.MethodPost, "/api/users/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and returns the stored user object.
func (c *Client) Login(email, password string) (*models.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var user models.User
	if err := c.do(http.MethodPost, "/api/users/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
