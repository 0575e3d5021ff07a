package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It backs the server when no database is configured, and tests. The order
// slice preserves insertion order so listings are stable across requests,
// like the database-backed repository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// GetByUserID returns all products owned by the given user.
func (r *MockProductRepository) GetByUserID(userID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, id := range r.order {
		if p := r.products[id]; p.UserID == userID {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// DistinctCategories returns the distinct category values currently stored.
func (r *MockProductRepository) DistinctCategories() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, id := range r.order {
		p := r.products[id]
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
