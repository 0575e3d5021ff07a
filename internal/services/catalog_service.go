package services

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ErrNotOwner is returned when a caller tries to update or delete a product
// owned by a different user.
var ErrNotOwner = errors.New("product is owned by another user")

// Catalog event actions published after successful writes.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes catalog change events. Implementations must be
// safe for concurrent use. A nil publisher disables events.
type EventPublisher interface {
	PublishProductEvent(action string, product *models.Product) error
}

// ProductUpdate carries the fields a caller may replace on a product.
// Nil fields are left untouched. Category and owner are not listed:
// category is immutable after creation and ownership never transfers.
type ProductUpdate struct {
	Name        *string        `json:"name"`
	Price       *float64       `json:"price"`
	Quantity    *int           `json:"quantity"`
	Description *string        `json:"description"`
	Image       *string        `json:"image"`
	Rating      *models.Rating `json:"rating"`
}

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewCatalogService creates a new CatalogService. events may be nil.
func NewCatalogService(repo repositories.ProductRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
	}
}

// ListProducts retrieves all products.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListByUser retrieves all products owned by the given user.
func (s *CatalogService) ListByUser(userID string) ([]models.Product, error) {
	return s.repo.GetByUserID(userID)
}

// ListCategories retrieves the distinct category values currently stored.
func (s *CatalogService) ListCategories() ([]string, error) {
	return s.repo.DistinctCategories()
}

// CreateProduct stores a new product and publishes a created event.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(EventProductCreated, product)
	return nil
}

// UpdateProduct replaces the named fields on the product with the given ID
// and returns the updated record. A non-empty callerID that does not match
// the stored owner fails with ErrNotOwner; an empty callerID preserves the
// trusted-caller behavior for internal use.
func (s *CatalogService) UpdateProduct(id, callerID string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if callerID != "" && product.UserID != callerID {
		return nil, fmt.Errorf("update product %s: %w", id, ErrNotOwner)
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.Rating != nil {
		product.Rating = *update.Rating
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes the product with the given ID. Deletion is
// irreversible; no other entity references a product, so no cascade.
// Ownership is checked the same way as UpdateProduct.
func (s *CatalogService) DeleteProduct(id, callerID string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if callerID != "" && product.UserID != callerID {
		return fmt.Errorf("delete product %s: %w", id, ErrNotOwner)
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, product)
	return nil
}

// publish sends a catalog event. The write is already durable, so a failed
// publish is logged and not surfaced to the caller.
func (s *CatalogService) publish(action string, product *models.Product) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(action, product); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", action, product.ID, err)
	}
}
