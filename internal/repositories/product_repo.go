package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByUserID(userID string) ([]models.Product, error)
	DistinctCategories() ([]string, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
