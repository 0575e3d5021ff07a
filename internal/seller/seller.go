// Package seller implements the seller-side product management flow: listing
// your own products, creating and editing with full form validation, and
// confirmed deletion.
package seller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/forms"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/session"
)

var (
	// ErrPermission is raised before any edit of a product owned by another
	// user; the edit form is never shown.
	ErrPermission = errors.New("you do not have permission to edit this product")
	// ErrInvalidForm blocks submission while any field has an outstanding
	// error.
	ErrInvalidForm = errors.New("form has validation errors")
)

// API is the slice of the catalog API the seller flow needs. *client.Client
// satisfies it.
type API interface {
	GetProduct(id string) (*models.Product, error)
	CreateProduct(product models.Product) (*models.Product, error)
	UpdateProduct(id, callerID string, update services.ProductUpdate) (*models.Product, error)
	DeleteProduct(id, callerID string) error
	ListByUser(userID string) ([]models.Product, error)
}

// Manager drives the manage-products view for the signed-in user. Every
// operation requires a session; its absence surfaces session.ErrNotSignedIn.
type Manager struct {
	api      API
	session  *session.Session
	products []models.Product
}

// NewManager creates a Manager over the given API and session.
func NewManager(api API, sess *session.Session) *Manager {
	return &Manager{
		api:     api,
		session: sess,
	}
}

// LoadOwn fetches the signed-in user's products and caches them as the
// local list state.
func (m *Manager) LoadOwn() ([]models.Product, error) {
	user, err := m.session.Current()
	if err != nil {
		return nil, err
	}
	products, err := m.api.ListByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load own products: %w", err)
	}
	m.products = products
	return products, nil
}

// Products returns the cached local list.
func (m *Manager) Products() []models.Product {
	return m.products
}

// Create validates the form exhaustively and submits a new product owned by
// the signed-in user. The caller reloads the browsing view afterwards.
func (m *Manager) Create(form *forms.ProductForm) (*models.Product, error) {
	user, err := m.session.Current()
	if err != nil {
		return nil, err
	}
	if !form.ValidateAll() {
		return nil, ErrInvalidForm
	}
	created, err := m.api.CreateProduct(form.Product(user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	m.products = append(m.products, *created)
	return created, nil
}

// BeginEdit prefetches the product and returns a pre-filled edit form. A
// product owned by another user fails with ErrPermission and no form.
func (m *Manager) BeginEdit(id string) (*forms.ProductForm, error) {
	user, err := m.session.Current()
	if err != nil {
		return nil, err
	}
	product, err := m.api.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if product.UserID != user.ID {
		return nil, ErrPermission
	}
	return forms.NewEditForm(*product), nil
}

// SubmitEdit re-validates every editable field and submits the update.
// Category is not part of the update: it cannot change after creation.
func (m *Manager) SubmitEdit(id string, form *forms.ProductForm) (*models.Product, error) {
	user, err := m.session.Current()
	if err != nil {
		return nil, err
	}
	if !form.ValidateAll() {
		return nil, ErrInvalidForm
	}

	name := strings.TrimSpace(form.Value("name"))
	price, _ := strconv.ParseFloat(form.Value("price"), 64)
	quantity, _ := strconv.Atoi(form.Value("quantity"))
	description := strings.TrimSpace(form.Value("description"))
	image := form.Value("image")
	rate, _ := strconv.ParseFloat(form.Value("rate"), 64)
	count, _ := strconv.Atoi(form.Value("count"))
	rating := models.Rating{Rate: rate, Count: count}

	update := services.ProductUpdate{
		Name:        &name,
		Price:       &price,
		Quantity:    &quantity,
		Description: &description,
		Image:       &image,
		Rating:      &rating,
	}

	updated, err := m.api.UpdateProduct(id, user.ID, update)
	if err != nil {
		return nil, err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete removes a product after interactive confirmation. A declined
// confirmation is not an error. On success the item is dropped from the
// local list without refetching.
func (m *Manager) Delete(id string, confirm func(models.Product) bool) error {
	user, err := m.session.Current()
	if err != nil {
		return err
	}

	var target *models.Product
	for i := range m.products {
		if m.products[i].ID == id {
			target = &m.products[i]
			break
		}
	}
	if target == nil {
		fetched, err := m.api.GetProduct(id)
		if err != nil {
			return err
		}
		target = fetched
	}

	if !confirm(*target) {
		return nil
	}

	if err := m.api.DeleteProduct(id, user.ID); err != nil {
		return err
	}

	kept := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept
	return nil
}
